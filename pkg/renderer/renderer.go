package renderer

import (
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"issues-dashboard/internal/entities"
)

// TemplateRenderer adapts html/template to Echo's Renderer interface.
type TemplateRenderer struct {
	templates *template.Template
}

func New(glob string) (*TemplateRenderer, error) {
	funcMap := template.FuncMap{
		"lower": strings.ToLower,
		"shortDate": func(value string) string {
			t, ok := entities.ParseAPIDate(value)
			if !ok {
				return value
			}
			return t.Format("02/01/2006")
		},
		"yesNo": func(v bool) string {
			if v {
				return "Yes"
			}
			return "No"
		},
		"statusClass": func(status string) string {
			return strings.ReplaceAll(strings.ToLower(status), " ", "-")
		},
	}

	templates, err := template.New("").Funcs(funcMap).ParseGlob(glob)
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{templates: templates}, nil
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

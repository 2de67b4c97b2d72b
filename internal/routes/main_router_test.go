package routes

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"issues-dashboard/internal/apiclient"
	"issues-dashboard/internal/authz"
	"issues-dashboard/internal/entities"
	"issues-dashboard/internal/services"
	"issues-dashboard/pkg/config"
	"issues-dashboard/pkg/renderer"
	"issues-dashboard/pkg/utils"
)

// upstreamStore is the in-memory state behind the fake issues API.
type upstreamStore struct {
	mu      sync.Mutex
	nextID  int
	issues  []entities.Issue
	members []entities.TeamMember
	users   []entities.User
	tokens  map[string]string // bearer token -> role name
}

func (s *upstreamStore) issueCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.issues)
}

type DashboardSuite struct {
	suite.Suite
	Echo     *echo.Echo
	Upstream *httptest.Server
	Store    *upstreamStore
	Refresh  services.RefreshServiceInterface

	SuperToken  string
	AdminToken  string
	ViewerToken string
}

func mintRoleToken(t require.TestingT, role string) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"sub":  strings.ToLower(role),
	}).SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return token
}

// newFakeUpstream serves just enough of the remote issues API for the
// router to exercise every page and mutation.
func newFakeUpstream(store *upstreamStore) *httptest.Server {
	up := echo.New()
	api := up.Group("/api")

	api.POST("/auth/login", func(c echo.Context) error {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.Bind(&creds); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "bad payload"})
		}
		if creds.Password != "password123" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
		}
		store.mu.Lock()
		defer store.mu.Unlock()
		for token, role := range store.tokens {
			if strings.EqualFold(strings.ReplaceAll(role, " ", ""), creds.Username) {
				return c.JSON(http.StatusOK, map[string]string{"token": token})
			}
		}
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
	})

	authed := api.Group("", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			bearer := strings.TrimPrefix(header, "Bearer ")
			store.mu.Lock()
			_, ok := store.tokens[bearer]
			store.mu.Unlock()
			if header == "" || !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
			}
			return next(c)
		}
	})

	authed.GET("/issues", func(c echo.Context) error {
		store.mu.Lock()
		defer store.mu.Unlock()
		issues := make([]entities.Issue, len(store.issues))
		copy(issues, store.issues)
		return c.JSON(http.StatusOK, issues)
	})
	authed.POST("/issues", func(c echo.Context) error {
		var payload map[string]interface{}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "bad payload"})
		}
		str := func(key string) string { v, _ := payload[key].(string); return v }
		store.mu.Lock()
		defer store.mu.Unlock()
		store.nextID++
		store.issues = append(store.issues, entities.Issue{
			ID:                fmt.Sprintf("iss-%d", store.nextID),
			ProductName:       str("productName"),
			SerialNo:          str("serialNo"),
			ClientName:        str("clientName"),
			IssueDescription:  str("issueDescription"),
			IssueReportedDate: str("issueReportedDate"),
			AssignedTo:        entities.AssigneeName(str("assignedTo")),
			Status:            str("status"),
			Priority:          str("priority"),
		})
		return c.JSON(http.StatusCreated, store.issues[len(store.issues)-1])
	})
	authed.PATCH("/issues/:id", func(c echo.Context) error {
		var payload map[string]interface{}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "bad payload"})
		}
		store.mu.Lock()
		defer store.mu.Unlock()
		for i := range store.issues {
			if store.issues[i].ID == c.Param("id") {
				if v, ok := payload["status"].(string); ok {
					store.issues[i].Status = v
				}
				if v, ok := payload["productName"].(string); ok {
					store.issues[i].ProductName = v
				}
				return c.JSON(http.StatusOK, store.issues[i])
			}
		}
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Issue not found"})
	})
	authed.DELETE("/issues/:id", func(c echo.Context) error {
		store.mu.Lock()
		defer store.mu.Unlock()
		for i := range store.issues {
			if store.issues[i].ID == c.Param("id") {
				store.issues = append(store.issues[:i], store.issues[i+1:]...)
				return c.NoContent(http.StatusNoContent)
			}
		}
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Issue not found"})
	})

	authed.GET("/team-members", func(c echo.Context) error {
		store.mu.Lock()
		defer store.mu.Unlock()
		members := make([]entities.TeamMember, len(store.members))
		copy(members, store.members)
		return c.JSON(http.StatusOK, members)
	})
	authed.POST("/team-members", func(c echo.Context) error {
		var payload struct {
			Name string `json:"name"`
		}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "bad payload"})
		}
		store.mu.Lock()
		defer store.mu.Unlock()
		store.nextID++
		member := entities.TeamMember{ID: fmt.Sprintf("tm-%d", store.nextID), Name: payload.Name}
		store.members = append(store.members, member)
		return c.JSON(http.StatusCreated, member)
	})
	authed.DELETE("/team-members/:id", func(c echo.Context) error {
		store.mu.Lock()
		defer store.mu.Unlock()
		for i := range store.members {
			if store.members[i].ID == c.Param("id") {
				store.members = append(store.members[:i], store.members[i+1:]...)
				return c.NoContent(http.StatusNoContent)
			}
		}
		return c.JSON(http.StatusNotFound, map[string]string{"message": "Team member not found"})
	})

	authed.GET("/users", func(c echo.Context) error {
		store.mu.Lock()
		defer store.mu.Unlock()
		users := make([]entities.User, len(store.users))
		copy(users, store.users)
		return c.JSON(http.StatusOK, users)
	})
	authed.GET("/users/summary", func(c echo.Context) error {
		store.mu.Lock()
		defer store.mu.Unlock()
		summary := entities.RoleSummary{}
		for _, u := range store.users {
			summary[u.Role]++
		}
		return c.JSON(http.StatusOK, summary)
	})
	authed.PATCH("/users/:id/role", func(c echo.Context) error {
		var payload struct {
			Role string `json:"role"`
		}
		if err := c.Bind(&payload); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"message": "bad payload"})
		}
		store.mu.Lock()
		defer store.mu.Unlock()
		for i := range store.users {
			if store.users[i].ID == c.Param("id") {
				store.users[i].Role = payload.Role
				return c.JSON(http.StatusOK, store.users[i])
			}
		}
		return c.JSON(http.StatusNotFound, map[string]string{"message": "User not found"})
	})

	return httptest.NewServer(up)
}

func (s *DashboardSuite) SetupSuite() {
	s.SuperToken = mintRoleToken(s.T(), authz.RoleNameSuperAdmin)
	s.AdminToken = mintRoleToken(s.T(), authz.RoleNameAdmin)
	s.ViewerToken = mintRoleToken(s.T(), authz.RoleNameViewer)

	s.Store = &upstreamStore{
		nextID: 100,
		issues: []entities.Issue{
			{
				ID:                "iss-1",
				ProductName:       "ThinkStation P360",
				SerialNo:          "SN-1001",
				ClientName:        "Acme Corp",
				IssueDescription:  "Machine does not power on",
				IssueReportedDate: "2025-03-01T09:30:00Z",
				AssignedTo:        "Jane Smith",
				RCA:               null.StringFrom("PSU failure confirmed after bench test"),
				Status:            entities.StatusOpen,
				Priority:          entities.PriorityHigh,
			},
			{
				ID:                "iss-2",
				ProductName:       "Latitude 5420",
				SerialNo:          "SN-1002",
				ClientName:        "Globex",
				IssueDescription:  "Screen flickering under load",
				IssueReportedDate: "2025-03-10T14:00:00Z",
				AssignedTo:        "John Doe",
				Status:            entities.StatusCompleted,
				Priority:          entities.PriorityCritical,
			},
		},
		members: []entities.TeamMember{
			{ID: "tm-1", Name: "Jane Smith"},
			{ID: "tm-2", Name: "John Doe"},
		},
		users: []entities.User{
			{ID: "u-1", Name: "Root", Username: "superadmin", Role: authz.RoleNameSuperAdmin},
			{ID: "u-2", Name: "Ops", Username: "admin", Role: authz.RoleNameAdmin},
			{ID: "u-3", Name: "Guest", Username: "viewer", Role: authz.RoleNameViewer},
		},
		tokens: map[string]string{
			s.SuperToken:  authz.RoleNameSuperAdmin,
			s.AdminToken:  authz.RoleNameAdmin,
			s.ViewerToken: authz.RoleNameViewer,
		},
	}
	s.Upstream = newFakeUpstream(s.Store)

	cfg := &config.Config{
		Server:   config.ServerConfig{Port: "0"},
		Upstream: config.UpstreamConfig{BaseURL: s.Upstream.URL + "/api", Timeout: 5 * time.Second},
		Session:  config.SessionConfig{CookieName: "token", CookieTTL: time.Hour},
		// A long interval keeps the ticker quiet; mutations still Poke.
		Refresh: config.RefreshConfig{Interval: time.Hour, IdleAfter: time.Hour},
	}

	e := echo.New()
	e.Validator = utils.NewValidator(validator.New())

	r, err := renderer.New("../../web/templates/*.html")
	require.NoError(s.T(), err)
	e.Renderer = r

	nop := zap.NewNop()
	api := apiclient.New(cfg.Upstream, nop)
	s.Refresh = InitRouter(e, api, cfg, &Loggers{Main: nop, Auth: nop, Dashboard: nop, Users: nop})
	s.Echo = e
}

func (s *DashboardSuite) TearDownSuite() {
	s.Refresh.StopAll()
	s.Upstream.Close()
}

func (s *DashboardSuite) request(method, target, token string, form url.Values) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if form != nil {
		body = bytes.NewBufferString(form.Encode())
	} else {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func (s *DashboardSuite) TestRootRedirectsToDashboard() {
	rec := s.request(http.MethodGet, "/", "", nil)
	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Equal(s.T(), "/dashboard", rec.Header().Get(echo.HeaderLocation))
}

func (s *DashboardSuite) TestDashboardWithoutSessionRedirectsToLogin() {
	rec := s.request(http.MethodGet, "/dashboard", "", nil)
	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Equal(s.T(), "/login", rec.Header().Get(echo.HeaderLocation))
}

func (s *DashboardSuite) TestGarbageCookieRedirectsToLogin() {
	rec := s.request(http.MethodGet, "/dashboard", "not-a-jwt", nil)
	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Equal(s.T(), "/login", rec.Header().Get(echo.HeaderLocation))
}

func (s *DashboardSuite) TestLoginPageRenders() {
	rec := s.request(http.MethodGet, "/login", "", nil)
	assert.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), `name="username"`)
	assert.Contains(s.T(), rec.Body.String(), `name="password"`)
}

func (s *DashboardSuite) TestLoginSetsSessionCookie() {
	form := url.Values{}
	form.Set("username", "superadmin")
	form.Set("password", "password123")

	rec := s.request(http.MethodPost, "/login", "", form)

	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Equal(s.T(), "/dashboard", rec.Header().Get(echo.HeaderLocation))

	cookies := rec.Result().Cookies()
	require.NotEmpty(s.T(), cookies)
	assert.Equal(s.T(), "token", cookies[0].Name)
	assert.Equal(s.T(), s.SuperToken, cookies[0].Value)
	assert.True(s.T(), cookies[0].HttpOnly)
}

func (s *DashboardSuite) TestLoginRejectionShowsInlineError() {
	form := url.Values{}
	form.Set("username", "superadmin")
	form.Set("password", "wrong")

	rec := s.request(http.MethodPost, "/login", "", form)

	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	location := rec.Header().Get(echo.HeaderLocation)
	assert.Contains(s.T(), location, "/login?error=")
	// The upstream's own message is shown, not the session-expiry text.
	assert.Contains(s.T(), location, url.QueryEscape("Invalid credentials"))
}

func (s *DashboardSuite) TestDashboardRendersIssueTable() {
	rec := s.request(http.MethodGet, "/dashboard", s.SuperToken, nil)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(s.T(), body, "ThinkStation P360")
	assert.Contains(s.T(), body, "Latitude 5420")
	assert.Contains(s.T(), body, "Add Hardware Issue")
}

func (s *DashboardSuite) TestDashboardSearchFilters() {
	rec := s.request(http.MethodGet, "/dashboard?search=latitude", s.SuperToken, nil)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(s.T(), body, "Latitude 5420")
	assert.NotContains(s.T(), body, "ThinkStation P360")
}

func (s *DashboardSuite) TestRCADetailModal() {
	rec := s.request(http.MethodGet, "/dashboard?rca=iss-1", s.ViewerToken, nil)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(s.T(), body, "Root Cause Analysis")
	assert.Contains(s.T(), body, "PSU failure confirmed after bench test")
	// The page does not re-poll while the modal is open.
	assert.NotContains(s.T(), body, `http-equiv="refresh"`)

	// An unknown id renders the plain dashboard.
	rec = s.request(http.MethodGet, "/dashboard?rca=nope", s.ViewerToken, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.NotContains(s.T(), rec.Body.String(), "Root Cause Analysis")
}

func (s *DashboardSuite) TestViewerSeesNoMutationControls() {
	rec := s.request(http.MethodGet, "/dashboard", s.ViewerToken, nil)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(s.T(), body, "Add Hardware Issue")
	assert.Contains(s.T(), body, "Export to Excel")
}

func (s *DashboardSuite) TestExportDownloadsWorkbook() {
	rec := s.request(http.MethodGet, "/dashboard/export", s.ViewerToken, nil)

	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Header().Get(echo.HeaderContentDisposition), "Hardware_Issues_Dashboard.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(s.T(), err)
	defer f.Close()
	assert.Equal(s.T(), []string{"Issues"}, f.GetSheetList())
}

func (s *DashboardSuite) TestIssueLifecycle() {
	before := s.Store.issueCount()

	s.Run("create", func() {
		form := url.Values{}
		form.Set("productName", "PowerEdge R750")
		form.Set("serialNo", "SN-9000")
		form.Set("clientName", "Hooli")
		form.Set("issueDescription", "Fans at full speed")
		form.Set("status", entities.StatusOpen)
		form.Set("priority", entities.PriorityMedium)

		rec := s.request(http.MethodPost, "/issues", s.SuperToken, form)

		assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
		assert.Contains(s.T(), rec.Header().Get(echo.HeaderLocation), "success=")
		assert.Equal(s.T(), before+1, s.Store.issueCount())
	})

	var createdID string
	s.Store.mu.Lock()
	for _, issue := range s.Store.issues {
		if issue.ProductName == "PowerEdge R750" {
			createdID = issue.ID
		}
	}
	s.Store.mu.Unlock()
	require.NotEmpty(s.T(), createdID)

	s.Run("update", func() {
		form := url.Values{}
		form.Set("productName", "PowerEdge R750")
		form.Set("serialNo", "SN-9000")
		form.Set("clientName", "Hooli")
		form.Set("issueDescription", "Fans at full speed")
		form.Set("status", entities.StatusCompleted)
		form.Set("priority", entities.PriorityMedium)

		rec := s.request(http.MethodPost, "/issues/"+createdID, s.SuperToken, form)

		assert.Equal(s.T(), http.StatusSeeOther, rec.Code)

		s.Store.mu.Lock()
		defer s.Store.mu.Unlock()
		for _, issue := range s.Store.issues {
			if issue.ID == createdID {
				assert.Equal(s.T(), entities.StatusCompleted, issue.Status)
			}
		}
	})

	s.Run("delete", func() {
		rec := s.request(http.MethodPost, "/issues/"+createdID+"/delete", s.SuperToken, nil)

		assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
		assert.Equal(s.T(), before, s.Store.issueCount())
	})
}

func (s *DashboardSuite) TestIssueValidationFailureRedirectsWithError() {
	form := url.Values{}
	form.Set("productName", "Incomplete")
	form.Set("status", "Bogus")
	form.Set("priority", entities.PriorityLow)

	rec := s.request(http.MethodPost, "/issues", s.SuperToken, form)

	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Contains(s.T(), rec.Header().Get(echo.HeaderLocation), "error=")
}

func (s *DashboardSuite) TestViewerCannotCreateIssues() {
	before := s.Store.issueCount()

	form := url.Values{}
	form.Set("productName", "Should not exist")
	form.Set("serialNo", "SN-0000")
	form.Set("clientName", "Nobody")
	form.Set("issueDescription", "n/a")
	form.Set("status", entities.StatusOpen)
	form.Set("priority", entities.PriorityLow)

	rec := s.request(http.MethodPost, "/issues", s.ViewerToken, form)

	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Contains(s.T(), rec.Header().Get(echo.HeaderLocation), "error=")
	assert.Equal(s.T(), before, s.Store.issueCount())
}

func (s *DashboardSuite) TestTeamMemberLifecycle() {
	form := url.Values{}
	form.Set("name", "New Engineer")

	rec := s.request(http.MethodPost, "/team-members", s.SuperToken, form)
	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Contains(s.T(), rec.Header().Get(echo.HeaderLocation), "team=1")

	var createdID string
	s.Store.mu.Lock()
	for _, m := range s.Store.members {
		if m.Name == "New Engineer" {
			createdID = m.ID
		}
	}
	s.Store.mu.Unlock()
	require.NotEmpty(s.T(), createdID)

	rec = s.request(http.MethodPost, "/team-members/"+createdID+"/delete", s.SuperToken, nil)
	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
}

func (s *DashboardSuite) TestViewerCannotManageTeam() {
	form := url.Values{}
	form.Set("name", "Sneaky")

	rec := s.request(http.MethodPost, "/team-members", s.ViewerToken, form)

	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Contains(s.T(), rec.Header().Get(echo.HeaderLocation), "error=")
}

func (s *DashboardSuite) TestAdminUsersPageGatedByRole() {
	rec := s.request(http.MethodGet, "/admin/users", s.ViewerToken, nil)
	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Equal(s.T(), "/dashboard", rec.Header().Get(echo.HeaderLocation))

	rec = s.request(http.MethodGet, "/admin/users", s.AdminToken, nil)
	require.Equal(s.T(), http.StatusOK, rec.Code)
	assert.Contains(s.T(), rec.Body.String(), "superadmin")
}

func (s *DashboardSuite) TestAdminCannotChangeRoles() {
	form := url.Values{}
	form.Set("role", authz.RoleNameViewer)

	rec := s.request(http.MethodPost, "/admin/users/u-2/role", s.AdminToken, form)

	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Contains(s.T(), rec.Header().Get(echo.HeaderLocation), "error=")
}

func (s *DashboardSuite) TestLastSuperAdminDemotionRefused() {
	form := url.Values{}
	form.Set("role", authz.RoleNameViewer)

	rec := s.request(http.MethodPost, "/admin/users/u-1/role", s.SuperToken, form)

	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	location := rec.Header().Get(echo.HeaderLocation)
	assert.Contains(s.T(), location, "error=")
	assert.Contains(s.T(), location, url.QueryEscape("Super Admin"))

	s.Store.mu.Lock()
	defer s.Store.mu.Unlock()
	assert.Equal(s.T(), authz.RoleNameSuperAdmin, s.Store.users[0].Role)
}

func (s *DashboardSuite) TestSuperAdminCanChangeOtherRoles() {
	form := url.Values{}
	form.Set("role", authz.RoleNameAdmin)

	rec := s.request(http.MethodPost, "/admin/users/u-3/role", s.SuperToken, form)

	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Contains(s.T(), rec.Header().Get(echo.HeaderLocation), "success=")

	// Restore the fixture for the other tests.
	restore := url.Values{}
	restore.Set("role", authz.RoleNameViewer)
	s.request(http.MethodPost, "/admin/users/u-3/role", s.SuperToken, restore)
}

func (s *DashboardSuite) TestRevokedUpstreamTokenForcesRelogin() {
	revoked := mintRoleToken(s.T(), authz.RoleNameAdmin)

	rec := s.request(http.MethodGet, "/admin/users", revoked, nil)

	// The cookie decodes, but the upstream rejects the bearer: back to login.
	assert.Equal(s.T(), http.StatusSeeOther, rec.Code)
	assert.Contains(s.T(), rec.Header().Get(echo.HeaderLocation), "/login?error=")
}

func TestDashboardSuite(t *testing.T) {
	suite.Run(t, new(DashboardSuite))
}

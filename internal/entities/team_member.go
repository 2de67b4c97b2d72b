package entities

// TeamMember is an assignable engineer. Names are unique by convention
// only; the upstream API does not enforce it.
type TeamMember struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

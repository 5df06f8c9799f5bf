package entity

// Staff roles.
const (
	RoleFrontDesk        = "front_desk"
	RoleCareProfessional = "care_professional"
)

// User is a staff account. Accounts live in the remote document store's
// "users" collection; Password holds the bcrypt hash and must round-trip
// through the document JSON, so it is never exposed through the API layer
// directly.
type User struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
	Role     string `json:"role"`
}

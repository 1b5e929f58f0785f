package domain

const (
	RoleUser      = "user"
	RoleLibrarian = "librarian"
)

// User is a registered library member. Only the name is persisted.
type User struct {
	Name string `json:"name" bson:"name"`
}

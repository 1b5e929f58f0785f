package domain

// Loan records that a user currently holds the book with the given title.
type Loan struct {
	UserName string `json:"user_name" bson:"user_name"`
	Title    string `json:"title" bson:"title"`
}

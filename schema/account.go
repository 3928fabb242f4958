package schema

const (
	UserCollection = "users"
)

type Role string

const (
	RoleOperator      Role = "operator"
	RoleAdministrator Role = "administrator"
)

// UserAccount is an operator or administrator sign-in identity. The
// credential field carries a bcrypt hash and never leaves the server.
type UserAccount struct {
	ID         string `json:"id" bson:"id"`
	Username   string `json:"username" bson:"username"`
	Credential string `json:"-" bson:"credential"`
	Role       Role   `json:"role" bson:"role"`
	Approved   bool   `json:"approved" bson:"approved"`
	Active     bool   `json:"active" bson:"active"`
	CreatedAt  int64  `json:"created_at" bson:"created_at"`
}

// CanSignIn reports whether the account is usable for sign-in. Both flags
// are required: self-registered accounts start unapproved, and deactivated
// accounts keep their approval.
func (a UserAccount) CanSignIn() bool {
	return a.Approved && a.Active
}

package session

// User is the profile snapshot returned by the auth endpoints.
type User struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	OptIn  bool   `json:"optIn"`
	Active bool   `json:"active"`
}

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	OptIn    bool   `json:"optIn"`
}

// AuthResult is the backend's signin/signup response.
type AuthResult struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID string `json:"userId"`
	User   User   `json:"user"`
}

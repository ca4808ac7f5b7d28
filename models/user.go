package models

// User represents a registered account in the store document.
// Password holds the bcrypt hash; user records are never returned in API responses.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the POST /register body
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` // Plaintext; hashed before storing
}

// LoginRequest is the POST /login body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

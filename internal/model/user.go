package model

// User is the signed-in account as returned by the auth endpoints.
// The password never leaves the request payloads.
type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

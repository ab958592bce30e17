// Package auth mints and destroys gateway sessions. Account records live
// remotely; only the bcrypt comparison happens here.
package auth

// Account is the remote account row used for login.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	Active       bool
}

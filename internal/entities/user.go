// Package entities contains core business entities.
package entities

// User is an identity record from the user directory.
type User struct {
	ID       int64
	Username string
	FullName string
	Email    *string
}

// EmailAddress returns the user's email or an empty string.
func (u User) EmailAddress() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

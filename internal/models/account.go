// Package models holds the records shared by the store, its repositories
// and the transports.
package models

// Account is one registered user: profile fields plus the password hash.
//
// The hash is kept under the "password" key so that documents written by
// earlier versions of the app load unchanged. It never holds plaintext.
type Account struct {
	FullName     string `json:"full_name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Country      string `json:"country"`
	PasswordHash string `json:"password"`
}

// IsZero reports whether a is the empty record returned for unknown emails.
func (a Account) IsZero() bool {
	return a == Account{}
}

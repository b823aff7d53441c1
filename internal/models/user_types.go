package models

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// User is the profile document. The matching credential row in
// auth_credentials shares the same id and mirrors the role, so the
// session token claims always carry the role at login time.
type User struct {
	ID          string  `json:"id" db:"id"`
	Email       string  `json:"email" db:"email"`
	Role        string  `json:"role" db:"role"` // "admin" | "staff"
	DisplayName *string `json:"displayName,omitempty" db:"display_name"`

	CreatedAt int64 `json:"createdAt" db:"created_at"`
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

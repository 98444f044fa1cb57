package domain

import "time"

// User is the identity record for the auth flows.
//
// PasswordHash and the verification code pair are storage-only: response
// payloads are built from dto output types that structurally omit them.
// VerificationCodeHash and VerificationCodeIssuedAt are set and cleared
// together; Verified only ever moves false -> true.
type User struct {
	ID                       string
	Name                     string
	Email                    string
	PasswordHash             string
	Verified                 bool
	VerificationCodeHash     *string
	VerificationCodeIssuedAt *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// HasPendingCode reports whether a verification code is outstanding.
func (u *User) HasPendingCode() bool {
	return u.VerificationCodeHash != nil && u.VerificationCodeIssuedAt != nil
}

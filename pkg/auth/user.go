package auth

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Role names form a fixed enumerated set. Signup always assigns RoleUser;
// elevated roles are granted out of band.
const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

// ValidRole reports whether role is a member of the enumerated set.
func ValidRole(role string) bool {
	return slices.Contains([]string{RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin}, role)
}

// User represents an identity record in the credential store.
// PasswordHash and the reset fields never appear in responses; Active is a
// soft-delete flag and inactive users are excluded from every lookup the
// auth core performs.
type User struct {
	ID                     uuid.UUID  `json:"id" bson:"_id"`
	Name                   string     `json:"name" bson:"name"`
	Email                  string     `json:"email" bson:"email"`
	Photo                  string     `json:"photo,omitempty" bson:"photo,omitempty"`
	Role                   string     `json:"role" bson:"role"`
	PasswordHash           []byte     `json:"-" bson:"password_hash"`
	PasswordChangedAt      *time.Time `json:"-" bson:"password_changed_at,omitempty"`
	PasswordResetTokenHash string     `json:"-" bson:"password_reset_token_hash,omitempty"`
	PasswordResetExpiresAt *time.Time `json:"-" bson:"password_reset_expires_at,omitempty"`
	Active                 bool       `json:"-" bson:"active"`
	CreatedAt              time.Time  `json:"created_at" bson:"created_at"`
}

// ChangedPasswordAfter reports whether the password was changed after a
// token issued at the given Unix timestamp. A token issued in the same
// second as the change still counts as fresh; password mutations backdate
// PasswordChangedAt by one second to guarantee that ordering.
func (u *User) ChangedPasswordAfter(issuedAt int64) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt < u.PasswordChangedAt.Unix()
}

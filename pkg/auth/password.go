package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a salted adaptive-cost digest of the plaintext.
// Hashing failures surface as ErrHashingFailed; there is no silent-accept
// path.
func HashPassword(plain string, cost int) ([]byte, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return nil, errors.Join(ErrHashingFailed, err)
	}
	return hash, nil
}

// CheckPassword reports whether the plaintext matches the stored digest.
// bcrypt's comparison is constant-time over the derived key.
func CheckPassword(plain string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain)) == nil
}

package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/petswap/internal/common"
)

// PasswordCost is the bcrypt work factor for every stored digest.
const PasswordCost = 10

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// HashPassword returns a salted bcrypt digest of plaintext.
// Inputs longer than bcrypt accepts are a validation error.
func HashPassword(plaintext string) (string, error) {
	if len(plaintext) > maxPasswordBytes {
		return "", common.NewValidationError("Password is too long")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether plaintext matches digest. A malformed
// digest never matches.
func VerifyPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

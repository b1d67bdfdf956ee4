package utilities

import "golang.org/x/crypto/bcrypt"

// Work factor fixed at bcrypt's default (10) so hashes stay comparable across
// deployments.
const bcryptCost = bcrypt.DefaultCost

// dummyHash is compared against when a login targets an unknown email, so the
// request burns the same bcrypt work either way and response timing does not
// reveal whether the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword hashes a plain text password with bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BurnPasswordCheck runs a bcrypt comparison against a throwaway hash.
// Called on login attempts for unknown emails; the result is always false.
func BurnPasswordCheck(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password)) == nil
}

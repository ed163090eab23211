package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// HashIfChanged returns a new bcrypt hash of newPlain, or the old hash
// unchanged when newPlain is empty.  Update paths call this instead of
// rehashing unconditionally, so an update request that does not touch the
// password keeps the stored hash intact.
func HashIfChanged(oldHash, newPlain string, cost int) (string, error) {
	if newPlain == "" {
		return oldHash, nil
	}
	return HashPassword(newPlain, cost)
}

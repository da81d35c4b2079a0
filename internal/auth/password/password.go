package password

import (
	"golang.org/x/crypto/bcrypt"
)

const hashCost = bcrypt.DefaultCost

// Hash derives a salted bcrypt digest from a plaintext password.
// The digest embeds the algorithm parameters and a fresh random salt,
// so hashing the same password twice yields different digests.
func Hash(plaintext string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// Verify reports whether plaintext produced digest. The comparison runs
// in constant time. A malformed digest verifies as false; callers only
// ever see "verification failed", never a parse error.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

package invoices

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

const (
	recordIDPrefix = "in"
	base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	idHashLength   = 6
	idMaxAttempts  = 20
)

var idPattern = regexp.MustCompile(`^in-[0-9a-z]{6}$`)

// ValidID reports whether id is a canonical record ID.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}

// generateID returns a new record ID, retrying on collisions using the
// provided exists function.
func generateID(exists func(string) bool) (string, error) {
	for i := 0; i < idMaxAttempts; i++ {
		hash, err := randomBase36(idHashLength)
		if err != nil {
			return "", err
		}
		id := fmt.Sprintf("%s-%s", recordIDPrefix, hash)
		if exists == nil || !exists(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("unable to generate unique id")
}

func randomBase36(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		out[i] = base36Alphabet[int(b[i])%len(base36Alphabet)]
	}
	return string(out), nil
}

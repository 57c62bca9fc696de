package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomPassword returns a random hex password of 2*n characters.
func RandomPassword(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

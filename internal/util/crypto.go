package util

import (
	"crypto/rand"
	"encoding/base64"
)

// CryptoRandomBytes generates cryptographically secure random bytes
func CryptoRandomBytes(length int64) ([]byte, error) {
	buf := make([]byte, length)
	_, err := rand.Read(buf)
	return buf, err
}

// RandomPassword returns a printable URL-safe password of the given length.
func RandomPassword(length int) (string, error) {
	bytes, err := CryptoRandomBytes(int64(length))
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes)[:length], nil
}

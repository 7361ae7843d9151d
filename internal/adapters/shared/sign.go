// Package shared holds the signing and payload helpers common to all venue
// adapters. Each venue keeps its own canonical-string construction; this
// package only provides the primitives.
package shared

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
)

// HMACSHA256Hex returns the lowercase hex HMAC-SHA256 of message under secret.
func HMACSHA256Hex(message, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// HMACSHA512Hex returns the lowercase hex HMAC-SHA512 of message under secret.
func HMACSHA512Hex(message, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// SHA512Hex returns the lowercase hex SHA-512 digest of payload. Used for
// content-hashing request bodies before they enter a canonical string.
func SHA512Hex(payload string) string {
	sum := sha512.Sum512([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Package services file: services/signature.go
package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// VerifyWebhookSignature authenticates an inbound gateway notification.
// It computes hex(HMAC-SHA256(secret, body)) over the exact raw bytes and
// compares it to the claimed signature in constant time. A missing secret
// or signature always fails. Callers must verify before parsing the body,
// and must pass the untouched bytes: re-encoding desynchronizes the hash.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// file: services/signature_test.go
package services_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"gaittrib/services"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature_Valid(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"event":"payment.captured","payload":{}}`)

	assert.True(t, services.VerifyWebhookSignature(body, signBody(secret, body), secret))
}

func TestVerifyWebhookSignature_SingleByteMutation(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"event":"payment.captured","payload":{}}`)
	signature := signBody(secret, body)

	for i := range body {
		mutated := make([]byte, len(body))
		copy(mutated, body)
		mutated[i] ^= 0x01
		assert.Falsef(t, services.VerifyWebhookSignature(mutated, signature, secret),
			"byte %d flipped should not verify", i)
	}
}

func TestVerifyWebhookSignature_MissingInputs(t *testing.T) {
	body := []byte(`{}`)

	assert.False(t, services.VerifyWebhookSignature(body, "", "whsec_test"), "missing signature")
	assert.False(t, services.VerifyWebhookSignature(body, signBody("whsec_test", body), ""), "missing secret")
	assert.False(t, services.VerifyWebhookSignature(body, "", ""))
}

func TestVerifyWebhookSignature_WrongSecret(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	assert.False(t, services.VerifyWebhookSignature(body, signBody("other-secret", body), "whsec_test"))
}

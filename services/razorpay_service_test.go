package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	svc := NewRazorpayService("rzp_test_key", "secret")

	valid := sign("secret", "order_1", "pay_123")
	assert.True(t, svc.VerifySignature("order_1", "pay_123", valid))

	// Signature over a different payment id must not verify.
	assert.False(t, svc.VerifySignature("order_1", "pay_456", valid))
	assert.False(t, svc.VerifySignature("order_1", "pay_123", "deadbeef"))
	assert.False(t, svc.VerifySignature("order_1", "pay_123", ""))
}

func TestVerifySignatureWithoutSecret(t *testing.T) {
	svc := NewRazorpayService("rzp_test_key", "")

	assert.False(t, svc.VerifySignature("order_1", "pay_123", sign("", "order_1", "pay_123")))
}

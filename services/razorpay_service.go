package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"registration-service/models"
)

const (
	// OrderAmountPaise is the fixed registration fee in minor units
	// (₹199.00).
	OrderAmountPaise = 19900
	OrderCurrency    = "INR"
)

// PaymentGateway creates orders ahead of checkout and verifies the
// signature the checkout widget hands back.
type PaymentGateway interface {
	CreateOrder(ctx context.Context) (*models.Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type RazorpayService struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

func NewRazorpayService(keyID, keySecret string) *RazorpayService {
	return &RazorpayService{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

// CreateOrder requests a fixed-amount auto-capture order. The receipt
// label is derived from the current time so every request is unique at
// the gateway. Nothing is persisted locally.
func (s *RazorpayService) CreateOrder(ctx context.Context) (*models.Order, error) {
	data := map[string]interface{}{
		"amount":          OrderAmountPaise,
		"currency":        OrderCurrency,
		"receipt":         fmt.Sprintf("receipt_%d", time.Now().UnixMilli()),
		"payment_capture": 1,
	}

	body, err := s.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create failed: %w", err)
	}

	return &models.Order{
		ID:       asString(body["id"]),
		Amount:   asInt64(body["amount"]),
		Currency: asString(body["currency"]),
	}, nil
}

// VerifySignature checks the HMAC-SHA256 the gateway computes over
// "orderID|paymentID" with the key secret.
func (s *RazorpayService) VerifySignature(orderID, paymentID, signature string) bool {
	if s.keySecret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asInt64 handles the float64 the gateway SDK decodes JSON numbers into.
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}

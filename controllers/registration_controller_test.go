package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"registration-service/controllers"
	"registration-service/models"
	"registration-service/repository"
	"registration-service/routes"
	"registration-service/sender"
	"registration-service/services"
	"registration-service/storage"
)

// ---- fakes ----

type fakeGateway struct {
	order    *models.Order
	orderErr error
	verifyOK bool
}

func (g *fakeGateway) CreateOrder(ctx context.Context) (*models.Order, error) {
	if g.orderErr != nil {
		return nil, g.orderErr
	}
	return g.order, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return g.verifyOK
}

type fakeSender struct {
	to  string
	err error
}

func (s *fakeSender) SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) (sender.SendResult, error) {
	s.to = to
	if s.err != nil {
		return sender.SendResult{}, s.err
	}
	return sender.SendResult{MessageID: "smtp-1", SentAt: time.Now()}, nil
}

type failingStore struct{}

func (failingStore) Exists(ctx context.Context, key string) (bool, error) { return false, nil }
func (failingStore) Download(ctx context.Context, key string) ([]byte, error) {
	return nil, fmt.Errorf("download failed")
}
func (failingStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return fmt.Errorf("upload failed")
}

// ---- helpers ----

type fixture struct {
	router *gin.Engine
	mail   *fakeSender
}

func setup(t *testing.T, gateway services.PaymentGateway, store storage.BlobStore, orderCreation bool) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	mail := &fakeSender{}
	ledger := repository.NewExcelLedgerRepository(store, logger)
	notifier := services.NewEmailNotifier(mail, logger)
	registrations := services.NewRegistrationService(ledger, notifier, time.UTC, logger)

	r := gin.New()
	routes.RegisterRoutes(r, &controllers.RegistrationController{
		Gateway:              gateway,
		Registrations:        registrations,
		Ledger:               ledger,
		Logger:               logger,
		RazorpayKeyID:        "rzp_test_key",
		OrderCreationEnabled: orderCreation,
	})

	return &fixture{router: r, mail: mail}
}

func registrationBody() map[string]interface{} {
	return map[string]interface{}{
		"fullName":  "A",
		"email":     "a@b.com",
		"phone":     "9999999999",
		"stream":    "pcm",
		"school":    "X",
		"city":      "Y",
		"examMode":  "onsite",
		"paymentId": "pay_123",
	}
}

func doJSON(r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

// ---- tests ----

func TestGetConfig(t *testing.T) {
	fx := setup(t, &fakeGateway{}, storage.NewMemoryBlobStore(), false)

	w, resp := doJSON(fx.router, http.MethodGet, "/api/config", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rzp_test_key", resp["razorpayKeyId"])
}

func TestRegisterEndToEnd(t *testing.T) {
	fx := setup(t, &fakeGateway{}, storage.NewMemoryBlobStore(), false)

	w, resp := doJSON(fx.router, http.MethodPost, "/api/register", registrationBody())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "pay_123", resp["registrationId"])
	assert.Equal(t, true, resp["emailSent"])
	assert.Equal(t, "a@b.com", fx.mail.to)

	// One row landed in the ledger with status Confirmed and the
	// default amount.
	dl := httptest.NewRecorder()
	fx.router.ServeHTTP(dl, httptest.NewRequest(http.MethodGet, "/api/download-registrations", nil))
	require.Equal(t, http.StatusOK, dl.Code)
	count, err := repository.DataRowCount(dl.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegisterEmailFailureStillSucceeds(t *testing.T) {
	fx := setup(t, &fakeGateway{}, storage.NewMemoryBlobStore(), false)
	fx.mail.err = fmt.Errorf("transport down")

	w, resp := doJSON(fx.router, http.MethodPost, "/api/register", registrationBody())

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, false, resp["emailSent"])
}

func TestRegisterValidation(t *testing.T) {
	fx := setup(t, &fakeGateway{}, storage.NewMemoryBlobStore(), false)

	body := registrationBody()
	delete(body, "fullName")
	w, resp := doJSON(fx.router, http.MethodPost, "/api/register", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestRegisterRejectsBadSignature(t *testing.T) {
	fx := setup(t, &fakeGateway{verifyOK: false}, storage.NewMemoryBlobStore(), true)

	body := registrationBody()
	body["orderId"] = "order_1"
	body["signature"] = "bad"
	w, resp := doJSON(fx.router, http.MethodPost, "/api/register", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Payment verification failed", resp["message"])
}

func TestRegisterAcceptsVerifiedPayment(t *testing.T) {
	fx := setup(t, &fakeGateway{verifyOK: true}, storage.NewMemoryBlobStore(), true)

	body := registrationBody()
	body["orderId"] = "order_1"
	body["signature"] = "good"
	w, resp := doJSON(fx.router, http.MethodPost, "/api/register", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
}

func TestRegisterPersistenceFailure(t *testing.T) {
	fx := setup(t, &fakeGateway{}, failingStore{}, false)

	w, resp := doJSON(fx.router, http.MethodPost, "/api/register", registrationBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, false, resp["success"])
	// The payment id must be surfaced for manual reconciliation.
	assert.Contains(t, resp["message"], "pay_123")
	// No confirmation goes out for an unsaved registration.
	assert.Empty(t, fx.mail.to)
}

func TestCreateOrder(t *testing.T) {
	fx := setup(t, &fakeGateway{
		order: &models.Order{ID: "order_1", Amount: 19900, Currency: "INR"},
	}, storage.NewMemoryBlobStore(), true)

	w, resp := doJSON(fx.router, http.MethodPost, "/api/create-order", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "order_1", resp["orderId"])
	assert.Equal(t, float64(19900), resp["amount"])
	assert.Equal(t, "INR", resp["currency"])
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	fx := setup(t, &fakeGateway{orderErr: fmt.Errorf("gateway down")}, storage.NewMemoryBlobStore(), true)

	w, resp := doJSON(fx.router, http.MethodPost, "/api/create-order", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Failed to create order", resp["message"])
}

func TestCreateOrderDisabled(t *testing.T) {
	fx := setup(t, &fakeGateway{}, storage.NewMemoryBlobStore(), false)

	w, resp := doJSON(fx.router, http.MethodPost, "/api/create-order", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, false, resp["success"])
}

func TestDownloadWithoutStorage(t *testing.T) {
	fx := setup(t, &fakeGateway{}, nil, false)

	w, _ := doJSON(fx.router, http.MethodGet, "/api/download-registrations", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDownloadEmptyLedger(t *testing.T) {
	fx := setup(t, &fakeGateway{}, storage.NewMemoryBlobStore(), false)

	w, _ := doJSON(fx.router, http.MethodGet, "/api/download-registrations", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

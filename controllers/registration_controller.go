package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"registration-service/apperrors"
	"registration-service/models"
	"registration-service/repository"
	"registration-service/services"
)

// RegistrationController owns the public API surface. When
// OrderCreationEnabled is false the service runs in client-key mode:
// order creation is refused and payment signatures are not verified.
type RegistrationController struct {
	Gateway              services.PaymentGateway
	Registrations        *services.RegistrationService
	Ledger               repository.LedgerRepository
	Logger               *zap.Logger
	RazorpayKeyID        string
	OrderCreationEnabled bool
}

// GetConfig exposes the public gateway key for the checkout widget.
func (rc *RegistrationController) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"razorpayKeyId": rc.RazorpayKeyID})
}

// CreateOrder creates a fixed-amount auto-capture gateway order.
func (rc *RegistrationController) CreateOrder(c *gin.Context) {
	if !rc.OrderCreationEnabled {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": "Order creation is not enabled",
		})
		return
	}

	order, err := rc.Gateway.CreateOrder(c.Request.Context())
	if err != nil {
		rc.Logger.Error("order creation failed", zap.Error(err))
		respondError(c, apperrors.Gateway("Failed to create order", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"orderId":  order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
	})
}

// Register saves a completed-payment submission.
func (rc *RegistrationController) Register(c *gin.Context) {
	var req models.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.Validation("Invalid registration payload", err))
		return
	}

	if rc.OrderCreationEnabled {
		if req.OrderID == "" || req.Signature == "" || !rc.Gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
			rc.Logger.Warn("payment signature rejected",
				zap.String("payment_id", req.PaymentID),
				zap.String("order_id", req.OrderID))
			respondError(c, apperrors.Validation("Payment verification failed", nil))
			return
		}
	}

	result, err := rc.Registrations.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"message":        "Registration saved successfully",
		"registrationId": result.RegistrationID,
		"emailSent":      result.EmailSent,
	})
}

// DownloadRegistrations streams the ledger workbook.
func (rc *RegistrationController) DownloadRegistrations(c *gin.Context) {
	data, err := rc.Ledger.Download(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", repository.WorkbookName))
	c.Data(http.StatusOK, repository.ContentTypeXLSX, data)
}

func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.New(http.StatusInternalServerError, "Internal server error", err)
	}

	body := gin.H{"success": false, "message": appErr.Message}
	if appErr.Err != nil {
		body["error"] = appErr.Err.Error()
	}
	c.JSON(appErr.Code, body)
}

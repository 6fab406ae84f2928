package models

const (
	ExamModeOnsite = "onsite"
	ExamModeRemote = "remote"

	StatusConfirmed = "Confirmed"

	// DefaultAmount is the display-value fee applied when the payload
	// carries no amount.
	DefaultAmount = 199
)

// Registration is one ledger row. It is built from the submission
// payload plus two server-computed fields (Date, Status) and is never
// mutated after append.
type Registration struct {
	Date           string `json:"date"`
	PaymentID      string `json:"paymentId"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ParentPhone    string `json:"parentPhone,omitempty"`
	Stream         string `json:"stream"`
	School         string `json:"school"`
	City           string `json:"city"`
	ExamMode       string `json:"examMode"`
	ReferralSource string `json:"referralSource,omitempty"`
	Amount         int    `json:"amount"`
	Status         string `json:"status"`
}

// RegistrationRequest is the POST /api/register payload. OrderID and
// Signature are the payment proof fields issued by the gateway checkout
// widget; they are only required when server-side verification is on.
type RegistrationRequest struct {
	FullName       string `json:"fullName" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	ParentPhone    string `json:"parentPhone"`
	Stream         string `json:"stream" binding:"required"`
	School         string `json:"school" binding:"required"`
	City           string `json:"city" binding:"required"`
	ExamMode       string `json:"examMode" binding:"required,oneof=onsite remote"`
	ReferralSource string `json:"referralSource"`
	Amount         int    `json:"amount"`
	PaymentID      string `json:"paymentId" binding:"required"`
	OrderID        string `json:"orderId"`
	Signature      string `json:"signature"`
}

// RegistrationResult is the successful submission outcome.
type RegistrationResult struct {
	RegistrationID string `json:"registrationId"`
	EmailSent      bool   `json:"emailSent"`
}

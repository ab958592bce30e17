package payments

import "strings"

// CreateRequest is the body for POST /trips/{id}/payment-requests.
type CreateRequest struct {
	Type          string  `json:"type" validate:"required,oneof=advance balance other vendor_settlement"`
	Amount        float64 `json:"amount" validate:"required,gt=0,lte=1000000000000"`
	Beneficiary   string  `json:"beneficiary" validate:"required,max=200"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=bank_transfer upi cash fuel_card"`
	Notes         string  `json:"notes" validate:"omitempty,max=500"`
}

// Normalize trims free-text fields before validation.
func (r *CreateRequest) Normalize() {
	r.Type = strings.TrimSpace(r.Type)
	r.Beneficiary = strings.TrimSpace(r.Beneficiary)
	r.PaymentMethod = strings.TrimSpace(r.PaymentMethod)
	r.Notes = strings.TrimSpace(r.Notes)
}

// MarkPaidRequest is the body for POST /payment-requests/{id}/mark-paid.
// The proof object must already be transferred; the four object fields are
// all required.
type MarkPaidRequest struct {
	ObjectKey        string   `json:"objectKey" validate:"required,max=512"`
	FileName         string   `json:"fileName" validate:"required,max=255"`
	MimeType         string   `json:"mimeType" validate:"required,max=120"`
	FileSizeBytes    int64    `json:"fileSizeBytes" validate:"required,gt=0"`
	PaymentReference string   `json:"paymentReference" validate:"omitempty,max=120"`
	PaidAmount       *float64 `json:"paidAmount" validate:"omitempty,gt=0,lte=1000000000000"`
	Notes            string   `json:"notes" validate:"omitempty,max=500"`
}

// Normalize trims free-text fields before validation.
func (r *MarkPaidRequest) Normalize() {
	r.ObjectKey = strings.TrimSpace(r.ObjectKey)
	r.FileName = strings.TrimSpace(r.FileName)
	r.MimeType = strings.TrimSpace(r.MimeType)
	r.PaymentReference = strings.TrimSpace(r.PaymentReference)
	r.Notes = strings.TrimSpace(r.Notes)
}

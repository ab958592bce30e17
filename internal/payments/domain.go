// Package payments exposes the payment-request routes of the trip workflow.
// Approval rules and status transitions are enforced remotely.
package payments

// Type is a payment request category.
type Type string

const (
	TypeAdvance          Type = "advance"
	TypeBalance          Type = "balance"
	TypeOther            Type = "other"
	TypeVendorSettlement Type = "vendor_settlement"
)

// Status is a payment request lifecycle position. A request reaches paid only
// after a proof-of-payment upload is confirmed.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusOnHold   Status = "on_hold"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

// PaymentNotification is handed to the notifier after a request is created.
type PaymentNotification struct {
	PaymentRequestID string
	TripID           string
	Type             string
	Amount           float64
	Beneficiary      string
}

// MaxAmount caps every client-supplied amount.
const MaxAmount = 1_000_000_000_000

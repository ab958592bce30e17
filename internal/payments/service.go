package payments

import (
	"context"
	"log/slog"

	"github.com/freightline-erp/freightline-erp/internal/actor"
	"github.com/freightline-erp/freightline-erp/internal/rpc"
)

// Notifier receives a best-effort signal after a payment request is created.
// Implementations must not fail the request.
type Notifier interface {
	PaymentRequested(ctx context.Context, n PaymentNotification)
}

// Service coordinates payment request operations against the remote layer.
type Service struct {
	inv      rpc.Invoker
	resolver *actor.Resolver
	notifier Notifier
	logger   *slog.Logger

	createChain   rpc.Chain
	markPaidChain rpc.Chain
	listChain     rpc.Chain
}

// NewService constructs a Service. notifier may be nil.
func NewService(inv rpc.Invoker, resolver *actor.Resolver, notifier Notifier, logger *slog.Logger, onFallback func(procedure string)) *Service {
	return &Service{
		inv:      inv,
		resolver: resolver,
		notifier: notifier,
		logger:   logger,
		createChain: rpc.Chain{
			Operation:  "payments.create",
			OnFallback: onFallback,
			Variants: []rpc.Variant{
				{Procedure: "payment_request_create_v2"},
				{Procedure: "payment_request_create_v1", Shape: rpc.DropArgs("p_notes")},
			},
		},
		markPaidChain: rpc.Chain{
			Operation:  "payments.mark_paid",
			OnFallback: onFallback,
			Variants: []rpc.Variant{
				{Procedure: "payment_mark_paid_v2"},
				{Procedure: "payment_mark_paid_v1", Shape: rpc.DropArgs("p_notes", "p_paid_amount")},
			},
		},
		listChain: rpc.Chain{
			Operation:  "payments.list",
			OnFallback: onFallback,
			Variants:   []rpc.Variant{{Procedure: "payment_request_list_v1"}},
		},
	}
}

// Create raises a payment request for a trip.
func (s *Service) Create(ctx context.Context, tripID string, req CreateRequest) (rpc.Row, error) {
	act, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := act.Require(actor.RolesCreatePaymentRequest...); err != nil {
		return nil, err
	}

	args := []rpc.Arg{
		rpc.Named("p_trip_id", tripID),
		rpc.Named("p_type", req.Type),
		rpc.Named("p_amount", req.Amount),
		rpc.Named("p_beneficiary", req.Beneficiary),
		rpc.Named("p_payment_method", req.PaymentMethod),
		rpc.Named("p_notes", req.Notes),
	}
	rows, err := s.createChain.Invoke(ctx, s.inv, act.ID, args)
	if err != nil {
		return nil, err
	}
	row := rpc.First(rows)

	if s.notifier != nil && row != nil {
		id, _ := row["id"].(string)
		s.notifier.PaymentRequested(ctx, PaymentNotification{
			PaymentRequestID: id,
			TripID:           tripID,
			Type:             req.Type,
			Amount:           req.Amount,
			Beneficiary:      req.Beneficiary,
		})
	}
	return row, nil
}

// MarkPaid settles an approved request after its proof upload is confirmed.
func (s *Service) MarkPaid(ctx context.Context, requestID string, req MarkPaidRequest) (rpc.Row, error) {
	act, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := act.Require(actor.RolesMarkPaymentPaid...); err != nil {
		return nil, err
	}

	args := []rpc.Arg{
		rpc.Named("p_payment_request_id", requestID),
		rpc.Named("p_object_key", req.ObjectKey),
		rpc.Named("p_file_name", req.FileName),
		rpc.Named("p_mime_type", req.MimeType),
		rpc.Named("p_file_size_bytes", req.FileSizeBytes),
		rpc.Named("p_payment_reference", req.PaymentReference),
		rpc.Named("p_paid_amount", req.PaidAmount),
		rpc.Named("p_notes", req.Notes),
	}
	rows, err := s.markPaidChain.Invoke(ctx, s.inv, act.ID, args)
	if err != nil {
		return nil, err
	}
	return rpc.First(rows), nil
}

// ListForTrip returns every payment request attached to a trip.
func (s *Service) ListForTrip(ctx context.Context, tripID string) ([]rpc.Row, error) {
	act, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := act.Require(actor.RolesListPaymentRequests...); err != nil {
		return nil, err
	}

	rows, err := s.listChain.Invoke(ctx, s.inv, act.ID, []rpc.Arg{rpc.Named("p_trip_id", tripID)})
	if err != nil {
		return nil, err
	}
	out := make([]rpc.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, rpc.Normalize(row))
	}
	return out, nil
}

package trips

import (
	"context"

	"github.com/freightline-erp/freightline-erp/internal/actor"
	"github.com/freightline-erp/freightline-erp/internal/rpc"
)

// Service coordinates actor resolution and remote invocation for each stage
// transition. No stage rule lives here.
type Service struct {
	inv      rpc.Invoker
	resolver *actor.Resolver

	confirmChain rpc.Chain
	assignChain  rpc.Chain
	acceptChain  rpc.Chain
	loadingChain rpc.Chain
	detailChain  rpc.Chain
}

// NewService constructs a Service. onFallback is invoked with every skipped
// procedure name; pass nil to disable.
func NewService(inv rpc.Invoker, resolver *actor.Resolver, onFallback func(procedure string)) *Service {
	return &Service{
		inv:      inv,
		resolver: resolver,
		confirmChain: rpc.Chain{
			Operation:  "trips.confirm",
			OnFallback: onFallback,
			Variants: []rpc.Variant{
				{Procedure: "trip_confirm_v2"},
				{Procedure: "trip_confirm_v1", Shape: rpc.DropArgs("p_credit_days")},
			},
		},
		assignChain: rpc.Chain{
			Operation:  "trips.assign_vehicle",
			OnFallback: onFallback,
			Variants: []rpc.Variant{
				{Procedure: "trip_assign_vehicle_v3"},
				{Procedure: "trip_assign_vehicle_v2"},
				// Legacy v2 signature predates driver assignment.
				{Procedure: "trip_assign_vehicle_v2", Shape: rpc.DropArgs("p_driver_id")},
				{Procedure: "trip_assign_vehicle_v1", Shape: rpc.DropArgs("p_driver_id")},
			},
		},
		acceptChain: rpc.Chain{
			Operation:  "trips.accept",
			OnFallback: onFallback,
			Variants:   []rpc.Variant{{Procedure: "trip_accept_request_v1"}},
		},
		loadingChain: rpc.Chain{
			Operation:  "trips.loading_proof",
			OnFallback: onFallback,
			Variants: []rpc.Variant{
				{Procedure: "trip_loading_proof_confirm_v2"},
				{Procedure: "trip_loading_proof_confirm_v1"},
			},
		},
		detailChain: rpc.Chain{
			Operation:  "trips.detail",
			OnFallback: onFallback,
			Variants:   []rpc.Variant{{Procedure: "trip_get_detail_v1"}},
		},
	}
}

// Confirm moves a quoted trip to confirmed.
func (s *Service) Confirm(ctx context.Context, tripID string, req ConfirmTripRequest) (rpc.Row, error) {
	act, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := act.Require(actor.RolesConfirmTrip...); err != nil {
		return nil, err
	}

	args := []rpc.Arg{
		rpc.Named("p_trip_id", tripID),
		rpc.Named("p_pickup_location", req.PickupLocation),
		rpc.Named("p_drop_location", req.DropLocation),
		rpc.Named("p_vehicle_type", req.VehicleType),
		rpc.Named("p_vehicle_length", req.VehicleLength),
		rpc.Named("p_schedule_date", req.ScheduleDate),
		rpc.Named("p_trip_amount", req.TripAmount),
		rpc.Named("p_advance_amount", req.AdvanceAmount),
		rpc.Named("p_credit_days", req.CreditDays),
	}
	rows, err := s.confirmChain.Invoke(ctx, s.inv, act.ID, args)
	if err != nil {
		return nil, err
	}
	row := rpc.First(rows)
	// The applied default is part of the response even when the legacy
	// procedure does not return it.
	if row != nil && row["creditDays"] == nil && req.CreditDays != nil {
		row["creditDays"] = *req.CreditDays
	}
	return row, nil
}

// AssignVehicle attaches a vehicle, and optionally a driver, to a confirmed trip.
func (s *Service) AssignVehicle(ctx context.Context, tripID string, req AssignVehicleRequest) (rpc.Row, error) {
	act, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := act.Require(actor.RolesAssignVehicle...); err != nil {
		return nil, err
	}

	args := []rpc.Arg{
		rpc.Named("p_trip_id", tripID),
		rpc.Named("p_vehicle_id", req.VehicleID),
	}
	if req.DriverID != "" {
		args = append(args, rpc.Named("p_driver_id", req.DriverID))
	}
	rows, err := s.assignChain.Invoke(ctx, s.inv, act.ID, args)
	if err != nil {
		return nil, err
	}
	return rpc.First(rows), nil
}

// Accept records the vendor's acceptance of a trip request.
func (s *Service) Accept(ctx context.Context, tripID string) (rpc.Row, error) {
	act, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := act.Require(actor.RolesAcceptRequest...); err != nil {
		return nil, err
	}

	rows, err := s.acceptChain.Invoke(ctx, s.inv, act.ID, []rpc.Arg{rpc.Named("p_trip_id", tripID)})
	if err != nil {
		return nil, err
	}
	return rpc.First(rows), nil
}

// ConfirmLoadingProof links an uploaded loading document to the trip.
func (s *Service) ConfirmLoadingProof(ctx context.Context, tripID string, req LoadingProofRequest) (rpc.Row, error) {
	act, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := act.Require(actor.RolesLoadingProof...); err != nil {
		return nil, err
	}

	args := []rpc.Arg{
		rpc.Named("p_trip_id", tripID),
		rpc.Named("p_object_key", req.ObjectKey),
		rpc.Named("p_file_name", req.FileName),
		rpc.Named("p_mime_type", req.MimeType),
		rpc.Named("p_file_size_bytes", req.FileSizeBytes),
	}
	rows, err := s.loadingChain.Invoke(ctx, s.inv, act.ID, args)
	if err != nil {
		return nil, err
	}
	return rpc.First(rows), nil
}

// Detail returns the trip row for any active actor.
func (s *Service) Detail(ctx context.Context, tripID string) (rpc.Row, error) {
	act, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.detailChain.Invoke(ctx, s.inv, act.ID, []rpc.Arg{rpc.Named("p_trip_id", tripID)})
	if err != nil {
		return nil, err
	}
	return rpc.First(rows), nil
}

// Package trips exposes the trip stage-transition routes. Stage rules are
// enforced by the remote procedure layer; this package only validates shape
// and forwards.
package trips

// Stage is a discrete position of a trip in its lifecycle.
type Stage string

const (
	StageRequestReceived   Stage = "request_received"
	StageQuoted            Stage = "quoted"
	StageConfirmed         Stage = "confirmed"
	StageVehicleAssigned   Stage = "vehicle_assigned"
	StageAtLoading         Stage = "at_loading"
	StageLoadedDocsOK      Stage = "loaded_docs_ok"
	StageAdvancePaid       Stage = "advance_paid"
	StageInTransit         Stage = "in_transit"
	StageDelivered         Stage = "delivered"
	StagePODSoftReceived   Stage = "pod_soft_received"
	StageVendorSettled     Stage = "vendor_settled"
	StageCustomerCollected Stage = "customer_collected"
	StageClosed            Stage = "closed"
)

// Stages returns the lifecycle in order. Transitions are monotonic and
// role-gated remotely.
func Stages() []Stage {
	return []Stage{
		StageRequestReceived,
		StageQuoted,
		StageConfirmed,
		StageVehicleAssigned,
		StageAtLoading,
		StageLoadedDocsOK,
		StageAdvancePaid,
		StageInTransit,
		StageDelivered,
		StagePODSoftReceived,
		StageVendorSettled,
		StageCustomerCollected,
		StageClosed,
	}
}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	for _, stage := range Stages() {
		if s == stage {
			return true
		}
	}
	return false
}

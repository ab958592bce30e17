package trips

import "strings"

// defaultCreditDays is applied when the client omits creditDays. The applied
// value is echoed back in the response payload.
const defaultCreditDays = 30

// ConfirmTripRequest is the body for POST /trips/{id}/confirm.
type ConfirmTripRequest struct {
	PickupLocation string   `json:"pickupLocation" validate:"required,max=200"`
	DropLocation   string   `json:"dropLocation" validate:"required,max=200"`
	VehicleType    string   `json:"vehicleType" validate:"required,max=60"`
	VehicleLength  string   `json:"vehicleLength" validate:"required,max=20"`
	ScheduleDate   string   `json:"scheduleDate" validate:"required,datetime=2006-01-02"`
	TripAmount     *float64 `json:"tripAmount" validate:"omitempty,gt=0,lte=1000000000000"`
	AdvanceAmount  *float64 `json:"advanceAmount" validate:"omitempty,gt=0,lte=1000000000000"`
	CreditDays     *int     `json:"creditDays" validate:"omitempty,gte=0,lte=365"`
}

func (r *ConfirmTripRequest) Normalize() {
	r.PickupLocation = strings.TrimSpace(r.PickupLocation)
	r.DropLocation = strings.TrimSpace(r.DropLocation)
	r.VehicleType = strings.TrimSpace(r.VehicleType)
	r.VehicleLength = strings.TrimSpace(r.VehicleLength)
	r.ScheduleDate = strings.TrimSpace(r.ScheduleDate)
	if r.CreditDays == nil {
		days := defaultCreditDays
		r.CreditDays = &days
	}
}

// AssignVehicleRequest is the body for POST /trips/{id}/assign-vehicle.
type AssignVehicleRequest struct {
	VehicleID string `json:"vehicleId" validate:"required,max=64"`
	DriverID  string `json:"driverId" validate:"omitempty,max=64"`
}

func (r *AssignVehicleRequest) Normalize() {
	r.VehicleID = strings.TrimSpace(r.VehicleID)
	r.DriverID = strings.TrimSpace(r.DriverID)
}

// LoadingProofRequest is the body for POST /trips/{id}/loading-proof. All
// four fields reference an already-transferred object.
type LoadingProofRequest struct {
	ObjectKey     string `json:"objectKey" validate:"required,max=512"`
	FileName      string `json:"fileName" validate:"required,max=255"`
	MimeType      string `json:"mimeType" validate:"required,max=120"`
	FileSizeBytes int64  `json:"fileSizeBytes" validate:"required,gt=0"`
}

func (r *LoadingProofRequest) Normalize() {
	r.ObjectKey = strings.TrimSpace(r.ObjectKey)
	r.FileName = strings.TrimSpace(r.FileName)
	r.MimeType = strings.TrimSpace(r.MimeType)
}

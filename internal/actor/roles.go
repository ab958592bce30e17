package actor

// Roles resolved by the remote profile layer.
const (
	RoleAdmin    = "admin"
	RoleOps      = "ops"
	RoleVendor   = "vendor"
	RoleDriver   = "driver"
	RoleFinance  = "finance"
	RoleCustomer = "customer"
)

// Per-operation allow-lists. Checked before any business procedure runs.
var (
	RolesConfirmTrip          = []string{RoleOps, RoleAdmin}
	RolesAssignVehicle        = []string{RoleOps, RoleAdmin}
	RolesAcceptRequest        = []string{RoleVendor}
	RolesLoadingProof         = []string{RoleVendor, RoleDriver, RoleOps}
	RolesCreatePaymentRequest = []string{RoleVendor, RoleOps}
	RolesMarkPaymentPaid      = []string{RoleFinance, RoleAdmin}
	RolesListPaymentRequests  = []string{RoleFinance, RoleOps, RoleAdmin}
)

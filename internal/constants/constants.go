package constants

// Session keys
const (
	SessionKeyUserID = "user_id"
	SessionKeyRole   = "user_role"
)

// Context keys
const (
	ContextKeyCaller = "caller"
)

// Roles
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Auth
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Dashboard
const (
	DashboardRecentLimit = 5
)

// Donation constraints
const (
	MinDonationQuantity = 1
	MaxDonationQuantity = 10000
)

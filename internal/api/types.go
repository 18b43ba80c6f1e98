package api

import "time"

// Plan identifies a chef subscription tier.
type Plan string

const (
	PlanStarter   Plan = "STARTER"
	PlanGrowth    Plan = "GROWTH"
	PlanUnlimited Plan = "UNLIMITED"
)

// ChefStatus is derived from the verification fields; it is never stored or
// sent by the server as its own field.
type ChefStatus string

const (
	StatusPending  ChefStatus = "pending"
	StatusApproved ChefStatus = "approved"
	StatusRejected ChefStatus = "rejected"
)

// StatusFilter selects which slice of the roster to fetch. FilterAll omits
// the status query parameter entirely.
type StatusFilter string

const (
	FilterAll      StatusFilter = "all"
	FilterPending  StatusFilter = "pending"
	FilterApproved StatusFilter = "approved"
	FilterRejected StatusFilter = "rejected"
)

// Filters lists the recognized filters in display order.
func Filters() []StatusFilter {
	return []StatusFilter{FilterAll, FilterPending, FilterApproved, FilterRejected}
}

// ParseFilter maps a stored preference back to a filter, falling back to all.
func ParseFilter(value string) StatusFilter {
	switch StatusFilter(value) {
	case FilterPending, FilterApproved, FilterRejected:
		return StatusFilter(value)
	default:
		return FilterAll
	}
}

// ChefUser is the marketplace account behind a chef application.
type ChefUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChefRecord is one chef application/account as the admin console sees it.
// Records are read-only snapshots; the roster is replaced wholesale on every
// successful fetch and never mutated in place.
type ChefRecord struct {
	ID              string     `json:"id"`
	KitchenName     string     `json:"kitchenName"`
	User            ChefUser   `json:"user"`
	IsVerified      bool       `json:"isVerified"`
	ApprovedAt      *time.Time `json:"approvedAt"`
	RejectedAt      *time.Time `json:"rejectedAt"`
	RejectionReason *string    `json:"rejectionReason"`
	Plan            Plan       `json:"plan"`
	TrialEndsAt     *time.Time `json:"trialEndsAt"`
	AvgRating       float64    `json:"avgRating"`
	TotalReviews    int        `json:"totalReviews"`
	DeliveryRadius  float64    `json:"deliveryRadius"`
	OrderCount      int        `json:"orderCount"`
	MenuCount       int        `json:"menuCount"`
	ReviewCount     int        `json:"reviewCount"`
}

// Status derives the presentation status. Verification wins over a stale
// rejectedAt: a chef approved after rejection reads as approved.
func (c ChefRecord) Status() ChefStatus {
	if c.IsVerified {
		return StatusApproved
	}
	if c.RejectedAt != nil {
		return StatusRejected
	}
	return StatusPending
}

// HasActiveTrial reports whether the trial-extension action applies.
func (c ChefRecord) HasActiveTrial() bool {
	return c.TrialEndsAt != nil
}

// ChefStats carries platform-wide totals. The server aggregates over the
// full roster even when the fetch itself was filtered.
type ChefStats struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

// Identity describes the authenticated operator.
type Identity struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// Roles allowed through the console entry gate.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
)

package approvals

// Category classifies how urgent a recommendation is.
type Category string

const (
	CategoryRecommendedImmediately Category = "recommended_immediately"
	CategoryServiceSoon            Category = "service_soon"
	CategoryAllSystemsGo           Category = "all_systems_go"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryRecommendedImmediately, CategoryServiceSoon, CategoryAllSystemsGo:
		return true
	default:
		return false
	}
}

// ApprovalStatus is the decision recorded for a single recommendation.
type ApprovalStatus string

const (
	StatusPending     ApprovalStatus = "pending"
	StatusApproved    ApprovalStatus = "approved"
	StatusNotApproved ApprovalStatus = "not_approved"
)

// Valid reports whether s is one of the known statuses.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusNotApproved:
		return true
	default:
		return false
	}
}

// ReviewState is the aggregate review classification of a job.
type ReviewState string

const (
	ReviewNotReviewed       ReviewState = "not_reviewed"
	ReviewPartiallyReviewed ReviewState = "partially_reviewed"
	ReviewReviewed          ReviewState = "reviewed"
)

// BrakePadsDetails holds brake pad inspection measurements.
type BrakePadsDetails struct {
	ThicknessDriverMm    *float64 `json:"thicknessDriverMm,omitempty"`
	ThicknessPassengerMm *float64 `json:"thicknessPassengerMm,omitempty"`
	Condition            string   `json:"condition,omitempty"`
}

// RotorsDetails holds rotor inspection notes.
type RotorsDetails struct {
	Condition string `json:"condition,omitempty"`
}

// FluidDetails holds brake fluid inspection readings.
type FluidDetails struct {
	PPM   *int   `json:"ppm,omitempty"`
	Level string `json:"level,omitempty"` // "full" or "not_full"
}

// Recommendation is a single suggested service line item on a job.
type Recommendation struct {
	ID             string            `json:"id"`
	JobID          string            `json:"jobId"`
	ServiceName    string            `json:"serviceName"`
	Category       Category          `json:"category"`
	ApprovalStatus ApprovalStatus    `json:"approvalStatus"`
	Description    string            `json:"description,omitempty"`
	ConditionTags  []string          `json:"conditionTags,omitempty"`
	BrakePads      *BrakePadsDetails `json:"brakePads,omitempty"`
	Rotors         *RotorsDetails    `json:"rotors,omitempty"`
	Fluid          *FluidDetails     `json:"fluid,omitempty"`
	PhotoURL       string            `json:"photoUrl,omitempty"`
}

// Job groups the recommendations produced by one vehicle visit.
type Job struct {
	ID              string           `json:"id"`
	VehicleID       string           `json:"vehicleId"`
	Date            string           `json:"date"`
	Recommendations []Recommendation `json:"recommendations"`
}

// JobWithReviewState is a Job plus its derived review fields.
type JobWithReviewState struct {
	Job
	ReviewState  ReviewState `json:"reviewState"`
	PendingCount int         `json:"pendingCount"`
}

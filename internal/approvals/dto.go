package approvals

// VehicleResponse is the vehicle block embedded in job responses.
type VehicleResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	VIN          string `json:"vin"`
	Year         string `json:"year,omitempty"`
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
	LicensePlate string `json:"licensePlate,omitempty"`
}

// JobResponse is the outward-facing representation of a job.
type JobResponse struct {
	ID              string           `json:"id"`
	VehicleID       string           `json:"vehicleId"`
	VehicleDisplay  string           `json:"vehicleDisplay"`
	Vehicle         *VehicleResponse `json:"vehicle,omitempty"`
	Date            string           `json:"date"`
	ReviewState     ReviewState      `json:"reviewState"`
	PendingCount    int              `json:"pendingCount"`
	Recommendations []Recommendation `json:"recommendations"`
}

// TransitionResponse reports an applied approval change.
type TransitionResponse struct {
	JobID            string         `json:"jobId"`
	RecommendationID string         `json:"recommendationId"`
	From             ApprovalStatus `json:"from"`
	To               ApprovalStatus `json:"to"`
	Job              JobResponse    `json:"job"`
}

// SummaryResponse is the outward-facing job summary.
type SummaryResponse struct {
	Total             int `json:"total"`
	NotReviewed       int `json:"notReviewed"`
	PartiallyReviewed int `json:"partiallyReviewed"`
	Reviewed          int `json:"reviewed"`
	PendingApprovals  int `json:"pendingApprovals"`
}

func toResponse(v JobView) JobResponse {
	resp := JobResponse{
		ID:              v.ID,
		VehicleID:       v.VehicleID,
		VehicleDisplay:  v.VehicleDisplay(),
		Date:            v.Date,
		ReviewState:     v.ReviewState,
		PendingCount:    v.PendingCount,
		Recommendations: v.Recommendations,
	}
	if resp.Recommendations == nil {
		resp.Recommendations = []Recommendation{}
	}
	if v.Vehicle != nil {
		resp.Vehicle = &VehicleResponse{
			ID:           v.Vehicle.ID,
			Name:         v.Vehicle.Name,
			VIN:          v.Vehicle.VIN,
			Year:         v.Vehicle.Year,
			Make:         v.Vehicle.Make,
			Model:        v.Vehicle.Model,
			LicensePlate: v.Vehicle.LicensePlate,
		}
	}
	return resp
}

func toTransitionResponse(t Transition) TransitionResponse {
	return TransitionResponse{
		JobID:            t.JobID,
		RecommendationID: t.RecommendationID,
		From:             t.From,
		To:               t.To,
		Job:              toResponse(t.Job),
	}
}

func toSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		Total:             s.Total,
		NotReviewed:       s.NotReviewed,
		PartiallyReviewed: s.PartiallyReviewed,
		Reviewed:          s.Reviewed,
		PendingApprovals:  s.PendingApprovals,
	}
}

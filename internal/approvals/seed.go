package approvals

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

// SeedJobs returns the demo jobs used by the in-memory backend. Each call
// builds fresh values so callers may keep or modify them freely.
func SeedJobs() []Job {
	recs := []Recommendation{
		{
			ID:             "rec-1",
			JobID:          "job-1",
			ServiceName:    "Front brake pads",
			Category:       CategoryRecommendedImmediately,
			ApprovalStatus: StatusPending,
			Description:    "Recommend replacement due to condition + thickness",
			ConditionTags:  []string{"UNEVEN WEAR"},
			BrakePads: &BrakePadsDetails{
				ThicknessDriverMm:    floatPtr(4.2),
				ThicknessPassengerMm: floatPtr(3.8),
				Condition:            "Uneven wear",
			},
			PhotoURL: "/api/inspection-photos/rec-1",
		},
		{
			ID:             "rec-2",
			JobID:          "job-1",
			ServiceName:    "Brake fluid exchange",
			Category:       CategoryServiceSoon,
			ApprovalStatus: StatusPending,
			Description:    "Flush recommended based on age and moisture content",
			ConditionTags:  []string{"MOISTURE DETECTED"},
			Fluid: &FluidDetails{
				PPM:   intPtr(850),
				Level: "not_full",
			},
		},
		{
			ID:             "rec-3",
			JobID:          "job-1",
			ServiceName:    "Front Brake Rotors",
			Category:       CategoryAllSystemsGo,
			ApprovalStatus: StatusPending,
			Description:    "Good Condition",
			Rotors:         &RotorsDetails{Condition: "Good Condition"},
			PhotoURL:       "/api/inspection-photos/rec-3",
		},
		{
			ID:             "rec-4",
			JobID:          "job-2",
			ServiceName:    "Rear brake rotors",
			Category:       CategoryRecommendedImmediately,
			ApprovalStatus: StatusApproved,
			Description:    "Rear rotors at minimum thickness",
			ConditionTags:  []string{"MIN THICKNESS", "CRITICAL"},
			Rotors:         &RotorsDetails{Condition: "At minimum thickness"},
		},
		{
			ID:             "rec-5",
			JobID:          "job-2",
			ServiceName:    "Brake hose inspection",
			Category:       CategoryServiceSoon,
			ApprovalStatus: StatusPending,
			Description:    "Minor wear observed",
			ConditionTags:  []string{"WEAR OBSERVED"},
		},
		{
			ID:             "rec-6",
			JobID:          "job-3",
			ServiceName:    "Brake pads (all)",
			Category:       CategoryRecommendedImmediately,
			ApprovalStatus: StatusNotApproved,
			Description:    "Customer deferred",
			ConditionTags:  []string{"DEFERRED"},
			BrakePads: &BrakePadsDetails{
				ThicknessDriverMm:    floatPtr(5.1),
				ThicknessPassengerMm: floatPtr(5.0),
				Condition:            "Customer deferred",
			},
		},
		{
			ID:             "rec-7",
			JobID:          "job-3",
			ServiceName:    "Tire condition",
			Category:       CategoryAllSystemsGo,
			ApprovalStatus: StatusPending,
			Description:    "All systems go",
		},
	}

	jobs := []Job{
		{ID: "job-1", VehicleID: "1", Date: "2025-01-15"},
		{ID: "job-2", VehicleID: "2", Date: "2025-01-14"},
		{ID: "job-3", VehicleID: "3", Date: "2025-01-13"},
	}
	for i := range jobs {
		jobs[i].Recommendations = []Recommendation{}
		for _, r := range recs {
			if r.JobID == jobs[i].ID {
				jobs[i].Recommendations = append(jobs[i].Recommendations, r)
			}
		}
	}
	return jobs
}

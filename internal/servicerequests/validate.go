package servicerequests

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// normalize trims values and drops duplicate vehicle ids and services.
func normalize(in Input) Input {
	out := Input{
		OtherService:  strings.TrimSpace(in.OtherService),
		PreferredDate: strings.TrimSpace(in.PreferredDate),
		Flexible:      in.Flexible,
		PreferredTime: strings.TrimSpace(in.PreferredTime),
	}
	out.VehicleIDs = uniqueTrimmed(in.VehicleIDs)
	out.Services = uniqueTrimmed(in.Services)
	if out.Flexible {
		out.PreferredDate = ""
	}
	return out
}

// Validate checks a normalized input in the order the form reports problems.
func Validate(in Input) error {
	if len(in.VehicleIDs) == 0 {
		return invalid("Please select at least one vehicle")
	}
	if len(in.Services) == 0 {
		return invalid("Please select at least one service")
	}
	if contains(in.Services, ServiceOther) && in.OtherService == "" {
		return invalid("Please specify the 'Other' service")
	}
	if !in.Flexible && in.PreferredDate == "" {
		return invalid("Please select a preferred date or mark as flexible")
	}
	if in.PreferredTime == "" {
		return invalid("Please select a preferred time window")
	}

	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return invalid("%v", err)
	}
	fe := verrs[0]
	switch field := fe.StructField(); {
	case strings.HasPrefix(field, "Services"):
		return invalid("Unknown service: %v", fe.Value())
	case field == "PreferredDate":
		return invalid("Preferred date must be formatted YYYY-MM-DD")
	case field == "PreferredTime":
		return invalid("Preferred time must be one of %s", strings.Join(TimeWindows, ", "))
	default:
		return invalid("Invalid %s", fe.Field())
	}
}

func uniqueTrimmed(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

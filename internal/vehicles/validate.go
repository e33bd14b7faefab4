package vehicles

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func trim(s string) string {
	return strings.TrimSpace(s)
}

// normalize trims every field of the input.
func (in Input) normalize() Input {
	return Input{
		Name:              trim(in.Name),
		Year:              trim(in.Year),
		Make:              trim(in.Make),
		Model:             trim(in.Model),
		VIN:               trim(in.VIN),
		LicensePlate:      trim(in.LicensePlate),
		LicensePlateState: trim(in.LicensePlateState),
	}
}

// validateInput reports missing required fields as ErrInvalidInput.
func validateInput(in Input) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, strings.ToLower(fe.Field()))
	}
	return fmt.Errorf("%w: missing required fields (%s)", ErrInvalidInput, strings.Join(missing, ", "))
}

func inputFromVehicle(v Vehicle) Input {
	return Input{
		Name:              v.Name,
		Year:              v.Year,
		Make:              v.Make,
		Model:             v.Model,
		VIN:               v.VIN,
		LicensePlate:      v.LicensePlate,
		LicensePlateState: v.LicensePlateState,
	}
}

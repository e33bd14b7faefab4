package vehicles

// Vehicle is one entry in the fleet roster.
type Vehicle struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Year              string `json:"year"`
	Make              string `json:"make"`
	Model             string `json:"model"`
	VIN               string `json:"vin"`
	LicensePlate      string `json:"licensePlate"`
	LicensePlateState string `json:"licensePlateState"`
}

// Input carries the fields needed to create a vehicle.
type Input struct {
	Name              string `json:"name"`
	Year              string `json:"year" validate:"required"`
	Make              string `json:"make" validate:"required"`
	Model             string `json:"model" validate:"required"`
	VIN               string `json:"vin" validate:"required"`
	LicensePlate      string `json:"licensePlate"`
	LicensePlateState string `json:"licensePlateState"`
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Name              *string `json:"name"`
	Year              *string `json:"year"`
	Make              *string `json:"make"`
	Model             *string `json:"model"`
	VIN               *string `json:"vin"`
	LicensePlate      *string `json:"licensePlate"`
	LicensePlateState *string `json:"licensePlateState"`
}

// DisplayName is the name shown in lists, falling back to the VIN.
func (v Vehicle) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}
	if v.VIN != "" {
		return v.VIN
	}
	return v.ID
}

func (in Input) toVehicle(id string) Vehicle {
	name := in.Name
	if name == "" {
		name = in.LicensePlate
	}
	return Vehicle{
		ID:                id,
		Name:              name,
		Year:              in.Year,
		Make:              in.Make,
		Model:             in.Model,
		VIN:               in.VIN,
		LicensePlate:      in.LicensePlate,
		LicensePlateState: in.LicensePlateState,
	}
}

func (p Patch) apply(v Vehicle) Vehicle {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = trim(*src)
		}
	}
	set(&v.Name, p.Name)
	set(&v.Year, p.Year)
	set(&v.Make, p.Make)
	set(&v.Model, p.Model)
	set(&v.VIN, p.VIN)
	set(&v.LicensePlate, p.LicensePlate)
	set(&v.LicensePlateState, p.LicensePlateState)
	return v
}

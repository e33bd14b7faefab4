package servicerequests

import "time"

// Service names offered on the request form. ServiceOther is replaced by the
// caller's free text in the payload.
const (
	ServiceBrakePads    = "Brake Pad Replacement"
	ServiceBrakeRotors  = "Brake Rotor Replacement"
	ServiceBrakeCaliper = "Brake Caliper Replacement"
	ServiceBattery      = "Battery Replacement"
	ServiceOilChange    = "Oil Change"
	ServiceOther        = "Other"
)

// AvailableServices lists the selectable services in display order.
var AvailableServices = []string{
	ServiceBrakePads,
	ServiceBrakeRotors,
	ServiceBrakeCaliper,
	ServiceBattery,
	ServiceOilChange,
	ServiceOther,
}

// TimeWindows lists the accepted preferred time values.
var TimeWindows = []string{"Morning", "Afternoon", "Anytime"}

// Delivery states of a stored request.
const (
	DeliveryPending   = "pending"
	DeliveryDelivered = "delivered"
	DeliveryFailed    = "failed"
)

// Input is a service request as submitted by a fleet manager.
type Input struct {
	VehicleIDs    []string `json:"vehicleIds"`
	Services      []string `json:"services" validate:"dive,oneof='Brake Pad Replacement' 'Brake Rotor Replacement' 'Brake Caliper Replacement' 'Battery Replacement' 'Oil Change' 'Other'"`
	OtherService  string   `json:"otherService"`
	PreferredDate string   `json:"preferredDate" validate:"omitempty,datetime=2006-01-02"`
	Flexible      bool     `json:"flexible"`
	PreferredTime string   `json:"preferredTime" validate:"omitempty,oneof=Morning Afternoon Anytime"`
}

// VehicleRef is the roster snapshot sent with a request.
type VehicleRef struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	VIN               string `json:"vin"`
	LicensePlate      string `json:"licensePlate"`
	LicensePlateState string `json:"licensePlateState"`
}

// Payload is the body delivered to the webhook.
type Payload struct {
	Vehicles      []VehicleRef `json:"vehicles"`
	Services      []string     `json:"services"`
	PreferredDate *string      `json:"preferredDate"`
	PreferredTime string       `json:"preferredTime"`
	SubmittedAt   string       `json:"submittedAt"`
}

// Request is a stored service request with its delivery outcome.
type Request struct {
	ID             string    `json:"id"`
	SubmittedBy    string    `json:"submittedBy"`
	Payload        Payload   `json:"payload"`
	DeliveryStatus string    `json:"deliveryStatus"`
	DeliveryError  string    `json:"deliveryError,omitempty"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// Confirmation is the human readable summary shown after submitting.
type Confirmation struct {
	Vehicles      []string `json:"vehicles"`
	Services      []string `json:"services"`
	PreferredDate string   `json:"preferredDate"`
	PreferredTime string   `json:"preferredTime"`
}

// Confirm builds the confirmation summary for a payload.
func (p Payload) Confirm() Confirmation {
	names := make([]string, 0, len(p.Vehicles))
	for _, v := range p.Vehicles {
		switch {
		case v.Name != "":
			names = append(names, v.Name)
		case v.VIN != "":
			names = append(names, v.VIN)
		default:
			names = append(names, v.ID)
		}
	}
	date := "Flexible"
	if p.PreferredDate != nil {
		date = *p.PreferredDate
	}
	return Confirmation{
		Vehicles:      names,
		Services:      append([]string(nil), p.Services...),
		PreferredDate: date,
		PreferredTime: p.PreferredTime,
	}
}

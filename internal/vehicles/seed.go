package vehicles

// SeedVehicles returns the demo roster.
func SeedVehicles() []Vehicle {
	return []Vehicle{
		{ID: "1", Name: "ABC-1234", Year: "2022", Make: "Ford", Model: "Transit", VIN: "1FTBR1CM5NKA12345", LicensePlate: "ABC-1234", LicensePlateState: "CA"},
		{ID: "2", Name: "DEF-5678", Year: "2021", Make: "Chevrolet", Model: "Express", VIN: "1GCVKREC1MZ123456", LicensePlate: "DEF-5678", LicensePlateState: "TX"},
		{ID: "3", Name: "GHI-9012", Year: "2023", Make: "Ram", Model: "ProMaster", VIN: "3C6TRVAG3NE123456", LicensePlate: "GHI-9012", LicensePlateState: "FL"},
		{ID: "4", Name: "JKL-3456", Year: "2020", Make: "Ford", Model: "F-150", VIN: "1FTFW1ET5LFC12345", LicensePlate: "JKL-3456", LicensePlateState: "NY"},
		{ID: "5", Name: "MNO-7890", Year: "2022", Make: "Toyota", Model: "Sienna", VIN: "5TDKZ3DC1NS123456", LicensePlate: "MNO-7890", LicensePlateState: "CA"},
	}
}

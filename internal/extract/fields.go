package extract

// ExtractedFields is the closed set of fields the parser recognizes.
// Every key is always present; an unmatched field is an empty string.
// Declaring the set here keeps the extraction and rendering stages from
// drifting apart on ad hoc keys.
type ExtractedFields struct {
	CustomerName   string `json:"customer_name"`
	Destination    string `json:"destination"`
	RegNo          string `json:"reg_no"`
	EngineNo       string `json:"engine_no"`
	ChassisNo      string `json:"chassis_no"`
	Color          string `json:"color"`
	BodyType       string `json:"body_type"`
	InsuranceValue string `json:"insurance_value"`
	Signatory      string `json:"signatory"`
	ValuationDate  string `json:"valuation_date"`
	Imei1          string `json:"imei1"`
	Imei2          string `json:"imei2"`
}

// Map returns the fields keyed by their template placeholder names
func (f *ExtractedFields) Map() map[string]string {
	return map[string]string{
		"customer_name":   f.CustomerName,
		"destination":     f.Destination,
		"reg_no":          f.RegNo,
		"engine_no":       f.EngineNo,
		"chassis_no":      f.ChassisNo,
		"color":           f.Color,
		"body_type":       f.BodyType,
		"insurance_value": f.InsuranceValue,
		"signatory":       f.Signatory,
		"valuation_date":  f.ValuationDate,
		"imei1":           f.Imei1,
		"imei2":           f.Imei2,
	}
}

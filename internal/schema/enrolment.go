package schema

// EnrolmentColumns are the header columns of a district enrolment upload.
var EnrolmentColumns = []string{"District", "Total", "SSMO", "FMA", "HHA_GDA"}

// EnrolmentRules validates enrolment counts per district. SSMO, FMA and HHA_GDA
// are the per-trade enrolment counts.
var EnrolmentRules = []FieldRule{
	districtRule,
	nonNegative("Total"),
	nonNegative("SSMO"),
	nonNegative("FMA"),
	nonNegative("HHA_GDA"),
}

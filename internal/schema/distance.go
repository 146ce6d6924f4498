package schema

// DistanceColumns are the header columns of a training-centre distance upload.
var DistanceColumns = []string{"District", "TC1_Distance_Km", "TC2_Distance_Km"}

// DistanceRules validates distances from a district to its two nearest training centres.
var DistanceRules = []FieldRule{
	districtRule,
	nonNegative("TC1_Distance_Km"),
	nonNegative("TC2_Distance_Km"),
}

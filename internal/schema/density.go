package schema

// DensityColumns are the header columns of a population density upload.
var DensityColumns = []string{"District", "Population", "Area_SqKm"}

// DensityRules requires strictly positive population and area so density is defined.
var DensityRules = []FieldRule{
	districtRule,
	positive("Population"),
	positive("Area_SqKm"),
}

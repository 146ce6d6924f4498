package datasets

import (
	"github.com/JonMunkholm/csvingest/internal/core"
	"github.com/JonMunkholm/csvingest/internal/schema"
)

func init() {
	registerDensity()
}

func registerDensity() {
	core.Register(core.Dataset{
		Key:             Density,
		Label:           "Population density",
		Description:     "Per-district population and area in square kilometres",
		RequiredColumns: schema.DensityColumns,
		Rules:           schema.DensityRules,
	})
}

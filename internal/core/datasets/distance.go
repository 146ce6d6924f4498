package datasets

import (
	"github.com/JonMunkholm/csvingest/internal/core"
	"github.com/JonMunkholm/csvingest/internal/schema"
)

func init() {
	registerDistance()
}

func registerDistance() {
	core.Register(core.Dataset{
		Key:             Distance,
		Label:           "Training centre distance",
		Description:     "Per-district distance to the two nearest training centres",
		RequiredColumns: schema.DistanceColumns,
		Rules:           schema.DistanceRules,
	})
}

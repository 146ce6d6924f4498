package datasets

import (
	"github.com/JonMunkholm/csvingest/internal/core"
	"github.com/JonMunkholm/csvingest/internal/schema"
)

func init() {
	registerEnrolment()
}

func registerEnrolment() {
	core.Register(core.Dataset{
		Key:             Enrolment,
		Label:           "Enrolment",
		Description:     "Per-district enrolment totals by programme",
		RequiredColumns: schema.EnrolmentColumns,
		Rules:           schema.EnrolmentRules,
	})
}

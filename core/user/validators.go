package user

import (
	"github.com/go-playground/validator/v10"

	"github.com/linkudp/linkudp-cli/core"
)

var (
	roleTag  = "role"
	roleText = "invalid role"

	weekdayTag  = "weekday"
	weekdayText = "invalid day of week"

	timeOrderTag  = "timeorder"
	timeOrderText = "end time must be after start time"
)

func init() {
	// register validators
	_ = core.Validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(roleTag, roleText)

	_ = core.Validate.RegisterValidation(weekdayTag, weekdayValidation)
	core.RegisterCustomTranslation(weekdayTag, weekdayText)

	core.Validate.RegisterStructValidation(availabilityStructValidation, AvailabilityBlock{})
	core.RegisterCustomTranslation(timeOrderTag, timeOrderText)
}

// Custom Validators

// roleValidation checks that a provided role is one of AllRoles.
func roleValidation(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).Valid()
}

// weekdayValidation checks that a provided day is one of AllDays.
func weekdayValidation(fl validator.FieldLevel) bool {
	return DayOfWeek(fl.Field().String()).Valid()
}

// availabilityStructValidation checks that a block's window is non-empty.
// HH:MM strings compare correctly lexicographically.
func availabilityStructValidation(sl validator.StructLevel) {
	block := sl.Current().Interface().(AvailabilityBlock)
	if block.StartTime != "" && block.EndTime != "" && block.EndTime <= block.StartTime {
		sl.ReportError(block.EndTime, "end_time", "EndTime", timeOrderTag, "")
	}
}

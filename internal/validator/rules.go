package validator

import (
	"log"

	"jobboard_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs the enum validation tags backed by the
// status constants in internal/models.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup bug.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-job-status", validateJobStatus)
	mustRegister("is-employment-type", validateEmploymentType)
	mustRegister("is-application-status", validateApplicationStatus)
}

func validateJobStatus(fl validator.FieldLevel) bool {
	value := models.JobStatus(fl.Field().String())
	for _, s := range models.ValidJobStatuses {
		if value == s {
			return true
		}
	}
	return false
}

func validateEmploymentType(fl validator.FieldLevel) bool {
	value := models.EmploymentType(fl.Field().String())
	for _, t := range models.ValidEmploymentTypes {
		if value == t {
			return true
		}
	}
	return false
}

func validateApplicationStatus(fl validator.FieldLevel) bool {
	value := models.ApplicationStatus(fl.Field().String())
	for _, s := range models.ValidApplicationStatuses {
		if value == s {
			return true
		}
	}
	return false
}

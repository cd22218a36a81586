package handlers

import (
	"fmt"
	"sync"

	"github.com/SscSPs/job_tracker_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// enumValidators maps binding tags to the enum check behind them.
var enumValidators = map[string]func(string) bool{
	"application_status": func(v string) bool { return domain.ApplicationStatus(v).IsValid() },
	"reminder_status":    func(v string) bool { return domain.ReminderStatus(v).IsValid() },
	"interview_status":   func(v string) bool { return domain.InterviewStatus(v).IsValid() },
	"timeframe":          func(v string) bool { return domain.TimeFrame(v).IsValid() },
	"work_location":      func(v string) bool { return domain.WorkLocation(v).IsValid() },
	"priority":           func(v string) bool { return domain.Priority(v).IsValid() },
	"sort_mode":          func(v string) bool { return domain.SortMode(v).IsValid() },
	"schedule_order":     func(v string) bool { return domain.ScheduleOrder(v).IsValid() },
}

// RegisterValidators installs the enum validators on gin's binding engine.
// It is safe to call more than once.
func RegisterValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		for tag, check := range enumValidators {
			check := check
			if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return check(fl.Field().String())
			}); err != nil {
				validatorsErr = fmt.Errorf("failed to register %s validator: %w", tag, err)
				return
			}
		}
	})
	return validatorsErr
}

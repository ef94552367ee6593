package handler

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"letly-be-svc/internal/billing"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request structs:
// "period" accepts a YYYY-MM label.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("period", func(fl validator.FieldLevel) bool {
				return billing.ValidPeriod(fl.Field().String())
			})
		}
	})
}

package request

import (
	"regexp"
	"sync"

	"shortlet-booking/internal/domain/stay"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce  sync.Once
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)
)

// RegisterValidators adds the isodate and currency tags to gin's validator.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err = v.RegisterValidation("isodate", isoDate); err != nil {
			return
		}
		err = v.RegisterValidation("currency", currency)
	})
	return err
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := stay.ParseDate(fl.Field().String())
	return err == nil
}

func currency(fl validator.FieldLevel) bool {
	return currencyRegex.MatchString(fl.Field().String())
}

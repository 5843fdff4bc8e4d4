package validator

import (
	"log"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		err := v.RegisterValidation("role", roleValidator)
		if err != nil {
			log.Fatal("register role validator failed")
		}
	}
}

// roleValidator accepts any casing on the wire; the service layer normalizes
// to lowercase before persisting.
var roleValidator validator.Func = func(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "manager", "founder", "team_member", "investor":
		return true
	}
	return false
}

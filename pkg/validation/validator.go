package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// Error messages use JSON tag names, and a few domain aliases are
// registered for request structs.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Aliases for common field semantics
		v.RegisterAlias("pwdhash", "len=64,hexadecimal") // hex SHA-256 digest
		v.RegisterAlias("eventtitle", "min=4,max=40")
		v.RegisterAlias("eventdesc", "min=4,max=100")
		v.RegisterAlias("eventloc", "min=4,max=30")
		v.RegisterAlias("eventdate", "min=4,max=30")
		v.RegisterAlias("eventform", "min=1,max=200")
		v.RegisterAlias("eventprice", "min=0,max=10000")
	}
}

// ToDetails converts binding errors into a field -> message map for
// the API error body.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()
	kind := fe.Kind()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "hexadecimal":
		return "must be hexadecimal"
	case "len":
		return "must have length " + param
	case "min":
		if kind == reflect.String {
			return "must be at least " + param + " characters"
		}
		return "must be at least " + param
	case "max":
		if kind == reflect.String {
			return "must be at most " + param + " characters"
		}
		return "must be at most " + param
	case "oneof":
		return "must be one of " + param
	case "pwdhash":
		return "must be a hex sha-256 digest"
	case "eventtitle", "eventdesc", "eventloc", "eventdate", "eventform":
		return "length out of bounds"
	case "eventprice":
		return "must be between 0 and 10000"
	default:
		if param != "" {
			return "failed " + tag + "=" + param
		}
		return "failed " + tag
	}
}

package validate

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their form name so failures line up with what the user filled in.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}

		return name
	})

	// utf16min counts a string's length the way a browser's String.length does,
	// characters outside the BMP (most emoji) count as two.
	if err := validate.RegisterValidation("utf16min", func(fl validator.FieldLevel) bool {
		least, err := strconv.Atoi(fl.Param())
		if err != nil {
			panic("utf16min needs a numeric parameter, got: " + fl.Param())
		}

		return UTF16Len(fl.Field().String()) >= least
	}); err != nil {
		panic(err)
	}
}

// UTF16Len is the number of UTF-16 code units needed for s.
func UTF16Len(s string) int {
	var n int
	for _, r := range s {
		n += utf16.RuneLen(r)
	}

	return n
}

// Struct is a thin wrapper around validator.Validate's StructCtx.
// This exists purely to ensure that we only have one validator cache.
func Struct(ctx context.Context, s any) error {
	return validate.StructCtx(ctx, s)
}

// Failure is a single failed rule on a field.
type Failure struct {
	Field string
	Tag   string
}

// Failures lists the failed rules in the order the fields are declared.
// Errors that didn't come from validation give an empty list.
func Failures(err error) []Failure {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	ret := make([]Failure, 0, len(errs))
	for _, fe := range errs {
		ret = append(ret, Failure{Field: fe.Field(), Tag: fe.Tag()})
	}

	return ret
}

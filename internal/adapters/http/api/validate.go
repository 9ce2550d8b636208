package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/okian/stylematch/internal/domain/model"
)

var validate = newValidator() //nolint:gochecknoglobals // validator caches struct metadata

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("aesthetic", func(fl validator.FieldLevel) bool {
		return model.Aesthetic(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("palette", func(fl validator.FieldLevel) bool {
		return model.Palette(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("vibe", func(fl validator.FieldLevel) bool {
		return model.Vibe(fl.Field().String()).Valid()
	})
	return v
}

// validateStruct runs struct validation and folds failures into a single
// ErrBadRequest.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrBadRequest, strings.Join(msgs, "; "))
}

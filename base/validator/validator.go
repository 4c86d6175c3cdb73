package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/x-xyz/metagen/domain"
	"golang.org/x/xerrors"
)

func NewCustomValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{v}
}

// New returns a validator with the default go-playground rules.
func New() *CustomValidator {
	return NewCustomValidator(validator.New())
}

type CustomValidator struct {
	validator *validator.Validate
}

// RegisterStructValidation adds a struct level rule for the types of the given values.
func (v *CustomValidator) RegisterStructValidation(fn validator.StructLevelFunc, types ...interface{}) {
	v.validator.RegisterStructValidation(fn, types...)
}

// Validate checks i against its `validate` tags. Failures wrap domain.ErrBadParamInput.
func (v *CustomValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return xerrors.Errorf("%s: %w", err.Error(), domain.ErrBadParamInput)
	}
	return nil
}

package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"adboard/internal/domain"
)

var validate = validator.New()

// checkInput runs struct-tag validation and folds failures into the
// ErrInvalidInput sentinel so callers can match on the taxonomy.
func checkInput(in any) error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	playerRangeRE = regexp.MustCompile(`^(\*|\d+(\.\d+)?)-(\*|\d+(\.\d+)?)$`)
)

// playerRangeValidator ensures the value matches a player-count range key as
// produced by the filter panel, e.g. "*-10.0", "10.0-20.0", or "50.0-*". The
// empty string is allowed so the validator can be combined with omitempty
// semantics; add `required` to the validate tag if the value is mandatory.
func playerRangeValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return playerRangeRE.MatchString(value)
}

package config

import (
	"regexp"
	"strings"

	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
)

var (
	extRegexp   = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)
	colorRegexp = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
	rankRegexp  = regexp.MustCompile(`^\d`)
)

// validateSize validates the size format (e.g., "10MB", "1GB")
func validateSize(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	_, err := units.FromHumanSize(value)
	return err == nil
}

// validateExt accepts a dotted extension such as ".jpg"
func validateExt(fl validator.FieldLevel) bool {
	return extRegexp.MatchString(fl.Field().String())
}

// validateColorCode checks if the field contains a valid hex color code.
func validateColorCode(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return colorRegexp.MatchString(value)
}

// validateTempPrefix rejects prefixes that could be mistaken for a rank prefix
// or that would escape the directory.
func validateTempPrefix(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if strings.ContainsAny(value, `/\`) {
		return false
	}
	return !rankRegexp.MatchString(value)
}

func validateRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}

func validateGlob(fl validator.FieldLevel) bool {
	_, err := glob.Compile(fl.Field().String())
	return err == nil
}

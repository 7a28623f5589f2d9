package catalog

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// MinArtistAge and MaxArtistAge bound an artist's age in whole years.
	MinArtistAge = 7
	MaxArtistAge = 99
)

// Validator checks DTOs against their struct tags.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator creates a validator. now defaults to time.Now when nil.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}

	v := &Validator{validate: validator.New(validator.WithRequiredStructEnabled()), now: now}

	// Report fields by their JSON name so clients can match them to their payload.
	v.validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.validate.RegisterValidation("artist_age", v.artistAge)

	return v
}

// Struct validates s and returns a *ValidationError listing every failed field.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return &ValidationError{Fields: fields}
}

func (v *Validator) artistAge(fl validator.FieldLevel) bool {
	birthday, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	age := AgeOn(birthday, v.now())
	return age >= MinArtistAge && age <= MaxArtistAge
}

// AgeOn returns the age in completed years of someone born on birthday, at day now.
func AgeOn(birthday, now time.Time) int {
	age := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() || (now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		age--
	}
	return age
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "artist_age":
		return fmt.Sprintf("age must be between %d and %d", MinArtistAge, MaxArtistAge)
	default:
		return "is invalid"
	}
}

// Package validate holds the field validation rules shared by every write path.
// Each rule is a named predicate so handlers and services agree on a single
// source of truth instead of scattering inline checks.
package validate

import (
	"errors"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+$`)

var (
	ErrNameLength     = errors.New("name must be between 2 and 100 characters")
	ErrEmailFormat    = errors.New("a valid email address is required")
	ErrPasswordLength = errors.New("password must be at least 6 characters")
	ErrPhoneFormat    = errors.New("a valid phone number is required")
	ErrAgeRange       = errors.New("age must be between 13 and 120")
	ErrBioLength      = errors.New("bio cannot exceed 500 characters")
)

// Name requires a trimmed length between 2 and 100 characters.
func Name(name string) error {
	n := len(strings.TrimSpace(name))
	if n < 2 || n > 100 {
		return ErrNameLength
	}
	return nil
}

// Email requires a standard address shape. Case is not significant.
func Email(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return ErrEmailFormat
	}
	return nil
}

// Password requires at least 6 characters.
func Password(password string) error {
	if len(password) < 6 {
		return ErrPasswordLength
	}
	return nil
}

// Phone requires at least 10 characters when a value is supplied.
func Phone(phone string) error {
	if phone == "" {
		return nil
	}
	if len(strings.TrimSpace(phone)) < 10 {
		return ErrPhoneFormat
	}
	return nil
}

// Age restricts self-registered accounts to ages 13 through 120.
func Age(age int) error {
	if age == 0 {
		return nil
	}
	if age < 13 || age > 120 {
		return ErrAgeRange
	}
	return nil
}

// Bio caps free-text bios at 500 characters.
func Bio(bio string) error {
	if len(bio) > 500 {
		return ErrBioLength
	}
	return nil
}

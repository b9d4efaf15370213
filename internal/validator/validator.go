package validator

import (
	"errors"
	"regexp"
)

var (
	ErrInvalidPhone = errors.New("invalid phone")
	ErrInvalidRole  = errors.New("invalid role")
	ErrInvalidOTP   = errors.New("invalid otp")
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	otpRegex   = regexp.MustCompile(`^[0-9]{6}$`)
)

var allowedRoles = map[string]bool{
	"player": true,
	"coach":  true,
	"owner":  true,
}

func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

func ValidateRole(role string) error {
	if !allowedRoles[role] {
		return ErrInvalidRole
	}
	return nil
}

func ValidateOTP(code string) error {
	if !otpRegex.MatchString(code) {
		return ErrInvalidOTP
	}
	return nil
}

package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Input lengths for the login flow
const (
	MobileLength = 10
	OTPLength    = 6
	PINLength    = 4
)

var (
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	otpPattern    = regexp.MustCompile(`^[0-9]{6}$`)
	pinPattern    = regexp.MustCompile(`^[0-9]{4}$`)
)

// DigitsOnly strips every non-numeral character and truncates to max
// characters. A max of zero or less keeps every digit.
func DigitsOnly(raw string, max int) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		if max > 0 && b.Len() >= max {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ValidateMobile validates a 10-digit mobile number
func ValidateMobile(mobile string) error {
	if !mobilePattern.MatchString(mobile) {
		return NewValidationError("mobile", "Please enter a valid 10-digit mobile number")
	}
	return nil
}

// ValidateOTP validates a 6-digit one-time password
func ValidateOTP(otp string) error {
	if !otpPattern.MatchString(otp) {
		return NewValidationError("otp", "Please enter a valid 6-digit OTP")
	}
	return nil
}

// ValidatePIN validates a 4-digit PIN
func ValidatePIN(pin string) error {
	if !pinPattern.MatchString(pin) {
		return NewValidationError("pin", "Please enter a valid 4-digit PIN")
	}
	return nil
}

// ValidateRequired validates that a string is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(fieldName, fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidateURL validates a server URL
func ValidateURL(raw string) error {
	if err := ValidateRequired(raw, "URL"); err != nil {
		return err
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return NewValidationError("URL", "invalid URL format")
	}

	return nil
}

// ValidateStatusFilter validates a case status filter value
func ValidateStatusFilter(status string) error {
	switch status {
	case "all", "active", "pending", "closed":
		return nil
	}
	return NewValidationError("status", fmt.Sprintf("unknown status %q (use all, active, pending, closed)", status))
}

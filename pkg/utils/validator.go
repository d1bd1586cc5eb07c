package utils

import (
	"fmt"
	"math"
	"regexp"
)

var controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)

// CoerceAmount coerces a claim amount to a non-negative decimal. Values that
// cannot be represented as a non-negative amount (negative, NaN, infinite)
// return 0 together with an error describing the rejection.
func CoerceAmount(amount float64) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("claim amount is not a finite number")
	}
	if amount < 0 {
		return 0, fmt.Errorf("claim amount cannot be negative: %.2f", amount)
	}
	return amount, nil
}

// ValidateDate checks that a date string uses the YYYY-MM-DD layout.
// Empty strings are allowed; date fields are optional on submission.
func ValidateDate(date string) error {
	if date == "" {
		return nil
	}
	matched, _ := regexp.MatchString(`^\d{4}-\d{2}-\d{2}$`, date)
	if !matched {
		return fmt.Errorf("date must use YYYY-MM-DD format: %s", date)
	}
	return nil
}

// SanitizeString removes control characters from free-text fields
func SanitizeString(s string) string {
	return controlChars.ReplaceAllString(s, "")
}

// Round2 rounds a monetary amount to 2 decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds a risk score or factor to 4 decimal places
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

package validation

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/agriprofit/agriprofit/pkg/models"
)

var (
	// ErrInvalidInput indicates the input failed validation
	ErrInvalidInput = errors.New("invalid input")

	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_ .\-]{3,50}$`)
)

// SanitizeString removes null bytes and control characters and trims
// whitespace.
func SanitizeString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.ReplaceAll(input, "\x00", "")

	var builder strings.Builder
	for _, r := range input {
		if !unicode.IsControl(r) || r == '\n' || r == '\t' {
			builder.WriteRune(r)
		}
	}

	return builder.String()
}

// ValidateUsername checks if a username is valid
func ValidateUsername(username string) error {
	username = SanitizeString(username)

	if username == "" {
		return errors.New("username cannot be empty")
	}
	if len(username) < 3 {
		return errors.New("username must be at least 3 characters")
	}
	if len(username) > 50 {
		return errors.New("username must not exceed 50 characters")
	}
	if !usernameRegex.MatchString(username) {
		return errors.New("username contains invalid characters")
	}

	return nil
}

// ValidateEmail checks if an email address is plausible
func ValidateEmail(email string) error {
	email = SanitizeString(email)

	if email == "" {
		return errors.New("email cannot be empty")
	}
	if len(email) > 100 {
		return errors.New("email must not exceed 100 characters")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("email address is not valid")
	}

	return nil
}

// ValidatePassword checks if a password meets security requirements
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if len(password) > 128 {
		return errors.New("password must not exceed 128 characters")
	}

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsDigit(char):
			hasNumber = true
		}
	}

	if !hasLetter {
		return errors.New("password must contain at least one letter")
	}
	if !hasNumber {
		return errors.New("password must contain at least one number")
	}

	return nil
}

// ValidatePredictionInput enforces physical ranges on the prediction
// request before it reaches the model.
func ValidatePredictionInput(req *models.PredictionRequest) error {
	if req.PH < 0 || req.PH > 14 {
		return errors.New("ph must be between 0 and 14")
	}
	if req.Humidity < 0 || req.Humidity > 100 {
		return errors.New("humidity must be between 0 and 100")
	}
	if req.Temperature < -50 || req.Temperature > 60 {
		return errors.New("temperature must be between -50 and 60")
	}
	if req.N < 0 || req.P < 0 || req.K < 0 {
		return errors.New("nutrient levels cannot be negative")
	}
	if req.Rainfall < 0 {
		return errors.New("rainfall cannot be negative")
	}
	if req.Fertilizer < 0 || req.Pesticide < 0 || req.Seed < 0 || req.Other < 0 {
		return errors.New("expenses cannot be negative")
	}
	if req.MarketPrice < 0 {
		return errors.New("market_price cannot be negative")
	}

	return nil
}

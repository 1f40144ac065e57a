package api

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	pairDomain "github.com/sandesh-malleboina/helper-analytics-for-traders/internal/domain/pair"
	"github.com/sandesh-malleboina/helper-analytics-for-traders/pkg/interval"
)

const maxRollingWindow = 1000

// Validator checks request parameters before they reach a usecase.
type Validator struct {
	symbolRegex *regexp.Regexp
}

// NewValidator creates a new request validator.
func NewValidator() *Validator {
	return &Validator{
		symbolRegex: regexp.MustCompile(`^[A-Z0-9]{2,20}$`),
	}
}

// ValidateSymbol normalizes and checks one symbol parameter.
func (v *Validator) ValidateSymbol(symbol string) (string, error) {
	clean := strings.ToUpper(strings.TrimSpace(symbol))
	if clean == "" {
		return "", errors.New("symbol parameter is required")
	}
	if !v.symbolRegex.MatchString(clean) {
		return "", fmt.Errorf("symbol %q must be 2-20 alphanumeric characters", symbol)
	}
	return clean, nil
}

// ValidatePairRequest checks all pair query parameters and assembles the
// request. Empty bucket width and window fall back to server defaults.
func (v *Validator) ValidatePairRequest(symbolA, symbolB, bucketWidth, windowStr string) (pairDomain.Request, error) {
	var req pairDomain.Request

	cleanA, err := v.ValidateSymbol(symbolA)
	if err != nil {
		return req, fmt.Errorf("symbol_a: %w", err)
	}
	cleanB, err := v.ValidateSymbol(symbolB)
	if err != nil {
		return req, fmt.Errorf("symbol_b: %w", err)
	}

	bucketWidth = strings.TrimSpace(bucketWidth)
	if bucketWidth != "" && !interval.IsValidInterval(bucketWidth) {
		return req, fmt.Errorf("bucket_width %q is not supported, valid values: %s",
			bucketWidth, strings.Join(interval.GetAllIntervalNames(), ", "))
	}

	window := 0
	if s := strings.TrimSpace(windowStr); s != "" {
		window, err = strconv.Atoi(s)
		if err != nil {
			return req, errors.New("rolling_window must be an integer")
		}
		if window < 2 || window > maxRollingWindow {
			return req, fmt.Errorf("rolling_window must be between 2 and %d", maxRollingWindow)
		}
	}

	req.SymbolA = cleanA
	req.SymbolB = cleanB
	req.BucketWidth = bucketWidth
	req.RollingWindow = window
	return req, nil
}

package model

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrClientNotFound is returned when no client profile exists for an id.
	ErrClientNotFound = errors.New("client not found")
	// ErrPortfolioNotFound is returned when a client has no portfolio on record.
	ErrPortfolioNotFound = errors.New("portfolio not found")
	// ErrInvalidEnumeration is returned when a value falls outside a closed set
	// such as risk tolerance, financial goal or asset class.
	ErrInvalidEnumeration = errors.New("invalid enumeration value")
)

// parseEnum converts s into one of the members of set.
func parseEnum[T ~string](kind, s string, set []T) (T, error) {
	v := T(s)
	if slices.Contains(set, v) {
		return v, nil
	}
	return "", invalidEnum(kind, s)
}

func invalidEnum(kind, s string) error {
	return fmt.Errorf("%w: %s %q", ErrInvalidEnumeration, kind, s)
}

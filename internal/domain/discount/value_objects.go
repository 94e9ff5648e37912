package discount

import (
	"errors"
	"strings"
)

var (
	ErrInvalidKind   = errors.New("invalid discount kind")
	ErrInvalidCode   = errors.New("discount code must not be empty")
	ErrInvalidAmount = errors.New("discount amount must be non-negative")
	ErrInvalidWindow = errors.New("discount validity window is inverted")
)

type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFixed      Kind = "fixed"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindPercentage, KindFixed:
		return true
	default:
		return false
	}
}

func NewKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.IsValid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// Code is matched case-sensitively after trimming, as agencies enter it.
type Code string

func NewCode(s string) (Code, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidCode
	}
	return Code(s), nil
}

func (c Code) String() string {
	return string(c)
}

// Rejection explains why a looked-up discount contributed nothing. Empty means it applied.
type Rejection string

const (
	RejectionNone         Rejection = ""
	RejectionInactive     Rejection = "inactive"
	RejectionNotYetValid  Rejection = "not_yet_valid"
	RejectionExpired      Rejection = "expired"
	RejectionBelowMinDays Rejection = "below_min_rental_days"
	RejectionAboveMaxDays Rejection = "above_max_rental_days"
	RejectionCodeNotFound Rejection = "code_not_found"
)

func (r Rejection) String() string {
	return string(r)
}

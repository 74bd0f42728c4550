package approval

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Structure of an issued number (12 chars):
//
//	PREFIX (5 chars) + YEAR WITHOUT CENTURY (2 chars) + SEQUENCE (5 digits)
const (
	DefaultIssuingPrefix = "99999"

	prefixLen   = 5
	sequenceLen = 5
	IssuedLen   = prefixLen + 2 + sequenceLen
	maxSequence = 99999
)

var (
	// issued (12), manual or copied from a legacy record (up to 15)
	reNumber = regexp.MustCompile(`^[A-Za-z0-9]{12,15}$`)
	rePrefix = regexp.MustCompile(`^[A-Za-z0-9]{5}$`)
)

// NextNumber returns the successor of last for the given prefix and year.
// An empty last starts the sequence at 00001.
func NextNumber(last, prefix string, year int) (string, error) {
	if !rePrefix.MatchString(prefix) {
		return "", fmt.Errorf("%w: prefix %q", ErrInvalidNumber, prefix)
	}
	head := NumberHead(prefix, year)
	if last == "" {
		return head + fmt.Sprintf("%0*d", sequenceLen, 1), nil
	}
	if len(last) != IssuedLen || !strings.HasPrefix(last, head) {
		return "", fmt.Errorf("%w: %q does not belong to %s", ErrInvalidNumber, last, head)
	}
	seq, err := strconv.Atoi(last[len(head):])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidNumber, last)
	}
	if seq >= maxSequence {
		return "", fmt.Errorf("%w: %s", ErrNumberSequenceExhausted, head)
	}
	return head + fmt.Sprintf("%0*d", sequenceLen, seq+1), nil
}

// NumberHead is the shared part of a year's numbers: prefix + two-digit year.
func NumberHead(prefix string, year int) string {
	return fmt.Sprintf("%s%02d", prefix, year%100)
}

// ValidateNumber accepts 12 to 15 alphanumeric characters. The HTTP
// "approvalnumber" rule delegates here.
func ValidateNumber(n string) error {
	if !reNumber.MatchString(n) {
		return fmt.Errorf("%w: %q", ErrInvalidNumber, n)
	}
	return nil
}

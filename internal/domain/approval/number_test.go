package approval

import (
	"errors"
	"testing"
)

func TestNextNumber(t *testing.T) {
	tests := []struct {
		name    string
		last    string
		prefix  string
		year    int
		want    string
		wantErr error
	}{
		{"first of year", "", "99999", 2024, "999992400001", nil},
		{"successor", "999992400001", "99999", 2024, "999992400002", nil},
		{"carry", "999992400999", "99999", 2024, "999992401000", nil},
		{"other authority", "", "12345", 2031, "123453100001", nil},
		{"exhausted", "999992499999", "99999", 2024, "", ErrNumberSequenceExhausted},
		{"foreign year", "999992300004", "99999", 2024, "", ErrInvalidNumber},
		{"bad prefix", "", "999", 2024, "", ErrInvalidNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextNumber(tt.last, tt.prefix, tt.year)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want err %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tt.want {
				t.Fatalf("NextNumber = %q, want %q", got, tt.want)
			}
			if len(got) != IssuedLen {
				t.Fatalf("length = %d, want %d", len(got), IssuedLen)
			}
		})
	}
}

func TestValidateNumber(t *testing.T) {
	for _, ok := range []string{"999992400001", "123451234512A01"} {
		if err := ValidateNumber(ok); err != nil {
			t.Errorf("ValidateNumber(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "12345", "9999924000-1", "1234512345123456"} {
		if err := ValidateNumber(bad); !errors.Is(err, ErrInvalidNumber) {
			t.Errorf("ValidateNumber(%q) = %v, want ErrInvalidNumber", bad, err)
		}
	}
}

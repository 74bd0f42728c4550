package legacy

import (
	"context"
	"time"
)

type Repository interface {
	// FindByIdentity matches normalized first and last names plus birthdate.
	FindByIdentity(ctx context.Context, firstName, lastName string, birthdate time.Time) ([]Approval, error)
	// FindByBirthName matches normalized first name and birth name plus birthdate.
	FindByBirthName(ctx context.Context, firstName, birthName string, birthdate time.Time) ([]Approval, error)
}

package domain

import "time"

type Organisation struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DefaultOrganisationName is the name given to the organisation created
// automatically at registration.
func DefaultOrganisationName(firstName string) string {
	return firstName + "'s Organisation"
}

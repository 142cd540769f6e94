package domain

import "time"

// User represents a registered reporter of bug sightings.
type User struct {
	ID             string
	Username       string
	Email          string
	HashedPassword string
	Roles          []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

package domain

import "time"

// Sighting records a geolocated observation of a bug by a user.
type Sighting struct {
	ID        string
	BugID     string
	UserID    string
	Latitude  float64
	Longitude float64
	SeenAt    time.Time
	Notes     string
	CreatedAt time.Time
}

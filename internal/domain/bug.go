package domain

// Bug represents an insect species that sightings can be reported against.
type Bug struct {
	ID          string
	Species     string
	DangerLevel int
	Description string
}

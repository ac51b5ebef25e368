package model

import "time"

// ShowStatus is the operator-controlled state of an agenda slot.  There is
// no automatic transition between states.
type ShowStatus string

const (
	ShowConfirmed ShowStatus = "confirmed" // booked, display only
	ShowAvailable ShowStatus = "available" // open for booking, exposes a contact action
	ShowPending   ShowStatus = "pending"   // under negotiation
)

// Valid reports whether s is one of the three known statuses.
func (s ShowStatus) Valid() bool {
	switch s {
	case ShowConfirmed, ShowAvailable, ShowPending:
		return true
	}
	return false
}

// DateLayout is the calendar date format used by shows and leads.
const DateLayout = "2006-01-02"

// Show represents a concrete agenda slot for an artist.
//
// Fields:
//  ID        – primary key identifier.
//  ArtistID  – owning artist.
//  Date      – calendar date (no time of day).
//  City      – city of the event.
//  Venue     – venue name.
//  Status    – confirmed | available | pending.
//  Notes     – optional free text.
type Show struct {
	ID        string     `json:"id"`        // shows.id
	ArtistID  string     `json:"artistId"`  // shows.artist_id
	Date      string     `json:"date"`      // shows.date, formatted with DateLayout
	City      string     `json:"city"`      // shows.city
	Venue     string     `json:"venue"`     // shows.venue
	Status    ShowStatus `json:"status"`    // shows.status
	Notes     *string    `json:"notes"`     // shows.notes (nullable)
	CreatedAt time.Time  `json:"createdAt"` // shows.created_at
	UpdatedAt time.Time  `json:"updatedAt"` // shows.updated_at
}

// Bookable reports whether the public agenda should offer a contact action.
func (s *Show) Bookable() bool { return s.Status == ShowAvailable }

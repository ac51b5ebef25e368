package model

import "time"

// Lead is a booking enquiry left by a contractor.
type Lead struct {
	ID        string    `json:"id"`        // leads.id
	ArtistID  *string   `json:"artistId"`  // leads.artist_id (nullable)
	Name      *string   `json:"name"`      // leads.name
	Email     *string   `json:"email"`     // leads.email
	Phone     *string   `json:"phone"`     // leads.phone
	EventDate *string   `json:"eventDate"` // leads.event_date (YYYY-MM-DD)
	EventCity *string   `json:"eventCity"` // leads.event_city
	Message   *string   `json:"message"`   // leads.message
	Status    string    `json:"status"`    // leads.status
	CreatedAt time.Time `json:"createdAt"` // leads.created_at
}

// LeadStatusNew is assigned to every freshly created lead.
const LeadStatusNew = "new"

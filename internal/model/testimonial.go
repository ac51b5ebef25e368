package model

import "time"

// Testimonial is a quote displayed on an artist page.
type Testimonial struct {
	ID        string    `json:"id"`        // testimonials.id
	ArtistID  string    `json:"artistId"`  // testimonials.artist_id
	Name      string    `json:"name"`      // testimonials.name
	Role      string    `json:"role"`      // testimonials.role
	Text      string    `json:"text"`      // testimonials.text
	PhotoURL  *string   `json:"photoUrl"`  // testimonials.photo_url (nullable)
	CreatedAt time.Time `json:"createdAt"` // testimonials.created_at
}

package model

import "time"

// Project is a packaged show format an artist offers to contractors.
// Repertoire and Photos are ordered; the order is chosen by the operator
// and preserved as-is.  SortOrder positions the project within the
// artist's own project list.
type Project struct {
	ID            string    `json:"id"`            // projects.id
	ArtistID      string    `json:"artistId"`      // projects.artist_id
	Name          string    `json:"name"`          // projects.name
	Description   string    `json:"description"`   // projects.description
	VideoURL      *string   `json:"videoUrl"`      // projects.video_url (nullable)
	Duration      *string   `json:"duration"`      // projects.duration, free text
	TechnicalInfo *string   `json:"technicalInfo"` // projects.technical_info, free text
	Repertoire    []string  `json:"repertoire"`    // projects.repertoire (JSON array)
	Photos        []string  `json:"photos"`        // projects.photos (JSON array)
	SortOrder     int       `json:"sortOrder"`     // projects.sort_order
	CreatedAt     time.Time `json:"createdAt"`     // projects.created_at
	UpdatedAt     time.Time `json:"updatedAt"`     // projects.updated_at
}

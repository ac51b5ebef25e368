package model

import "time"

// PageView is a write-once record of one public page render.
type PageView struct {
	ID        string    // page_views.id
	ArtistID  string    // page_views.artist_id
	Referrer  *string   // page_views.referrer (nullable)
	UserAgent *string   // page_views.user_agent (nullable)
	ViewedAt  time.Time // page_views.viewed_at
}

// ButtonClick is a write-once record of one tracked button press.
// ButtonType is a free-text tag such as "whatsapp_contractor".
type ButtonClick struct {
	ID         string    // button_clicks.id
	ArtistID   string    // button_clicks.artist_id
	ButtonType string    // button_clicks.button_type
	ClickedAt  time.Time // button_clicks.clicked_at
}

// DashboardStats aggregates the raw event and record counts shown on the
// operator dashboard.
type DashboardStats struct {
	PageViews    int64 `json:"pageViews"`
	ButtonClicks int64 `json:"buttonClicks"`
	Leads        int64 `json:"leads"`
	Shows        int64 `json:"shows"`
}

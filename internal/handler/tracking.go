package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// TrackingHandler accepts engagement beacons from public pages.  Both
// endpoints answer 202 no matter what happens to the write, so a broken
// store never shows up as an error on the page.
type TrackingHandler struct {
	Tracker EngagementRecorder
}

type pageViewRequest struct {
	ArtistID  string `json:"artistId"`
	Referrer  string `json:"referrer"`
	UserAgent string `json:"userAgent"`
}

type clickRequest struct {
	ArtistID   string `json:"artistId"`
	ButtonType string `json:"buttonType"`
}

// PageView handles POST /v1/track/page-view.  Referrer and user agent fall
// back to the request headers when the body leaves them out.
func (h *TrackingHandler) PageView(c echo.Context) error {
	var body pageViewRequest
	_ = c.Bind(&body) // a bad body is dropped by the tracker like any other invalid event
	req := c.Request()
	if body.Referrer == "" {
		body.Referrer = req.Referer()
	}
	if body.UserAgent == "" {
		body.UserAgent = req.UserAgent()
	}
	h.Tracker.RecordPageView(req.Context(), body.ArtistID, body.Referrer, body.UserAgent)
	return c.NoContent(http.StatusAccepted)
}

// Click handles POST /v1/track/click.
func (h *TrackingHandler) Click(c echo.Context) error {
	var body clickRequest
	_ = c.Bind(&body)
	h.Tracker.RecordButtonClick(c.Request().Context(), body.ArtistID, body.ButtonType)
	return c.NoContent(http.StatusAccepted)
}

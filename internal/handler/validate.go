package handler

import (
	"regexp"
	"strings"
	"time"

	"github.com/iliyamo/artistlink/internal/model"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// validation errors are reported to the operator as-is.
type validationError string

func (e validationError) Error() string { return string(e) }

func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return validationError(pairs[i] + " is required")
		}
	}
	return nil
}

func validateArtist(a *model.Artist) error {
	a.Slug = strings.TrimSpace(a.Slug)
	if err := required("slug", a.Slug, "name", a.Name, "genre", a.Genre, "bio", a.Bio,
		"whatsappNumber", a.WhatsAppNumber); err != nil {
		return err
	}
	if !slugPattern.MatchString(a.Slug) {
		return validationError("slug must be lowercase letters, digits and single hyphens")
	}
	return nil
}

func validateProject(p *model.Project) error {
	return required("name", p.Name, "description", p.Description)
}

func validateShow(s *model.Show) error {
	if err := required("date", s.Date, "city", s.City, "venue", s.Venue); err != nil {
		return err
	}
	if _, err := time.Parse(model.DateLayout, s.Date); err != nil {
		return validationError("date must be YYYY-MM-DD")
	}
	if s.Status == "" {
		s.Status = model.ShowAvailable
	}
	if !s.Status.Valid() {
		return validationError("status must be one of confirmed, available, pending")
	}
	return nil
}

func validateTestimonial(t *model.Testimonial) error {
	return required("name", t.Name, "role", t.Role, "text", t.Text)
}

func validatePhoto(p *model.Photo) error { return required("url", p.URL) }

func validateVideo(v *model.Video) error { return required("url", v.URL) }

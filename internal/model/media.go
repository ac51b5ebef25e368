package model

import (
	"fmt"
	"time"
)

// Photo is a gallery image.  SortOrder is managed by the reordering service.
type Photo struct {
	ID        string    `json:"id"`        // photos.id
	ArtistID  string    `json:"artistId"`  // photos.artist_id
	URL       string    `json:"url"`       // photos.url
	Caption   *string   `json:"caption"`   // photos.caption (nullable)
	SortOrder int       `json:"sortOrder"` // photos.sort_order
	CreatedAt time.Time `json:"createdAt"` // photos.created_at
}

// Video is a gallery video.  It shares the reordering contract with Photo.
type Video struct {
	ID        string    `json:"id"`        // videos.id
	ArtistID  string    `json:"artistId"`  // videos.artist_id
	URL       string    `json:"url"`       // videos.url
	Title     *string   `json:"title"`     // videos.title (nullable)
	SortOrder int       `json:"sortOrder"` // videos.sort_order
	CreatedAt time.Time `json:"createdAt"` // videos.created_at
}

// Collection names an operator-ordered list scoped to one artist.
type Collection string

const (
	CollectionProjects Collection = "projects"
	CollectionPhotos   Collection = "photos"
	CollectionVideos   Collection = "videos"
)

// ParseCollection validates a collection name taken from a request.
func ParseCollection(s string) (Collection, error) {
	switch c := Collection(s); c {
	case CollectionProjects, CollectionPhotos, CollectionVideos:
		return c, nil
	}
	return "", fmt.Errorf("unknown collection %q", s)
}

// Table returns the backing table name.  Only the three known collections
// map to a table, so the result is safe to splice into SQL.
func (c Collection) Table() string {
	switch c {
	case CollectionProjects:
		return "projects"
	case CollectionPhotos:
		return "photos"
	case CollectionVideos:
		return "videos"
	}
	return ""
}

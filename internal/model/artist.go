package model

import "time"

// Artist represents a performer as stored in the `artists` table.  Every
// other domain record (projects, shows, testimonials, media and engagement
// events) belongs to exactly one artist and is removed by the store when
// the artist is deleted.
//
// Fields:
//  ID             – primary key identifier (uuid).
//  Slug           – unique, URL-safe handle used in public links.  Changing
//                   it breaks links that were already shared.
//  Name           – display name.
//  Genre          – musical genre label.
//  Bio            – short biography.
//  FullBio        – optional long-form biography.
//  BannerURL      – optional hero banner image.
//  PhotoURL       – optional portrait image.
//  MainVideoURL   – optional featured video.
//  WhatsAppNumber – international number, digits only (e.g. 5511999999999).
//  PressKitURL    – optional press kit download.
//  SocialLinks    – platform name → URL (spotify, instagram, youtube, ...).
//  IsActive       – visibility gate for every public surface.
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type Artist struct {
	ID             string            `json:"id"`             // artists.id
	Slug           string            `json:"slug"`           // artists.slug
	Name           string            `json:"name"`           // artists.name
	Genre          string            `json:"genre"`          // artists.genre
	Bio            string            `json:"bio"`            // artists.bio
	FullBio        *string           `json:"fullBio"`        // artists.full_bio (nullable)
	BannerURL      *string           `json:"bannerUrl"`      // artists.banner_url (nullable)
	PhotoURL       *string           `json:"photoUrl"`       // artists.photo_url (nullable)
	MainVideoURL   *string           `json:"mainVideoUrl"`   // artists.main_video_url (nullable)
	WhatsAppNumber string            `json:"whatsappNumber"` // artists.whatsapp_number
	PressKitURL    *string           `json:"pressKitUrl"`    // artists.press_kit_url (nullable)
	SocialLinks    map[string]string `json:"socialLinks"`    // artists.social_links (JSON)
	IsActive       bool              `json:"isActive"`       // artists.is_active
	CreatedAt      time.Time         `json:"createdAt"`      // artists.created_at
	UpdatedAt      time.Time         `json:"updatedAt"`      // artists.updated_at
}

// PublicArtist is the public projection of an artist.  It deliberately has
// no WhatsApp number: public pages obtain contact links from the contact
// resolution endpoint instead.
type PublicArtist struct {
	ID           string            `json:"id"`
	Slug         string            `json:"slug"`
	Name         string            `json:"name"`
	Genre        string            `json:"genre"`
	Bio          string            `json:"bio"`
	FullBio      *string           `json:"fullBio"`
	BannerURL    *string           `json:"bannerUrl"`
	PhotoURL     *string           `json:"photoUrl"`
	MainVideoURL *string           `json:"mainVideoUrl"`
	PressKitURL  *string           `json:"pressKitUrl"`
	SocialLinks  map[string]string `json:"socialLinks"`
}

// Public strips the contact number and bookkeeping fields.
func (a *Artist) Public() PublicArtist {
	links := a.SocialLinks
	if links == nil {
		links = map[string]string{}
	}
	return PublicArtist{
		ID:           a.ID,
		Slug:         a.Slug,
		Name:         a.Name,
		Genre:        a.Genre,
		Bio:          a.Bio,
		FullBio:      a.FullBio,
		BannerURL:    a.BannerURL,
		PhotoURL:     a.PhotoURL,
		MainVideoURL: a.MainVideoURL,
		PressKitURL:  a.PressKitURL,
		SocialLinks:  links,
	}
}

// ArtistContact is the minimal read needed to build a contact link.
type ArtistContact struct {
	ID             string // artists.id
	Name           string // artists.name
	WhatsAppNumber string // artists.whatsapp_number
}

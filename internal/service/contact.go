package service

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/iliyamo/artistlink/internal/model"
	"github.com/iliyamo/artistlink/internal/repository"
)

// GreetingTemplate is the pre-filled message placed in every contact link.
// The wording is a business decision and must stay byte-identical.
const GreetingTemplate = "Olá! Gostaria de informações sobre contratação do show de {name}."

// WhatsAppBaseURL is the deep-link prefix; the stored number follows it.
const WhatsAppBaseURL = "https://wa.me/"

// ArtistLookup reads the contact fields of an active artist.  It returns
// repository.ErrArtistNotFound when the artist is missing or inactive.
type ArtistLookup interface {
	GetActiveContact(ctx context.Context, id string) (*model.ArtistContact, error)
}

// ContactLink is the result of a successful resolution.
type ContactLink struct {
	Link string `json:"link"`
}

// ContactService resolves an artist id into a WhatsApp deep link.  It is
// read-only and safe to retry.
type ContactService struct {
	artists ArtistLookup
}

func NewContactService(artists ArtistLookup) *ContactService {
	return &ContactService{artists: artists}
}

// ResolveContactLink builds the link for an active artist.  displayName,
// when non-empty, replaces the stored name in the greeting.  The stored
// number is used verbatim: it is validated when written, and a malformed
// number yields a link that simply does not open a chat.
func (s *ContactService) ResolveContactLink(ctx context.Context, artistID, displayName string) (ContactLink, error) {
	if strings.TrimSpace(artistID) == "" {
		return ContactLink{}, invalid("artistId is required")
	}

	artist, err := s.artists.GetActiveContact(ctx, artistID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ContactLink{}, ErrNotFound
		}
		return ContactLink{}, classifyStoreError(err)
	}

	name := displayName
	if name == "" {
		name = artist.Name
	}
	return ContactLink{Link: BuildWhatsAppLink(artist.WhatsAppNumber, Greeting(name))}, nil
}

// Greeting renders GreetingTemplate for name.
func Greeting(name string) string {
	return strings.Replace(GreetingTemplate, "{name}", name, 1)
}

// BuildWhatsAppLink returns https://wa.me/{number}?text={encoded message}.
func BuildWhatsAppLink(number, message string) string {
	return WhatsAppBaseURL + number + "?text=" + EncodeURIComponent(message)
}

// EncodeURIComponent percent-encodes s the way JavaScript's
// encodeURIComponent does: UTF-8 bytes outside A-Z a-z 0-9 - _ . ! ~ * ' ( )
// are escaped and a space becomes %20.  Links stay identical to those the
// public site produced before contact resolution moved server-side.
func EncodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	return uriComponentFixups.Replace(escaped)
}

// url.QueryEscape differs from encodeURIComponent only on these.
var uriComponentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

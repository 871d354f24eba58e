// internal/site/model.go
//
// Typed view over one row of the `sites` collection.
//
// Context
// -------
// The record store is loosely typed by design; this package gives the rest
// of the platform a stable struct for the one collection everything hangs
// off.  A site's operational state is a single `status` string — only
// "active" rows resolve; anything else is a soft-disabled storefront that
// keeps its data but serves nothing.
package site

import (
	"time"

	"github.com/yanizio/voyago/internal/store"
)

// StatusActive is the only status the resolver will serve.
const StatusActive = "active"

// Site is the typed tenant aggregate handed to request handlers.
type Site struct {
	ID             string `json:"id"`
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	OwnerEmail     string `json:"ownerEmail"`
	OwnerName      string `json:"ownerName,omitempty"`
	Description    string `json:"description,omitempty"`
	Logo           string `json:"logo,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	ContactEmail   string `json:"contactEmail,omitempty"`
	ContactPhone   string `json:"contactPhone,omitempty"`
	Theme          string `json:"theme"`
	Status         string `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromRecord builds the typed view.  Unknown or mistyped fields simply
// come back zero; the store's schema keeps honest writers aligned.
func FromRecord(rec store.Record) *Site {
	return &Site{
		ID:             rec.ID(),
		Slug:           rec.Str("slug"),
		Name:           rec.Str("name"),
		OwnerEmail:     rec.Str("ownerEmail"),
		OwnerName:      rec.Str("ownerName"),
		Description:    rec.Str("description"),
		Logo:           rec.Str("logo"),
		PrimaryColor:   rec.Str("primaryColor"),
		SecondaryColor: rec.Str("secondaryColor"),
		ContactEmail:   rec.Str("contactEmail"),
		ContactPhone:   rec.Str("contactPhone"),
		Theme:          rec.Str("theme"),
		Status:         rec.Str("status"),
		CreatedAt:      rec.Time("createdAt"),
		UpdatedAt:      rec.Time("updatedAt"),
	}
}

// Active reports whether the resolver may serve this site.
func (s *Site) Active() bool { return s.Status == StatusActive }

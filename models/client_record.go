package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultCTAText fills cta_text when a create request leaves it blank.
const DefaultCTAText = "Read full blog"

// ClientRecord represents one client's blog/profile entry on the marketing
// site: its logo, the blog post shown in the client popup, and the gallery
// images. Rows are written by the admin panel and read by the public site.
// The *URL fields reference blob-store assets; asset cleanup on delete is
// best-effort, so a URL may outlive its object.
type ClientRecord struct {
	ID               uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ClientName       string                      `json:"client_name" db:"client_name" gorm:"type:text;not null"`
	LogoURL          string                      `json:"logo_url" db:"logo_url" gorm:"type:text;not null"`
	BlogTitle        string                      `json:"blog_title" db:"blog_title" gorm:"type:text;not null"`
	BlogSlug         string                      `json:"blog_slug" db:"blog_slug" gorm:"type:text;not null;uniqueIndex:idx_clients_blog_slug"`
	BlogBodyHTML     string                      `json:"blog_body_html" db:"blog_body_html" gorm:"type:text"`
	BlogFeatureImage *string                     `json:"blog_feature_image,omitempty" db:"blog_feature_image" gorm:"type:text"`
	Images           datatypes.JSONSlice[string] `json:"images" db:"images"`
	CTAText          string                      `json:"cta_text" db:"cta_text" gorm:"type:text"`
	CreatedAt        time.Time                   `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// TableName keeps the table name aligned with the hosted schema.
func (ClientRecord) TableName() string {
	return "clients"
}

// AssetURLs returns every non-empty asset URL the record references, in a
// stable order, without duplicates. Delete flows feed these to the blob
// store's URL-to-path mapping.
func (c ClientRecord) AssetURLs() []string {
	seen := make(map[string]struct{})
	var urls []string

	add := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}

	add(c.LogoURL)
	if c.BlogFeatureImage != nil {
		add(*c.BlogFeatureImage)
	}
	for _, img := range c.Images {
		add(img)
	}
	return urls
}

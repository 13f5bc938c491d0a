package database

import (
	"gorm.io/datatypes"

	"github.com/medigital/site-backend/models"
)

// seedRecords is what an empty installation starts with, so the public site
// has something to render before the first real client is created.
var seedRecords = []models.ClientRecord{
	{
		ClientName:   "Sample Client",
		LogoURL:      "https://placehold.co/400x200?text=Sample+Client",
		BlogTitle:    "Lorem ipsum dolor",
		BlogSlug:     "lorem-ipsum-dolor",
		BlogBodyHTML: "<p>Sample content.</p>",
		Images:       datatypes.JSONSlice[string]{},
		CTAText:      models.DefaultCTAText,
	},
}

// EnsureSeeded inserts the seed records into an empty clients table. It runs
// once at startup; a table with any rows is left alone.
func (d Database) EnsureSeeded() error {
	var count int64
	if err := d.clientRepo.db.Model(&models.ClientRecord{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for i := range seedRecords {
		record := seedRecords[i]
		if err := d.clientRepo.Add(&record); err != nil {
			return err
		}
	}
	return nil
}

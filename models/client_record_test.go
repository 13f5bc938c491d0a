package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestAssetURLs(t *testing.T) {
	feature := "https://cdn/f.png"

	record := ClientRecord{
		LogoURL:          "https://cdn/logo.png",
		BlogFeatureImage: &feature,
		Images:           datatypes.JSONSlice[string]{"https://cdn/a.png", "https://cdn/logo.png", ""},
	}

	assert.Equal(t, []string{
		"https://cdn/logo.png",
		"https://cdn/f.png",
		"https://cdn/a.png",
	}, record.AssetURLs(), "duplicates and empties are dropped, order is stable")
}

func TestAssetURLsEmptyRecord(t *testing.T) {
	assert.Empty(t, ClientRecord{}.AssetURLs())
}

package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExternalMetadata_FullContent(t *testing.T) {
	content := "Title: Six months with the Seal Channel: EV Daily Views: 120345 Channel Subscribers: 89000 Description: long term review Transcript: so after six months..."

	meta := ParseExternalMetadata(content)

	assert.Equal(t, "Six months with the Seal", meta.Title)
	assert.Equal(t, "EV Daily", meta.Channel)
	assert.Equal(t, "120345", meta.Views)
	assert.Equal(t, "89000", meta.Subscribers)
}

func TestParseExternalMetadata_MissingFields(t *testing.T) {
	meta := ParseExternalMetadata("Title: Quick look Transcript: hello")

	assert.Equal(t, "Quick look", meta.Title)
	assert.Empty(t, meta.Channel)
	assert.Empty(t, meta.Views)
	assert.Empty(t, meta.Subscribers)
}

func TestParseExternalMetadata_FactsContent(t *testing.T) {
	meta := ParseExternalMetadata("## Battery\nThe pack capacity is 82.5 kWh.")

	assert.Equal(t, ExternalMetadata{}, meta)
}

func TestParseExternalMetadata_TruncatesLongTitle(t *testing.T) {
	content := "Title: " + strings.Repeat("word ", 60) + "Channel: EV Daily"

	meta := ParseExternalMetadata(content)

	assert.LessOrEqual(t, len(meta.Title), maxTitleLength+3)
	assert.True(t, strings.HasSuffix(meta.Title, "..."))
}

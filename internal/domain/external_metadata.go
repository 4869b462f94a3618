package domain

import "strings"

const maxTitleLength = 200

// ExternalMetadata is the review-source metadata embedded in an external
// chunk's content by the ingestion pipeline, in the form
// "Title: ... Channel: ... Views: ... Channel Subscribers: ...".
type ExternalMetadata struct {
	Title       string
	Channel     string
	Views       string
	Subscribers string
}

// ParseExternalMetadata extracts review metadata from an external chunk's
// content. Missing fields stay empty; facts chunks simply yield zero values.
func ParseExternalMetadata(content string) ExternalMetadata {
	meta := ExternalMetadata{
		Title:       scanField(content, "Title: ", " Description:", " Transcript:", "\n"),
		Channel:     scanField(content, "Channel: ", " Views:", "\n"),
		Views:       scanField(content, "Views: ", " ", "\n"),
		Subscribers: scanField(content, "Channel Subscribers: ", " ", "\n"),
	}

	// A title that runs past the cap has likely swallowed transcript text.
	if len(meta.Title) > maxTitleLength {
		if cut := strings.LastIndex(meta.Title[:maxTitleLength], " "); cut > 0 {
			meta.Title = meta.Title[:cut] + "..."
		} else {
			meta.Title = meta.Title[:maxTitleLength] + "..."
		}
	}

	return meta
}

// scanField returns the text between key and the earliest terminator that
// follows it, or the rest of the content when no terminator occurs.
func scanField(content, key string, terminators ...string) string {
	start := strings.Index(content, key)
	if start == -1 {
		return ""
	}
	start += len(key)

	end := len(content)
	for _, term := range terminators {
		if idx := strings.Index(content[start:], term); idx != -1 && start+idx < end {
			end = start + idx
		}
	}

	return strings.TrimSpace(content[start:end])
}

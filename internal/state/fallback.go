package state

import (
	"time"

	"github.com/resonate-app/resonate/internal/audiovault"
)

// Fixed fallback data substituted when a fetch fails. Keeping the UI
// populated through transient API outages is deliberate policy; the
// slice error tells the views the data may be synthetic.

func fallbackCategories() []audiovault.Category {
	return []audiovault.Category{
		{ID: 1, Title: "Music"},
		{ID: 2, Title: "Podcasts"},
		{ID: 3, Title: "Audiobooks"},
	}
}

func fallbackTags() []audiovault.Tag {
	return []audiovault.Tag{
		{ID: 1, Name: "Rock"},
		{ID: 2, Name: "Jazz"},
		{ID: 3, Name: "Educational"},
	}
}

func fallbackAudios() []audiovault.Audio {
	return []audiovault.Audio{
		audiovault.Audio{
			ID:            1,
			Title:         "Sample Audio 1",
			Description:   "This is a sample audio description",
			Transcription: "This is a sample transcription of the audio content.",
			URL:           "https://example.com/audio1.mp3",
			UploadedAt:    time.Now().UTC().Format(time.RFC3339),
			CategoryID:    1,
			CategoryTitle: "Music",
			Tags:          []audiovault.Tag{{ID: 1, Name: "Rock"}},
		}.Normalized(),
	}
}

package audiovault

import (
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Tag labels an audio record. Some API responses carry the label under
// "title" instead of "name"; decoding accepts either.
type Tag struct {
	ID   int
	Name string
}

// UnmarshalJSON reads both the current and the legacy wire shape.
func (t *Tag) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    int    `json:"id"`
		Name  string `json:"name"`
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.ID = raw.ID
	t.Name = raw.Name
	if t.Name == "" {
		t.Name = raw.Title
	}
	return nil
}

// MarshalJSON always writes the current shape.
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{t.ID, t.Name})
}

// Category groups audio records. Only ID and Title are guaranteed; the
// rest are optional display hints the API may or may not populate.
type Category struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
	Icon        string `json:"icon,omitempty"`
	CoverImage  string `json:"coverImage,omitempty"`
	Count       int    `json:"count,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Featured    bool   `json:"featured,omitempty"`
}

// Audio is a single audio record as served by the API. The fields below
// the canonical block are display aliases populated inconsistently
// depending on which endpoint produced the record; in particular neither
// URL nor AudioURL is guaranteed to be set, so consumers should go
// through Normalized.
type Audio struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Transcription string `json:"transcription,omitempty"`
	URL           string `json:"url"`
	UploadedAt    string `json:"uploaded_at"`
	CategoryID    int    `json:"category_id"`
	CategoryTitle string `json:"category_title"`
	Tags          []Tag  `json:"tags,omitempty"`
	UserID        string `json:"user_id,omitempty"`

	AudioURL   string     `json:"audioUrl,omitempty"`
	Author     string     `json:"author,omitempty"`
	Duration   string     `json:"duration,omitempty"`
	FileFormat string     `json:"fileFormat,omitempty"`
	FileSize   int64      `json:"fileSize,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	CreatedAt  FlexString `json:"createdAt,omitempty"`
}

// FlexString is a string field the API sometimes serves as a JSON number.
type FlexString string

// UnmarshalJSON accepts a string, a number, or null.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

const (
	defaultCategoryID = 1
	defaultDuration   = "0:00"
)

// Normalized returns a copy with display defaults applied: URL and
// AudioURL back-fill each other, a zero category maps to the default
// category, and an unknown duration renders as "0:00".
func (a Audio) Normalized() Audio {
	out := a
	if out.AudioURL == "" {
		out.AudioURL = out.URL
	}
	if out.URL == "" {
		out.URL = out.AudioURL
	}
	if out.CategoryID == 0 {
		out.CategoryID = defaultCategoryID
	}
	if out.Duration == "" {
		out.Duration = defaultDuration
	}
	return out
}

// ParsedUploadedAt returns the upload timestamp as time.Time when possible.
func (a Audio) ParsedUploadedAt() time.Time {
	if a.UploadedAt == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, a.UploadedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// TagNames returns the tag labels in record order.
func (a Audio) TagNames() []string {
	names := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		names = append(names, t.Name)
	}
	return names
}

// SearchParams describes a search intent: optional free-text title
// match, a category id, and OR-matched tag ids.
type SearchParams struct {
	Title      string `json:"title,omitempty"`
	CategoryID int    `json:"category_id,omitempty"`
	TagIDs     []int  `json:"tags_ids,omitempty"`
}

// IsZero reports whether no filter is set at all.
func (p SearchParams) IsZero() bool {
	return p.Title == "" && p.CategoryID == 0 && len(p.TagIDs) == 0
}

// UploadResult is the API's answer to a metadata upload. Older server
// builds report the new record id under "audioId".
type UploadResult struct {
	ID      int  `json:"id"`
	AudioID int  `json:"audioId"`
	Success bool `json:"success"`
}

// RecordID returns whichever id field the server populated.
func (r UploadResult) RecordID() int {
	if r.ID != 0 {
		return r.ID
	}
	return r.AudioID
}

// StoredFile describes a file accepted by the storage endpoint. Local is
// set when the upload failed and the reference only exists for this
// session.
type StoredFile struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Local    bool   `json:"-"`
}

// FormField is one multipart field of an upload request.
type FormField struct {
	Name  string
	Value string
}

// UploadPayload carries the multipart body of a metadata upload. File
// may be nil when the caller only submits metadata. FileField names the
// file part; it defaults to "file", the name the storage and
// transcription endpoints expect, while metadata uploads use "File".
type UploadPayload struct {
	Fields    []FormField
	FileField string
	FileName  string
	File      io.Reader
}

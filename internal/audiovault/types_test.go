package audiovault

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestTag_DecodesNameAndLegacyTitle(t *testing.T) {
	t.Parallel()

	var tag Tag
	if err := json.Unmarshal([]byte(`{"id":3,"name":"Rock"}`), &tag); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if tag.ID != 3 || tag.Name != "Rock" {
		t.Fatalf("tag = %#v", tag)
	}

	if err := json.Unmarshal([]byte(`{"id":4,"title":"Jazz"}`), &tag); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if tag.Name != "Jazz" {
		t.Fatalf("legacy title not picked up: %#v", tag)
	}

	// name wins when both are present
	if err := json.Unmarshal([]byte(`{"id":5,"name":"Blues","title":"Old"}`), &tag); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if tag.Name != "Blues" {
		t.Fatalf("tag name = %q, want Blues", tag.Name)
	}
}

func TestFlexString_AcceptsStringNumberNull(t *testing.T) {
	t.Parallel()

	var audio Audio
	cases := map[string]string{
		`{"createdAt":"2024-01-01"}`: "2024-01-01",
		`{"createdAt":1704067200}`:   "1704067200",
		`{"createdAt":null}`:         "",
	}
	for payload, want := range cases {
		if err := json.Unmarshal([]byte(payload), &audio); err != nil {
			t.Fatalf("unmarshal %s returned error: %v", payload, err)
		}
		if string(audio.CreatedAt) != want {
			t.Fatalf("createdAt from %s = %q, want %q", payload, audio.CreatedAt, want)
		}
	}
}

func TestAudio_NormalizedBackfills(t *testing.T) {
	t.Parallel()

	a := Audio{ID: 1, Title: "x", URL: "https://cdn/x.mp3"}.Normalized()
	if a.AudioURL != "https://cdn/x.mp3" {
		t.Fatalf("AudioURL not backfilled from URL: %q", a.AudioURL)
	}
	if a.CategoryID != 1 {
		t.Fatalf("zero category not defaulted: %d", a.CategoryID)
	}
	if a.Duration != "0:00" {
		t.Fatalf("empty duration not defaulted: %q", a.Duration)
	}

	b := Audio{ID: 2, AudioURL: "https://cdn/y.mp3", CategoryID: 3, Duration: "4:10"}.Normalized()
	if b.URL != "https://cdn/y.mp3" {
		t.Fatalf("URL not backfilled from AudioURL: %q", b.URL)
	}
	if b.CategoryID != 3 || b.Duration != "4:10" {
		t.Fatalf("set fields were overwritten: %#v", b)
	}
}

func TestAudio_ParsedUploadedAt(t *testing.T) {
	t.Parallel()

	a := Audio{UploadedAt: "2024-05-01T10:30:00Z"}
	got := a.ParsedUploadedAt()
	want := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("parsed = %v, want %v", got, want)
	}

	if !(Audio{UploadedAt: "yesterday"}).ParsedUploadedAt().IsZero() {
		t.Fatal("unparseable timestamp did not yield zero time")
	}
	if !(Audio{}).ParsedUploadedAt().IsZero() {
		t.Fatal("empty timestamp did not yield zero time")
	}
}

func TestUploadResult_RecordID(t *testing.T) {
	t.Parallel()

	if got := (UploadResult{ID: 9}).RecordID(); got != 9 {
		t.Fatalf("RecordID = %d, want 9", got)
	}
	if got := (UploadResult{AudioID: 12}).RecordID(); got != 12 {
		t.Fatalf("RecordID = %d, want legacy audioId 12", got)
	}
	if got := (UploadResult{ID: 9, AudioID: 12}).RecordID(); got != 9 {
		t.Fatalf("RecordID = %d, id should win", got)
	}
}

func TestSearchParams_IsZero(t *testing.T) {
	t.Parallel()

	if !(SearchParams{}).IsZero() {
		t.Fatal("empty params reported non-zero")
	}
	if (SearchParams{Title: "a"}).IsZero() || (SearchParams{CategoryID: 1}).IsZero() || (SearchParams{TagIDs: []int{1}}).IsZero() {
		t.Fatal("populated params reported zero")
	}
}

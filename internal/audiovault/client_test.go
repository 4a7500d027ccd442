package audiovault

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseBaseURL_Normalizes(t *testing.T) {
	u, err := parseBaseURL("example.com/api")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Path != "/api" {
		t.Fatalf("path = %q, want /api", u.Path)
	}

	u, err = parseBaseURL("http://example.com/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("   "); err == nil {
		t.Fatal("parseBaseURL accepted an empty url")
	}
}

func TestClient_FetchesEndpointsAndSendsHeaders(t *testing.T) {
	t.Parallel()

	var gotAuth, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/api/categories":
			_ = json.NewEncoder(w).Encode([]Category{{ID: 1, Title: "Music"}})
		case "/api/tags":
			_ = json.NewEncoder(w).Encode([]Tag{{ID: 2, Name: "Jazz"}})
		case "/api/audio":
			_ = json.NewEncoder(w).Encode([]Audio{{ID: 7, Title: "Blue"}})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", "secret", 2*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	categories, err := c.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if len(categories) != 1 || categories[0].Title != "Music" {
		t.Fatalf("ListCategories payload = %#v", categories)
	}

	tags, err := c.ListTags(ctx)
	if err != nil {
		t.Fatalf("ListTags returned error: %v", err)
	}
	if len(tags) != 1 || tags[0].Name != "Jazz" {
		t.Fatalf("ListTags payload = %#v", tags)
	}

	audios, err := c.ListAudio(ctx)
	if err != nil {
		t.Fatalf("ListAudio returned error: %v", err)
	}
	if len(audios) != 1 || audios[0].ID != 7 {
		t.Fatalf("ListAudio payload = %#v", audios)
	}

	if gotAuth != "Bearer secret" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if !strings.HasPrefix(gotUserAgent, "resonate/") {
		t.Fatalf("User-Agent = %q", gotUserAgent)
	}
}

func TestClient_SearchQueryEncoding(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/audio/search" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Audio{})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", "", 2*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx := context.Background()

	if _, err := c.SearchAudio(ctx, SearchQuery{Category: "Music", TagIDs: []int{2, 5}, MaxResults: 20}); err != nil {
		t.Fatalf("SearchAudio returned error: %v", err)
	}
	if _, present := gotQuery["QueryString"]; present {
		t.Fatalf("empty text produced QueryString=%q, want parameter omitted", gotQuery.Get("QueryString"))
	}
	if gotQuery.Get("Category") != "Music" {
		t.Fatalf("Category = %q, want Music", gotQuery.Get("Category"))
	}
	if got := gotQuery["TagsIds"]; len(got) != 2 || got[0] != "2" || got[1] != "5" {
		t.Fatalf("TagsIds = %v, want [2 5]", got)
	}
	if gotQuery.Get("maxResults") != "20" {
		t.Fatalf("maxResults = %q, want 20", gotQuery.Get("maxResults"))
	}

	if _, err := c.SearchAudio(ctx, SearchQuery{Text: " jazz "}); err != nil {
		t.Fatalf("SearchAudio returned error: %v", err)
	}
	if gotQuery.Get("QueryString") != "jazz" {
		t.Fatalf("QueryString = %q, want trimmed term", gotQuery.Get("QueryString"))
	}
}

func TestClient_GetAudioCachesAndMapsNotFound(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/audio/7":
			hits.Add(1)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(Audio{ID: 7, Title: "Blue"})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", "", 2*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	first, err := c.GetAudio(ctx, 7)
	if err != nil {
		t.Fatalf("GetAudio returned error: %v", err)
	}
	second, err := c.GetAudio(ctx, 7)
	if err != nil {
		t.Fatalf("GetAudio (cached) returned error: %v", err)
	}
	if first.Title != second.Title || hits.Load() != 1 {
		t.Fatalf("repeated GetAudio hit the server %d times, want 1", hits.Load())
	}

	_, err = c.GetAudio(ctx, 999)
	if err == nil {
		t.Fatal("GetAudio for missing id returned nil error")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetAudio error = %v, want ErrNotFound", err)
	}
}

func TestClient_UploadFileFallsBackToLocalReference(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage offline", http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", "", 2*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	stored, err := c.UploadFile(context.Background(), "song.mp3", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("UploadFile returned error: %v", err)
	}
	if !stored.Local {
		t.Fatal("fallback reference not marked Local")
	}
	if !strings.HasPrefix(stored.URL, "local://") || !strings.HasSuffix(stored.URL, "/song.mp3") {
		t.Fatalf("fallback URL = %q", stored.URL)
	}
	if !strings.HasPrefix(stored.PublicID, "local_") {
		t.Fatalf("fallback PublicID = %q", stored.PublicID)
	}
}

func TestClient_TranscribeFallsBackToPlaceholder(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no transcriber", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", "", 2*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	text, err := c.Transcribe(context.Background(), "lecture.mp3", strings.NewReader("data"))
	if err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if !strings.Contains(text, `"lecture"`) {
		t.Fatalf("placeholder does not carry the file stem: %q", text)
	}
	if !strings.Contains(text, "unavailable") {
		t.Fatalf("placeholder text = %q", text)
	}
}

func TestClient_UploadAudioSendsMultipart(t *testing.T) {
	t.Parallel()

	var gotFields map[string]string
	var gotFileName string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/audio" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotFields = map[string]string{}
		for name, vals := range r.MultipartForm.Value {
			gotFields[name] = vals[0]
		}
		if files := r.MultipartForm.File["File"]; len(files) > 0 {
			gotFileName = files[0].Filename
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(UploadResult{AudioID: 31, Success: true})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", "", 2*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	result, err := c.UploadAudio(context.Background(), UploadPayload{
		Fields: []FormField{
			{Name: "Title", Value: "Blue"},
			{Name: "CategoryId", Value: "1"},
		},
		FileField: "File",
		FileName:  "blue.mp3",
		File:      strings.NewReader("data"),
	})
	if err != nil {
		t.Fatalf("UploadAudio returned error: %v", err)
	}
	if result.RecordID() != 31 {
		t.Fatalf("RecordID = %d, want 31", result.RecordID())
	}
	if gotFields["Title"] != "Blue" || gotFields["CategoryId"] != "1" {
		t.Fatalf("multipart fields = %#v", gotFields)
	}
	if gotFileName != "blue.mp3" {
		t.Fatalf("file part name = %q, want blue.mp3", gotFileName)
	}
}

func TestClient_ErrorCarriesStatusAndBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "category is required", http.StatusBadRequest)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", "", 2*time.Second)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.ListCategories(context.Background())
	if err == nil {
		t.Fatal("ListCategories returned nil error for a 400")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest || !strings.Contains(apiErr.Body, "category is required") {
		t.Fatalf("APIError = %#v", apiErr)
	}
}

func TestClient_NilReceiverGuards(t *testing.T) {
	t.Parallel()

	var c *Client
	if _, err := c.ListCategories(context.Background()); err == nil {
		t.Fatal("nil client ListCategories returned nil error")
	}
	if _, err := c.GetAudio(context.Background(), 1); err == nil {
		t.Fatal("nil client GetAudio returned nil error")
	}
}

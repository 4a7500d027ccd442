package audiovault

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/karlseguin/ccache/v3"
)

// Fetcher defines the read surface of the AudioVault API. It is
// implemented by *Client and can be substituted for testing.
type Fetcher interface {
	ListCategories(ctx context.Context) ([]Category, error)
	ListTags(ctx context.Context) ([]Tag, error)
	ListAudio(ctx context.Context) ([]Audio, error)
	GetAudio(ctx context.Context, id int) (Audio, error)
	SearchAudio(ctx context.Context, query SearchQuery) ([]Audio, error)
	UploadAudio(ctx context.Context, payload UploadPayload) (UploadResult, error)
}

var _ Fetcher = (*Client)(nil)

// ErrNotFound marks a lookup for a record the API does not have.
var ErrNotFound = errors.New("not found")

// APIError carries the HTTP status and response body of a failed call.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Body)
}

// Client talks to the AudioVault HTTP API.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	token      string
	userAgent  string
	audioCache *ccache.Cache[Audio]
}

const (
	defaultUserAgent = "resonate/0.1"
	requestTimeout   = 10 * time.Second
	audioCacheTTL    = 30 * time.Second
	audioCacheSize   = 200
)

// NewClient builds a Client for the given base URL. The token, when not
// empty, is sent as a bearer credential on every request.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		token:     token,
		userAgent: defaultUserAgent,
		audioCache: ccache.New(
			ccache.Configure[Audio]().MaxSize(audioCacheSize),
		),
	}, nil
}

// ListCategories retrieves every category.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ListTags retrieves every tag.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Tag
	if err := c.do(ctx, http.MethodGet, "/tags", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ListAudio retrieves the unfiltered audio list.
func (c *Client) ListAudio(ctx context.Context) ([]Audio, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Audio
	if err := c.do(ctx, http.MethodGet, "/audio", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetAudio retrieves a single record by id. Results are memoized for a
// short interval; a repeated GET without intervening mutation yields the
// same record. A 404 unwraps to ErrNotFound.
func (c *Client) GetAudio(ctx context.Context, id int) (Audio, error) {
	if c == nil {
		return Audio{}, fmt.Errorf("client is nil")
	}
	key := strconv.Itoa(id)
	if item := c.audioCache.Get(key); item != nil && !item.Expired() {
		return item.Value(), nil
	}
	var payload Audio
	err := c.do(ctx, http.MethodGet, "/audio/"+key, nil, &payload)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return Audio{}, fmt.Errorf("audio %d: %w", id, ErrNotFound)
		}
		return Audio{}, err
	}
	c.audioCache.Set(key, payload, audioCacheTTL)
	return payload, nil
}

// SearchQuery configures /audio/search requests. Category carries a
// category name, not an id: the server filters by name, and callers are
// expected to resolve ids against the category list they already fetched.
type SearchQuery struct {
	Text       string
	Category   string
	TagIDs     []int
	MaxResults int
}

func (q SearchQuery) values() url.Values {
	values := url.Values{}
	// An empty text filter is omitted entirely; the server treats a
	// literal "null" as a search term.
	if text := strings.TrimSpace(q.Text); text != "" {
		values.Set("QueryString", text)
	}
	if category := strings.TrimSpace(q.Category); category != "" {
		values.Set("Category", category)
	}
	for _, id := range q.TagIDs {
		values.Add("TagsIds", strconv.Itoa(id))
	}
	if q.MaxResults > 0 {
		values.Set("maxResults", strconv.Itoa(q.MaxResults))
	}
	return values
}

// SearchAudio retrieves the records matching the query. Filtering is the
// server's responsibility; the result is returned as-is.
func (c *Client) SearchAudio(ctx context.Context, query SearchQuery) ([]Audio, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	rel := &url.URL{Path: "/audio/search", RawQuery: query.values().Encode()}
	var payload []Audio
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// UploadAudio submits a new record as a multipart form. Field names are
// taken verbatim from the payload; the server performs all validation.
func (c *Client) UploadAudio(ctx context.Context, payload UploadPayload) (UploadResult, error) {
	if c == nil {
		return UploadResult{}, fmt.Errorf("client is nil")
	}
	body, contentType, err := encodeMultipart(payload)
	if err != nil {
		return UploadResult{}, err
	}
	var result UploadResult
	if err := c.post(ctx, "/audio", body, contentType, &result); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

// UploadFile sends a raw file to the storage endpoint. When the endpoint
// is unreachable the file is represented by a session-local reference so
// the rest of the workflow can continue; callers can tell the two apart
// via StoredFile.Local.
func (c *Client) UploadFile(ctx context.Context, name string, file io.Reader) (StoredFile, error) {
	if c == nil {
		return StoredFile{}, fmt.Errorf("client is nil")
	}
	payload := UploadPayload{FileName: name, File: file}
	body, contentType, err := encodeMultipart(payload)
	if err != nil {
		return StoredFile{}, err
	}
	var stored StoredFile
	if err := c.post(ctx, "/upload", body, contentType, &stored); err != nil {
		return localStoredFile(name), nil
	}
	if stored.PublicID == "" {
		stored.PublicID = "file_" + uuid.NewString()
	}
	return stored, nil
}

func localStoredFile(name string) StoredFile {
	ref := uuid.NewString()
	return StoredFile{
		URL:      "local://" + ref + "/" + name,
		PublicID: "local_" + ref,
		Local:    true,
	}
}

// Transcribe asks the transcription endpoint for a transcript of the
// file. When the service is unavailable a templated placeholder carrying
// the file name is returned instead of an error; transcripts are
// editable downstream, so degrading beats failing.
func (c *Client) Transcribe(ctx context.Context, name string, file io.Reader) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	payload := UploadPayload{FileName: name, File: file}
	body, contentType, err := encodeMultipart(payload)
	if err != nil {
		return "", err
	}
	var result struct {
		Transcription string `json:"transcription"`
	}
	if err := c.post(ctx, "/transcription", body, contentType, &result); err != nil {
		return PlaceholderTranscription(name), nil
	}
	return result.Transcription, nil
}

// PlaceholderTranscription is the fallback transcript used when the
// transcription service cannot be reached.
func PlaceholderTranscription(fileName string) string {
	stem := strings.TrimSuffix(fileName, extension(fileName))
	return fmt.Sprintf(
		"This is an automatically generated placeholder transcription for %q. "+
			"The transcription service is currently unavailable. "+
			"Please try again later or enter the transcription manually.",
		stem,
	)
}

func extension(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[idx:]
	}
	return ""
}

func encodeMultipart(payload UploadPayload) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for _, field := range payload.Fields {
		if err := writer.WriteField(field.Name, field.Value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", field.Name, err)
		}
	}
	if payload.File != nil {
		name := payload.FileName
		if name == "" {
			name = "file"
		}
		fieldName := payload.FileField
		if fieldName == "" {
			fieldName = "file"
		}
		part, err := writer.CreateFormFile(fieldName, name)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, payload.File); err != nil {
			return nil, "", fmt.Errorf("copy file: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf, writer.FormDataContentType(), nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) post(ctx context.Context, path string, body io.Reader, contentType string, dest any) error {
	rel := &url.URL{Path: path}
	return c.request(ctx, http.MethodPost, rel, body, contentType, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body io.Reader, dest any) error {
	return c.request(ctx, method, rel, body, "", dest)
}

func (c *Client) request(ctx context.Context, method string, rel *url.URL, body io.Reader, contentType string, dest any) error {
	// Plain concatenation keeps a base path prefix such as "/api" intact,
	// which ResolveReference would drop for absolute request paths.
	reqURL := *c.baseURL
	reqURL.Path += rel.Path
	reqURL.RawQuery = rel.RawQuery
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("api url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u, nil
}

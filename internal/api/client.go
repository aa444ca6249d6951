package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"

	nonghttp "github.com/ytget/nong-manager/internal/http"
	"github.com/ytget/nong-manager/internal/model"
)

// DefaultEndpoint is the Song File Hub NoNG listing
const DefaultEndpoint = "https://songfilehub.com/api/v1/nongs"

// Query parameter and response field names
const (
	QueryParam = "id"

	FieldSongs       = "songs"
	FieldSongName    = "songName"
	FieldState       = "state"
	FieldLevelName   = "name"
	FieldDownloadURL = "downloadUrl"
	FieldSongID      = "songID"
)

// maxResponseSize bounds the search response body
const maxResponseSize = 16 << 20

// ErrDecode is wrapped by every response shape error
var ErrDecode = errors.New("api: malformed search response")

// Getter is the subset of the HTTP client used by Client
type Getter interface {
	Get(ctx context.Context, url string) (*nonghttp.Response, error)
}

// Searcher finds NoNG records for a song ID
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.Record, error)
}

// Client queries the NoNG search endpoint
type Client struct {
	http     Getter
	endpoint string
}

// NewClient creates a search client. An empty endpoint selects DefaultEndpoint.
func NewClient(getter Getter, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{http: getter, endpoint: endpoint}
}

// Endpoint returns the URL searches are sent to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// SearchURL builds the request URL for a query
func (c *Client) SearchURL(query string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set(QueryParam, query)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Search returns every record matching query, in response order
func (c *Client) Search(ctx context.Context, query string) ([]model.Record, error) {
	searchURL, err := c.SearchURL(query)
	if err != nil {
		return nil, err
	}

	log.Printf("Searching NoNGs: %s", searchURL)

	resp, err := c.http.Get(ctx, searchURL)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	records, err := DecodeRecords(body)
	if err != nil {
		return nil, err
	}

	log.Printf("Search for %q returned %d record(s)", query, len(records))
	return records, nil
}

// DecodeRecords parses a search response body. Any shape mismatch returns
// ErrDecode and no records.
func DecodeRecords(body []byte) ([]model.Record, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	raw, ok := envelope[FieldSongs]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q array", ErrDecode, FieldSongs)
	}

	var elements []json.RawMessage
	if !isKind(raw, '[') {
		return nil, fmt.Errorf("%w: %q is not an array", ErrDecode, FieldSongs)
	}
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	records := make([]model.Record, 0, len(elements))
	for i, element := range elements {
		record, err := decodeRecord(element)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %v", ErrDecode, FieldSongs, i, err)
		}
		records = append(records, record)
	}

	return records, nil
}

func decodeRecord(raw json.RawMessage) (model.Record, error) {
	var record model.Record

	if !isKind(raw, '{') {
		return record, errors.New("element is not an object")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return record, err
	}

	targets := []struct {
		name string
		dst  *string
	}{
		{FieldSongName, &record.SongName},
		{FieldState, &record.State},
		{FieldLevelName, &record.LevelName},
		{FieldDownloadURL, &record.DownloadURL},
		{FieldSongID, &record.SongID},
	}

	for _, target := range targets {
		value, ok := fields[target.name]
		if !ok {
			return record, fmt.Errorf("missing field %q", target.name)
		}
		// json.Unmarshal accepts null for strings; only real strings count
		if !isKind(value, '"') {
			return record, fmt.Errorf("field %q is not a string", target.name)
		}
		if err := json.Unmarshal(value, target.dst); err != nil {
			return record, fmt.Errorf("field %q: %w", target.name, err)
		}
	}

	return record, nil
}

// isKind reports whether a raw JSON value starts with the given delimiter
func isKind(raw json.RawMessage, delim byte) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == delim
}

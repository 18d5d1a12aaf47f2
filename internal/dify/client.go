// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dify is a thin gateway over the Dify knowledge-base REST API:
// dataset resolution, document upload, and document listing. The wire
// protocol is the service's; this package only shapes requests, checks
// status codes, and walks pages.
package dify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pdiddy/knowledge-tools/internal/httputil"
	"github.com/pdiddy/knowledge-tools/pkg/types"
)

// DefaultBaseURL points at the RAG playground's nginx front end.
const DefaultBaseURL = "http://rag-playground-nginx-1/v1"

const defaultPageSize = 100

// ErrDatasetNotFound is returned by FindDatasetID when no dataset carries the
// requested name.
var ErrDatasetNotFound = errors.New("dataset not found")

// StatusError reports a non-success HTTP status from the knowledge-base API.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Op, e.Code)
}

// Dataset is a named document collection on the remote service. Names are
// user-supplied and not guaranteed unique; the ID is opaque.
type Dataset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Document is one document inside a dataset.
type Document struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Client calls the knowledge-base API. All requests carry bearer
// authentication and retry on HTTP 429.
type Client struct {
	apiKey     string
	baseURL    string
	pageSize   int
	userAgent  string
	httpClient *http.Client
}

// NewClient builds a Client from an API key and gateway settings. Zero-value
// config fields fall back to defaults (DefaultBaseURL, page size 100).
func NewClient(apiKey string, cfg types.GatewayConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		pageSize:   pageSize,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// do sends req with auth headers and returns the response, retrying on 429.
func (c *Client) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return httputil.DoWithRetry(ctx, c.httpClient, req, 0)
}

// datasetPage is the JSON body of a dataset listing.
type datasetPage struct {
	Data    []Dataset `json:"data"`
	HasMore bool      `json:"has_more"`
}

// documentPage is the JSON body of a document listing.
type documentPage struct {
	Data    []Document `json:"data"`
	HasMore bool       `json:"has_more"`
}

// ListDatasets fetches one page (1-indexed) of the dataset listing. It
// returns the page's datasets and whether the service reports further pages.
func (c *Client) ListDatasets(ctx context.Context, page, pageSize int) ([]Dataset, bool, error) {
	params := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(pageSize)},
	}
	reqURL := c.baseURL + "/datasets?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, false, fmt.Errorf("dataset listing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, &StatusError{Op: "listing datasets", Code: resp.StatusCode}
	}

	var dp datasetPage
	if err := json.NewDecoder(resp.Body).Decode(&dp); err != nil {
		return nil, false, fmt.Errorf("parsing dataset listing: %w", err)
	}
	return dp.Data, dp.HasMore, nil
}

// FindDatasetID resolves name to a dataset ID by a linear paginated scan.
// The first exact name match wins and later pages are abandoned. The scan
// stops once a page comes back short or the service reports no further
// pages; an exhausted scan returns ErrDatasetNotFound. A non-success status
// aborts the scan since the next page cannot be requested meaningfully.
func (c *Client) FindDatasetID(ctx context.Context, name string) (string, error) {
	for page := 1; ; page++ {
		datasets, hasMore, err := c.ListDatasets(ctx, page, c.pageSize)
		if err != nil {
			return "", err
		}
		for _, d := range datasets {
			if d.Name == name {
				return d.ID, nil
			}
		}
		if len(datasets) < c.pageSize || !hasMore {
			return "", fmt.Errorf("%q: %w", name, ErrDatasetNotFound)
		}
	}
}

// documentCreateRule is the processing rule sent alongside each uploaded
// file. The service handles chunking and indexing.
const documentCreateRule = `{"indexing_technique":"high_quality","process_rule":{"mode":"automatic"}}`

// CreateDocumentByFile uploads the file at filePath into dataset datasetID as
// a new document. Only HTTP 200 is success; any other status is a
// StatusError.
func (c *Client) CreateDocumentByFile(ctx context.Context, datasetID, filePath string) error {
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", filePath, err)
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("data", documentCreateRule); err != nil {
		return fmt.Errorf("encoding upload rule: %w", err)
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return fmt.Errorf("encoding upload: %w", err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return fmt.Errorf("reading %s: %w", filePath, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("encoding upload: %w", err)
	}

	reqURL := c.baseURL + "/datasets/" + datasetID + "/document/create-by-file"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.do(ctx, req)
	if err != nil {
		return fmt.Errorf("document upload request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: "creating document", Code: resp.StatusCode}
	}
	return nil
}

// ListDocuments fetches one page (1-indexed) of a dataset's documents,
// optionally filtered by keyword.
func (c *Client) ListDocuments(ctx context.Context, datasetID string, page, pageSize int, keyword string) ([]Document, bool, error) {
	params := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(pageSize)},
	}
	if keyword != "" {
		params.Set("keyword", keyword)
	}
	reqURL := c.baseURL + "/datasets/" + datasetID + "/documents?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, false, fmt.Errorf("document listing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, &StatusError{Op: "listing documents", Code: resp.StatusCode}
	}

	var dp documentPage
	if err := json.NewDecoder(resp.Body).Decode(&dp); err != nil {
		return nil, false, fmt.Errorf("parsing document listing: %w", err)
	}
	return dp.Data, dp.HasMore, nil
}

// EachDocument walks every page of a dataset's documents matching keyword and
// calls fn per document. A non-success status aborts the walk; an error from
// fn stops it and is returned.
func (c *Client) EachDocument(ctx context.Context, datasetID, keyword string, fn func(Document) error) error {
	for page := 1; ; page++ {
		docs, hasMore, err := c.ListDocuments(ctx, datasetID, page, c.pageSize, keyword)
		if err != nil {
			return err
		}
		for _, d := range docs {
			if err := fn(d); err != nil {
				return err
			}
		}
		if len(docs) < c.pageSize || !hasMore {
			return nil
		}
	}
}

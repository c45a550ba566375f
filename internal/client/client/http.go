package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/warrantyguard/internal/netx"
	"github.com/dmitrijs2005/warrantyguard/internal/warranty"
)

// DefaultTimeout bounds a single backup or restore request.
const DefaultTimeout = 10 * time.Second

type backupRequest struct {
	UserID   string             `json:"userId"`
	Products []warranty.Product `json:"products"`
	Date     string             `json:"date"`
}

type restoreResponse struct {
	LastUpdated string              `json:"lastUpdated"`
	Products    *[]warranty.Product `json:"products"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPClient implements BackupClient against the JSON HTTP API. Every call
// is a single attempt; failures are never retried.
type HTTPClient struct {
	http *http.Client
	now  func() time.Time
}

func NewHTTPClient(timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPClient{
		http: &http.Client{Timeout: timeout},
		now:  time.Now,
	}
}

func (c *HTTPClient) Backup(ctx context.Context, serverURL, userID string, products []warranty.Product) error {
	const op = "backup"

	endpoint, err := joinURL(serverURL, "api", "backup")
	if err != nil {
		return &SyncError{Op: op, Reason: ReasonConnectionFailed, Err: err}
	}

	if products == nil {
		products = []warranty.Product{}
	}
	body := backupRequest{
		UserID:   userID,
		Products: products,
		Date:     c.now().UTC().Format(time.RFC3339),
	}

	resp, err := netx.DoJSON(ctx, c.http, http.MethodPost, endpoint, body, nil)
	if err != nil {
		return &SyncError{Op: op, Reason: ReasonConnectionFailed, Err: err}
	}
	if !resp.OK() {
		return rejected(op, resp)
	}
	return nil
}

func (c *HTTPClient) Restore(ctx context.Context, serverURL, userID string) ([]warranty.Product, error) {
	const op = "restore"

	endpoint, err := joinURL(serverURL, "api", "restore", userID)
	if err != nil {
		return nil, &SyncError{Op: op, Reason: ReasonConnectionFailed, Err: err}
	}

	resp, err := netx.DoJSON(ctx, c.http, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, &SyncError{Op: op, Reason: ReasonConnectionFailed, Err: err}
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("restore %q: %w", userID, ErrBackupNotFound)
	}
	if !resp.OK() {
		return nil, rejected(op, resp)
	}

	var out restoreResponse
	if err := resp.Decode(&out); err != nil {
		return nil, &SyncError{Op: op, Reason: ReasonInvalidResponse, StatusCode: resp.StatusCode, Err: err}
	}
	if out.Products == nil {
		return nil, &SyncError{Op: op, Reason: ReasonInvalidResponse, StatusCode: resp.StatusCode,
			Err: errors.New("response has no products")}
	}
	return *out.Products, nil
}

func rejected(op string, resp *netx.Response) *SyncError {
	e := &SyncError{Op: op, Reason: ReasonServerRejected, StatusCode: resp.StatusCode}
	var body errorResponse
	if resp.Decode(&body) == nil {
		e.Message = body.Error
	}
	return e
}

// joinURL appends escaped path segments to base, which must be an absolute
// http or https URL.
func joinURL(base string, segments ...string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("invalid server url %q: %w", base, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid server url %q: want http(s)://host[:port]", base)
	}
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return u.JoinPath(escaped...).String(), nil
}

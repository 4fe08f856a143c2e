// Package api is the HTTP client for the wishlist REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Makepad-fr/wishlist/internal/model"
)

const DefaultTimeout = 30 * time.Second

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Code)
}

// CheckResult is the body of a check-price response. The server answers
// unsuccessful extractions with HTTP 400 and Success=false.
type CheckResult struct {
	Success     bool             `json:"success"`
	Price       *decimal.Decimal `json:"price"`
	LastChecked *model.Timestamp `json:"last_checked"`
	Error       string           `json:"error"`
	StatusCode  int              `json:"-"`
}

// OK reports a 2xx response that also claims success.
func (r CheckResult) OK() bool {
	return r.Success && r.StatusCode >= 200 && r.StatusCode < 300
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Token      string
}

func NewClient(baseURL string, timeout time.Duration, token string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Token:      token,
	}
}

func (c *Client) ListItems(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := c.getJSON(ctx, "/api/items", &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (c *Client) PriceHistory(ctx context.Context, id int) ([]model.PriceHistoryEntry, error) {
	var h []model.PriceHistoryEntry
	if err := c.getJSON(ctx, fmt.Sprintf("/api/items/%d/price-history", id), &h); err != nil {
		return nil, err
	}
	return h, nil
}

// CreateItem posts the multipart creation form.
func (c *Client) CreateItem(ctx context.Context, in model.NewItem) (*model.Item, error) {
	body, contentType, err := encodeNewItem(in)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/items", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkStatus(req, resp); err != nil {
		return nil, err
	}
	var created model.Item
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode created item: %w", err)
	}
	return &created, nil
}

func encodeNewItem(in model.NewItem) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fields := [][2]string{
		{"item_type", in.Type},
		{"item_name", in.Name},
		{"url", in.URL},
		{"current_price", in.Price},
		{"currency", in.Currency},
		{"auto_fetch_image", strconv.FormatBool(in.AutoFetchImage)},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}
	if in.ImageFile != "" {
		f, err := os.Open(in.ImageFile)
		if err != nil {
			return nil, "", fmt.Errorf("open image: %w", err)
		}
		defer f.Close()
		part, err := w.CreateFormFile("image", filepath.Base(in.ImageFile))
		if err != nil {
			return nil, "", fmt.Errorf("image part: %w", err)
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", fmt.Errorf("copy image: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

func (c *Client) DeleteItem(ctx context.Context, id int) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkStatus(req, resp)
}

// CheckPrice asks the server to scrape the item's URL. A decodable body is
// returned whatever the status; only an undecodable non-2xx is an error.
func (c *Client) CheckPrice(ctx context.Context, id int) (CheckResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/api/items/%d/check-price", id), nil)
	if err != nil {
		return CheckResult{}, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return CheckResult{}, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return CheckResult{}, fmt.Errorf("read check-price body: %w", err)
	}
	var res CheckResult
	if err := json.Unmarshal(b, &res); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return CheckResult{}, &StatusError{Method: req.Method, Path: req.URL.Path, Code: resp.StatusCode, Body: string(b)}
		}
		return CheckResult{}, fmt.Errorf("decode check-price: %w", err)
	}
	res.StatusCode = resp.StatusCode
	return res, nil
}

// ExportCSV streams the server-generated CSV into w and returns the
// filename the server suggested, "" if none.
func (c *Client) ExportCSV(ctx context.Context, w io.Writer) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/export/csv", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(req, resp); err != nil {
		return "", err
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("copy csv: %w", err)
	}
	return attachmentName(resp.Header.Get("Content-Disposition")), nil
}

func attachmentName(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return filepath.Base(params["filename"])
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := checkStatus(req, resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

func checkStatus(req *http.Request, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	return &StatusError{Method: req.Method, Path: req.URL.Path, Code: resp.StatusCode, Body: string(b)}
}

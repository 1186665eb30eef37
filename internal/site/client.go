package site

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// PageFetcher loads one page of a paginated resource.
type PageFetcher interface {
	FetchPage(ctx context.Context, resource Resource, page, pageSize int) (Page, error)
}

// DetailFetcher loads a single item by id.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, resource Resource, id int64) (Item, error)
}

// ContentFetcher covers everything the home page needs.
type ContentFetcher interface {
	PageFetcher
	DetailFetcher
	FetchActiveHeroes(ctx context.Context) ([]Hero, error)
	FetchActivePromotions(ctx context.Context) ([]PromotionBanner, error)
	FetchCompany(ctx context.Context) (Company, error)
}

// Ensure Client implements ContentFetcher at compile time.
var _ ContentFetcher = (*Client)(nil)

// ErrMalformedPayload reports a success envelope without the expected data.
var ErrMalformedPayload = errors.New("malformed payload")

// StatusError is returned when the backend answers with a non-success HTTP status.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
}

// APIError is returned when the envelope code is not SUCCESS.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error %s", e.Code)
	}
	return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
}

const successCode = "SUCCESS"

// Client talks to the site's public HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIURL    = "http://127.0.0.1:4000/api"
	defaultUserAgent = "showcase/0.1"
	requestTimeout   = 10 * time.Second
)

// NewClient builds a Client for the API rooted at apiURL. A bare host:port is
// accepted and assumed to be plain HTTP.
func NewClient(apiURL string) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalised API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchPage retrieves one page of games or news.
func (c *Client) FetchPage(ctx context.Context, resource Resource, page, pageSize int) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("client is nil")
	}
	if page < 1 {
		return Page{}, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if pageSize < 1 {
		return Page{}, fmt.Errorf("page size must be >= 1, got %d", pageSize)
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("pageSize", strconv.Itoa(pageSize))
	rel := &url.URL{Path: string(resource) + "/public", RawQuery: values.Encode()}

	var payload envelope[listPayload]
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return Page{}, err
	}
	data, err := unwrap(payload)
	if err != nil {
		return Page{}, err
	}
	if data.NewsList == nil {
		return Page{}, fmt.Errorf("%s list: %w", resource, ErrMalformedPayload)
	}

	out := Page{
		Items:      make([]CardItem, 0, len(data.NewsList)),
		TotalPages: data.TotalPages,
	}
	if out.TotalPages < 1 {
		out.TotalPages = 1
	}
	for _, item := range data.NewsList {
		out.Items = append(out.Items, item.Card())
	}
	return out, nil
}

// FetchDetail retrieves a single game or news item.
func (c *Client) FetchDetail(ctx context.Context, resource Resource, id int64) (Item, error) {
	if c == nil {
		return Item{}, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return Item{}, fmt.Errorf("item id required")
	}
	var payload envelope[detailPayload]
	path := string(resource) + "/public/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodGet, path, &payload); err != nil {
		return Item{}, err
	}
	data, err := unwrap(payload)
	if err != nil {
		return Item{}, err
	}
	if data.News == nil {
		return Item{}, fmt.Errorf("%s detail: %w", resource, ErrMalformedPayload)
	}
	return *data.News, nil
}

// FetchActiveHeroes retrieves the published hero banners.
func (c *Client) FetchActiveHeroes(ctx context.Context) ([]Hero, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload envelope[heroesPayload]
	if err := c.do(ctx, http.MethodGet, "heroes/active", &payload); err != nil {
		return nil, err
	}
	data, err := unwrap(payload)
	if err != nil {
		return nil, err
	}
	if data.Heroes == nil {
		return nil, fmt.Errorf("heroes: %w", ErrMalformedPayload)
	}
	return data.Heroes, nil
}

// FetchActivePromotions retrieves the published promotion banners.
func (c *Client) FetchActivePromotions(ctx context.Context) ([]PromotionBanner, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload envelope[bannersPayload]
	if err := c.do(ctx, http.MethodGet, "promotions/active", &payload); err != nil {
		return nil, err
	}
	data, err := unwrap(payload)
	if err != nil {
		return nil, err
	}
	if data.Banners == nil {
		return nil, fmt.Errorf("promotions: %w", ErrMalformedPayload)
	}
	return data.Banners, nil
}

// FetchCompany retrieves the company profile.
func (c *Client) FetchCompany(ctx context.Context) (Company, error) {
	if c == nil {
		return Company{}, fmt.Errorf("client is nil")
	}
	var payload envelope[companyPayload]
	if err := c.do(ctx, http.MethodGet, "company", &payload); err != nil {
		return Company{}, err
	}
	data, err := unwrap(payload)
	if err != nil {
		return Company{}, err
	}
	if data.Company == nil {
		return Company{}, fmt.Errorf("company: %w", ErrMalformedPayload)
	}
	return *data.Company, nil
}

func unwrap[T any](payload envelope[T]) (*T, error) {
	if payload.Code != successCode {
		return nil, &APIError{Code: payload.Code, Message: payload.Message}
	}
	if payload.Data == nil {
		return nil, ErrMalformedPayload
	}
	return payload.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Path: rel.Path, StatusCode: resp.StatusCode}
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

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

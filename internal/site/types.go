package site

import (
	"fmt"
	"strings"
	"time"
)

// PlaceholderImageURL is used when an item carries no files.
const PlaceholderImageURL = "https://placehold.co/320x400?text=No+Image"

// Resource names a paginated collection on the backend.
type Resource string

const (
	ResourceGames Resource = "games"
	ResourceNews  Resource = "news"
)

// ParseResource validates a user supplied resource name.
func ParseResource(value string) (Resource, error) {
	switch Resource(strings.ToLower(strings.TrimSpace(value))) {
	case ResourceGames:
		return ResourceGames, nil
	case ResourceNews:
		return ResourceNews, nil
	}
	return "", fmt.Errorf("unknown resource %q (want games or news)", value)
}

// Label returns the capitalised resource name for display.
func (r Resource) Label() string {
	switch r {
	case ResourceGames:
		return "Games"
	case ResourceNews:
		return "News"
	}
	return string(r)
}

// File mirrors an attached media file.
type File struct {
	ID   int64  `json:"id" yaml:"id"`
	URL  string `json:"url" yaml:"url"`
	Type string `json:"type" yaml:"type"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// PlatformLink points at a store page for a game.
type PlatformLink struct {
	ID       int64  `json:"id" yaml:"id"`
	Platform string `json:"platform" yaml:"platform"`
	Link     string `json:"link" yaml:"link"`
}

// Item is the full record returned by list and detail endpoints for both
// games and news. Games leave PublishedAt empty; news has no platform links.
type Item struct {
	ID            int64          `json:"id" yaml:"id"`
	Title         string         `json:"title" yaml:"title"`
	Content       string         `json:"content" yaml:"content"`
	PublishedAt   string         `json:"publishedAt,omitempty" yaml:"published_at,omitempty"`
	Files         []File         `json:"files,omitempty" yaml:"files,omitempty"`
	PlatformLinks []PlatformLink `json:"platformLinks,omitempty" yaml:"platform_links,omitempty"`
}

// Card projects the item onto the display record used by cards and lists.
func (i Item) Card() CardItem {
	image := PlaceholderImageURL
	if len(i.Files) > 0 && strings.TrimSpace(i.Files[0].URL) != "" {
		image = i.Files[0].URL
	}
	return CardItem{
		ID:        i.ID,
		Title:     i.Title,
		ImageURL:  image,
		Content:   i.Content,
		Published: i.PublishedDate(),
	}
}

// PublishedDate returns the calendar date portion of PublishedAt.
func (i Item) PublishedDate() string {
	value := strings.TrimSpace(i.PublishedAt)
	if len(value) > 10 {
		return value[:10]
	}
	return value
}

// ParsedPublishedAt returns PublishedAt as time.Time when possible.
func (i Item) ParsedPublishedAt() time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, strings.TrimSpace(i.PublishedAt)); err == nil {
			return t
		}
	}
	return time.Time{}
}

// CardItem is the display record for a card. Identity is ID; every other
// field is display data and the latest fetch wins.
type CardItem struct {
	ID        int64  `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	ImageURL  string `json:"imageUrl" yaml:"image_url"`
	Content   string `json:"content" yaml:"content"`
	Published string `json:"published,omitempty" yaml:"published,omitempty"`
}

// Page is one page of a paginated listing.
type Page struct {
	Items      []CardItem
	TotalPages int
}

// Hero is a full-bleed media banner on the home page.
type Hero struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Files []File `json:"files"`
}

// MediaKind distinguishes hero media.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Media returns the file a hero should display: a video when present, then an
// image, then whatever comes first. ok is false when the hero has no files.
func (h Hero) Media() (kind MediaKind, url string, ok bool) {
	if len(h.Files) == 0 {
		return "", "", false
	}
	for _, f := range h.Files {
		if f.Type == string(MediaVideo) {
			return MediaVideo, f.URL, true
		}
	}
	for _, f := range h.Files {
		if f.Type == string(MediaImage) {
			return MediaImage, f.URL, true
		}
	}
	return MediaImage, h.Files[0].URL, true
}

// PromotionBanner is a rotating promotional banner.
type PromotionBanner struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Files []File `json:"files"`
}

// ImageURL returns the banner image or a placeholder.
func (p PromotionBanner) ImageURL() string {
	if len(p.Files) > 0 && strings.TrimSpace(p.Files[0].URL) != "" {
		return p.Files[0].URL
	}
	return "https://placehold.co/800x400?text=No+Image"
}

// Company describes the site owner shown in the footer.
type Company struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	PostalCode    string `json:"postalCode"`
	Address       string `json:"address"`
	AddressDetail string `json:"addressDetail"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// FullAddress joins the address parts that are present.
func (c Company) FullAddress() string {
	var parts []string
	for _, p := range []string{c.PostalCode, c.Address, c.AddressDetail} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// envelope is the common response wrapper used by every endpoint.
type envelope[T any] struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

type listPayload struct {
	NewsList   []Item `json:"newsList"`
	TotalCount int    `json:"totalCount"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}

type detailPayload struct {
	News *Item `json:"news"`
}

type heroesPayload struct {
	Heroes []Hero `json:"heroes"`
}

type bannersPayload struct {
	Banners []PromotionBanner `json:"banners"`
}

type companyPayload struct {
	Company *Company `json:"company"`
}

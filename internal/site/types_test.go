package site

import (
	"testing"
	"time"
)

func TestParseResource(t *testing.T) {
	for _, in := range []string{"games", " Games ", "NEWS"} {
		if _, err := ParseResource(in); err != nil {
			t.Fatalf("ParseResource(%q) returned error: %v", in, err)
		}
	}
	if _, err := ParseResource("heroes"); err == nil {
		t.Fatalf("ParseResource(heroes) returned nil error")
	}
}

func TestHeroMediaPreference(t *testing.T) {
	if _, _, ok := (Hero{}).Media(); ok {
		t.Fatalf("Media on hero without files should report ok=false")
	}

	h := Hero{Files: []File{{URL: "a.png", Type: "image"}, {URL: "b.mp4", Type: "video"}}}
	kind, url, ok := h.Media()
	if !ok || kind != MediaVideo || url != "b.mp4" {
		t.Fatalf("Media = %v %q %v, want video b.mp4", kind, url, ok)
	}

	h = Hero{Files: []File{{URL: "doc.pdf", Type: "file"}, {URL: "a.png", Type: "image"}}}
	kind, url, _ = h.Media()
	if kind != MediaImage || url != "a.png" {
		t.Fatalf("Media = %v %q, want image a.png", kind, url)
	}

	h = Hero{Files: []File{{URL: "doc.pdf", Type: "file"}}}
	kind, url, _ = h.Media()
	if kind != MediaImage || url != "doc.pdf" {
		t.Fatalf("Media = %v %q, want first file as image", kind, url)
	}
}

func TestItemPublishedHelpers(t *testing.T) {
	item := Item{PublishedAt: "2025-12-13T10:11:12Z"}
	if item.PublishedDate() != "2025-12-13" {
		t.Fatalf("PublishedDate = %q, want 2025-12-13", item.PublishedDate())
	}
	got := item.ParsedPublishedAt()
	if got.Year() != 2025 || got.Month() != time.December || got.Day() != 13 {
		t.Fatalf("ParsedPublishedAt = %v, want 2025-12-13", got)
	}
	if !(Item{}).ParsedPublishedAt().IsZero() {
		t.Fatalf("ParsedPublishedAt on empty value should be zero")
	}
}

func TestCompanyFullAddress(t *testing.T) {
	c := Company{PostalCode: "04524", Address: " 1 Main St ", AddressDetail: ""}
	if got := c.FullAddress(); got != "04524 1 Main St" {
		t.Fatalf("FullAddress = %q, want %q", got, "04524 1 Main St")
	}
}

package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/showcase/internal/site"
)

func sampleContent() *Content {
	return &Content{
		Heroes:     []site.Hero{{ID: 1, Title: "Launch"}},
		Promotions: []site.PromotionBanner{{ID: 1}, {ID: 2}},
		Company:    site.Company{Name: "Studio"},
		HasCompany: true,
		Featured:   []site.CardItem{{ID: 1}, {ID: 2}},
		News:       []site.CardItem{{ID: 10}},
	}
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	before := time.Now()
	s.Update(sampleContent(), nil)

	snap := s.Snapshot()
	if !snap.HasContent || snap.Content.Company.Name != "Studio" {
		t.Fatalf("snapshot content = %#v, want company Studio HasContent=true", snap.Content)
	}
	if len(snap.Content.Featured) != 2 || snap.Content.Featured[0].ID != 1 {
		t.Fatalf("snapshot featured = %#v, want 2 items", snap.Content.Featured)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Content.Featured[0].ID = 999
	snap.Content.News[0].ID = 999
	snap2 := s.Snapshot()
	if snap2.Content.Featured[0].ID != 1 || snap2.Content.News[0].ID != 10 {
		t.Fatalf("Snapshot should clone content; got %#v", snap2.Content)
	}
}

func TestStore_UpdateClonesInput(t *testing.T) {
	var s Store
	content := sampleContent()
	s.Update(content, nil)

	content.Heroes[0].Title = "mutated"
	if got := s.Snapshot().Content.Heroes[0].Title; got != "Launch" {
		t.Fatalf("hero title = %q, want Launch", got)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(sampleContent(), nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(nil, origErr)

	snap := s.Snapshot()
	if snap.HasContent != prev.HasContent || snap.Content.Company.Name != prev.Content.Company.Name {
		t.Fatalf("content changed on error: got %#v want %#v", snap.Content, prev.Content)
	}
	if len(snap.Content.News) != 1 || snap.Content.News[0].ID != 10 {
		t.Fatalf("news changed on error: got %#v want %#v", snap.Content.News, prev.Content.News)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("zero store = %d failures offline=%v, want 0 false", snap.ConsecutiveFailures, snap.IsOffline())
	}

	for i, wantOffline := range []bool{false, true, true} {
		s.Update(nil, errors.New("fail"))
		snap := s.Snapshot()
		if snap.ConsecutiveFailures != i+1 {
			t.Fatalf("ConsecutiveFailures = %d, want %d", snap.ConsecutiveFailures, i+1)
		}
		if snap.IsOffline() != wantOffline {
			t.Fatalf("IsOffline() = %v, want %v with %d failures", snap.IsOffline(), wantOffline, i+1)
		}
	}

	// Success resets counter
	s.Update(&Content{}, nil)
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false after success")
	}
}

func TestStore_Version(t *testing.T) {
	var s Store
	if v := s.Version(); v != 0 {
		t.Fatalf("Version() = %d, want 0", v)
	}
	s.Update(sampleContent(), nil)
	s.Update(nil, errors.New("x"))
	if v := s.Version(); v != 2 {
		t.Fatalf("Version() = %d, want 2", v)
	}
}

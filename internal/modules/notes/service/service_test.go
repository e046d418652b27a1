package service

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/reshetovitsme/product-scout/internal/modules/notes/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/logging"
	"github.com/samber/lo"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := New(t.TempDir(), logging.Discard())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	tick := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	}
	return s
}

func TestCreateNote(t *testing.T) {
	s := newTestService(t)

	note, err := s.Create(domain.NewNote{
		Title:   " iPhone 15 Pro Max Deal Analysis ",
		Content: "Found excellent deal at ₹99,900",
		Tags:    "iPhone, Electronics,,iPhone, High Profit",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if note.Title != "iPhone 15 Pro Max Deal Analysis" {
		t.Errorf("title not trimmed: %q", note.Title)
	}
	if diff := cmp.Diff([]string{"iPhone", "Electronics", "High Profit"}, note.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if note.Category != domain.DefaultCategory || note.Priority != domain.PriorityMedium {
		t.Errorf("defaults not applied: category=%q priority=%q", note.Category, note.Priority)
	}

	for _, in := range []domain.NewNote{
		{Title: "no content"},
		{Content: "no title"},
		{Title: "t", Content: "c", Priority: "urgent"},
	} {
		if _, err := s.Create(in); !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("Create(%+v) err = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestListFilterAndStar(t *testing.T) {
	s := newTestService(t)

	inputs := []domain.NewNote{
		{Title: "Supplier Contact", Content: "TechMart Electronics, Mumbai", Tags: "Supplier", Category: "Contacts"},
		{Title: "Gaming trend", Content: "Mechanical keyboards trending", Tags: "Gaming, Trend", Category: "Market Research", Priority: domain.PriorityHigh},
		{Title: "Shipping rates", Content: "BlueDart negotiated", Tags: "Logistics", Category: "Operations", Priority: domain.PriorityLow},
	}
	notes := lo.Map(inputs, func(in domain.NewNote, _ int) *domain.Note {
		n, err := s.Create(in)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		return n
	})

	if _, err := s.ToggleStar(notes[0].ID); err != nil {
		t.Fatalf("star: %v", err)
	}

	titles := func(ns []*domain.Note) []string {
		return lo.Map(ns, func(n *domain.Note, _ int) string { return n.Title })
	}

	all, err := s.List(domain.Query{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff([]string{"Supplier Contact", "Shipping rates", "Gaming trend"}, titles(all)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	byTag, _ := s.List(domain.Query{Term: "trend"})
	if diff := cmp.Diff([]string{"Gaming trend"}, titles(byTag)); diff != "" {
		t.Errorf("term mismatch (-want +got):\n%s", diff)
	}
	byCategory, _ := s.List(domain.Query{Category: "Operations"})
	if diff := cmp.Diff([]string{"Shipping rates"}, titles(byCategory)); diff != "" {
		t.Errorf("category mismatch (-want +got):\n%s", diff)
	}

	categories, err := s.Categories()
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if diff := cmp.Diff([]string{"Contacts", "Market Research", "Operations"}, categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	counts, err := s.CountByPriority()
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	want := map[domain.Priority]int{domain.PriorityLow: 1, domain.PriorityMedium: 1, domain.PriorityHigh: 1}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}

	if err := s.Delete(notes[1].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(notes[1].ID); !errors.IsNotFound(err) {
		t.Errorf("second delete err = %v, want not found", err)
	}
}

package repository

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/reshetovitsme/product-scout/internal/modules/message/domain"
	"github.com/samber/lo"
)

func TestMessagesByChannel(t *testing.T) {
	s, err := NewFileStorage(t.TempDir())
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}

	base := time.Date(2025, 7, 3, 10, 0, 0, 0, time.UTC)
	for _, m := range []domain.Message{
		{ID: 12, ChannelID: "-1001", Text: "third", Date: base.Add(2 * time.Hour)},
		{ID: 2, ChannelID: "-1001", Text: "first", Date: base},
		{ID: 10, ChannelID: "-1001", Text: "second", Date: base.Add(time.Hour), Media: []domain.Media{{Type: domain.MediaTypePhoto, FileID: "f1"}}},
		{ID: 1, ChannelID: "-2002", Text: "other", Date: base},
	} {
		if err := s.Save(&m); err != nil {
			t.Fatalf("save %d: %v", m.ID, err)
		}
	}

	texts := func(ms []*domain.Message) []string {
		return lo.Map(ms, func(m *domain.Message, _ int) string { return m.Text })
	}

	latest, err := s.Latest("-1001", 2)
	if err != nil {
		t.Fatalf("get messages: %v", err)
	}
	if diff := cmp.Diff([]string{"third", "second"}, texts(latest)); diff != "" {
		t.Errorf("Latest mismatch (-want +got):\n%s", diff)
	}
	if latest[1].Media[0].Type != domain.MediaTypePhoto {
		t.Errorf("media not persisted: %+v", latest[1].Media)
	}

	recent, err := s.Since("-1001", base)
	if err != nil {
		t.Fatalf("get recent: %v", err)
	}
	if diff := cmp.Diff([]string{"second", "third"}, texts(recent)); diff != "" {
		t.Errorf("Since mismatch (-want +got):\n%s", diff)
	}

	empty, err := s.Latest("-3003", 10)
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("unknown channel returned %d messages", len(empty))
	}
}

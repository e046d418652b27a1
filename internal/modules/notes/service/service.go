package service

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reshetovitsme/product-scout/internal/modules/notes/domain"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/storage"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Service struct {
	notes  *storage.Collection[domain.Note]
	logger *slog.Logger
	now    func() time.Time
}

func New(basePath string, logger *slog.Logger) (*Service, error) {
	notes, err := storage.NewCollection(basePath, "notes", func(n *domain.Note) string { return n.ID })
	if err != nil {
		return nil, err
	}
	return &Service{notes: notes, logger: logger, now: time.Now}, nil
}

// Create stores a note. Title and content are required.
func (s *Service) Create(input domain.NewNote) (*domain.Note, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	if title == "" || content == "" {
		return nil, oops.Wrapf(errors.ErrInvalidInput, "note title and content are required")
	}
	priority := lo.CoalesceOrEmpty(input.Priority, domain.PriorityMedium)
	if !priority.IsValid() {
		return nil, oops.With("priority", input.Priority).Wrapf(errors.ErrInvalidInput, "unknown priority")
	}

	now := s.now().UTC()
	note := &domain.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Tags:      productDomain.SplitTags(input.Tags),
		Category:  lo.CoalesceOrEmpty(strings.TrimSpace(input.Category), domain.DefaultCategory),
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.notes.Save(note); err != nil {
		return nil, oops.With("context", "failed to save note").Wrap(err)
	}
	s.logger.Debug("Note created", "note_id", note.ID, "category", note.Category)
	return note, nil
}

// List returns the matching notes, starred first, then most recently updated.
func (s *Service) List(q domain.Query) ([]*domain.Note, error) {
	notes, err := s.notes.All()
	if err != nil {
		return nil, err
	}
	notes = lo.Filter(notes, func(n *domain.Note, _ int) bool { return n.Matches(q) })
	slices.SortStableFunc(notes, func(a, b *domain.Note) int {
		if a.Starred != b.Starred {
			return lo.Ternary(a.Starred, -1, 1)
		}
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return notes, nil
}

// Categories returns the distinct note categories in sorted order.
func (s *Service) Categories() ([]string, error) {
	notes, err := s.notes.All()
	if err != nil {
		return nil, err
	}
	categories := lo.Uniq(lo.Map(notes, func(n *domain.Note, _ int) string { return n.Category }))
	slices.Sort(categories)
	return categories, nil
}

func (s *Service) ToggleStar(id string) (*domain.Note, error) {
	return s.notes.Update(id, func(n *domain.Note) error {
		n.Starred = !n.Starred
		n.UpdatedAt = s.now().UTC()
		return nil
	})
}

func (s *Service) Delete(id string) error {
	return s.notes.Delete(id)
}

// CountByPriority counts notes per priority. Every priority has an entry.
func (s *Service) CountByPriority() (map[domain.Priority]int, error) {
	notes, err := s.notes.All()
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.Priority]int, len(domain.PriorityNames()))
	for _, name := range domain.PriorityNames() {
		counts[domain.Priority(name)] = 0
	}
	for _, n := range notes {
		counts[n.Priority]++
	}
	return counts, nil
}

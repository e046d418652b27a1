package service

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/reshetovitsme/product-scout/internal/modules/alerts/domain"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/storage"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Service struct {
	alerts *storage.Collection[domain.Alert]
	logger *slog.Logger
	now    func() time.Time
}

func New(basePath string, logger *slog.Logger) (*Service, error) {
	alerts, err := storage.NewCollection(basePath, "alerts", func(a *domain.Alert) string { return a.ID })
	if err != nil {
		return nil, err
	}
	return &Service{alerts: alerts, logger: logger, now: time.Now}, nil
}

// Create stores an active, read alert. Title, a known type and a
// non-negative threshold are required.
func (s *Service) Create(input domain.NewAlert) (*domain.Alert, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, oops.Wrapf(errors.ErrInvalidInput, "alert title is required")
	}
	if !input.Type.IsValid() {
		return nil, oops.With("type", input.Type).Wrapf(errors.ErrInvalidInput, "unknown alert type")
	}
	priority := lo.CoalesceOrEmpty(input.Priority, domain.PriorityMedium)
	if !priority.IsValid() {
		return nil, oops.With("priority", input.Priority).Wrapf(errors.ErrInvalidInput, "unknown priority")
	}
	if input.Threshold < 0 {
		return nil, oops.With("threshold", input.Threshold).Wrapf(errors.ErrInvalidInput, "threshold must not be negative")
	}

	alert := &domain.Alert{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Type:        input.Type,
		Priority:    priority,
		Product:     strings.TrimSpace(input.Product),
		Threshold:   input.Threshold,
		Active:      true,
		Read:        true,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.alerts.Save(alert); err != nil {
		return nil, oops.With("context", "failed to save alert").Wrap(err)
	}
	return alert, nil
}

// List returns matching alerts, most recently triggered first.
func (s *Service) List(q domain.Query) ([]*domain.Alert, error) {
	alerts, err := s.alerts.All()
	if err != nil {
		return nil, err
	}
	alerts = lo.Filter(alerts, func(a *domain.Alert, _ int) bool { return a.Matches(q) })
	slices.SortStableFunc(alerts, func(a, b *domain.Alert) int {
		if c := b.TriggeredAt.Compare(a.TriggeredAt); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return alerts, nil
}

func (s *Service) MarkRead(id string) (*domain.Alert, error) {
	return s.alerts.Update(id, func(a *domain.Alert) error {
		a.Read = true
		return nil
	})
}

func (s *Service) ToggleActive(id string) (*domain.Alert, error) {
	return s.alerts.Update(id, func(a *domain.Alert) error {
		a.Active = !a.Active
		return nil
	})
}

func (s *Service) Delete(id string) error {
	return s.alerts.Delete(id)
}

func (s *Service) Summary() (domain.Summary, error) {
	alerts, err := s.alerts.All()
	if err != nil {
		return domain.Summary{}, err
	}
	return domain.Summary{
		Unread:       lo.CountBy(alerts, func(a *domain.Alert) bool { return !a.Read }),
		Active:       lo.CountBy(alerts, func(a *domain.Alert) bool { return a.Active }),
		HighPriority: lo.CountBy(alerts, func(a *domain.Alert) bool { return a.Priority == domain.PriorityHigh }),
	}, nil
}

// Evaluate triggers every active price alert the product trips and returns them.
func (s *Service) Evaluate(product *productDomain.Product) ([]*domain.Alert, error) {
	alerts, err := s.alerts.All()
	if err != nil {
		return nil, err
	}

	var triggered []*domain.Alert
	for _, candidate := range alerts {
		if !candidate.Fires(product.Name, product.Price) {
			continue
		}
		updated, err := s.alerts.Update(candidate.ID, func(a *domain.Alert) error {
			a.CurrentValue = product.Price
			a.TriggeredAt = s.now().UTC()
			a.ProductID = product.ID
			a.Read = false
			return nil
		})
		if err != nil {
			return triggered, oops.With("alert_id", candidate.ID, "context", "failed to trigger alert").Wrap(err)
		}
		s.logger.Info("Alert triggered", "alert_id", updated.ID, "product_id", product.ID, "price", product.Price, "threshold", updated.Threshold)
		triggered = append(triggered, updated)
	}
	return triggered, nil
}

package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/tagging/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/storage"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Catalog is the product store rules run over.
type Catalog interface {
	All(ctx context.Context) ([]productDomain.Product, error)
	SetTags(ctx context.Context, id string, tags []string) error
}

type Service struct {
	rules   *storage.Collection[domain.Rule]
	catalog Catalog
	logger  *slog.Logger
	now     func() time.Time

	// compiled caches parsed conditions by condition text
	mu       sync.Mutex
	compiled map[string]domain.Condition
}

func New(basePath string, catalog Catalog, logger *slog.Logger) (*Service, error) {
	rules, err := storage.NewCollection(basePath, "tag_rules", func(r *domain.Rule) string { return r.ID })
	if err != nil {
		return nil, err
	}
	return &Service{
		rules:    rules,
		catalog:  catalog,
		logger:   logger,
		now:      time.Now,
		compiled: make(map[string]domain.Condition),
	}, nil
}

// Create stores an active rule after validating its condition.
func (s *Service) Create(input domain.NewRule) (*domain.Rule, error) {
	name := strings.TrimSpace(input.Name)
	tags := productDomain.SplitTags(input.Tags)
	if name == "" || len(tags) == 0 {
		return nil, oops.Wrapf(errors.ErrInvalidInput, "rule name and at least one tag are required")
	}
	condition := strings.TrimSpace(input.Condition)
	if _, err := s.condition(condition); err != nil {
		return nil, err
	}

	rule := &domain.Rule{
		ID:        uuid.NewString(),
		Name:      name,
		Condition: condition,
		Tags:      tags,
		Active:    true,
		CreatedAt: s.now().UTC(),
	}
	if err := s.rules.Save(rule); err != nil {
		return nil, oops.With("context", "failed to save tag rule").Wrap(err)
	}
	return rule, nil
}

// List returns all rules, oldest first.
func (s *Service) List() ([]*domain.Rule, error) {
	rules, err := s.rules.All()
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(rules, func(a, b *domain.Rule) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return rules, nil
}

func (s *Service) Toggle(id string) (*domain.Rule, error) {
	return s.rules.Update(id, func(r *domain.Rule) error {
		r.Active = !r.Active
		return nil
	})
}

func (s *Service) Delete(id string) error {
	return s.rules.Delete(id)
}

// Apply adds the tags of every active matching rule to p and bumps those
// rules' match counts. It returns the names of the matching rules.
func (s *Service) Apply(p *productDomain.Product) ([]string, error) {
	rules, err := s.active()
	if err != nil {
		return nil, err
	}

	var matched []string
	for _, rule := range rules {
		if !s.matches(rule, p) {
			continue
		}
		p.Tags = lo.Union(p.Tags, rule.Tags)
		if _, err := s.rules.Update(rule.ID, func(r *domain.Rule) error {
			r.MatchCount++
			return nil
		}); err != nil {
			return matched, oops.With("rule_id", rule.ID, "context", "failed to update match count").Wrap(err)
		}
		matched = append(matched, rule.Name)
	}
	return matched, nil
}

// RunResult summarises a run over the catalog.
type RunResult struct {
	Products int `json:"products"`
	Tagged   int `json:"tagged"`
}

// Run applies the active rules to the whole catalog. Match counts are reset
// to the number of catalog products each rule matches.
func (s *Service) Run(ctx context.Context) (RunResult, error) {
	rules, err := s.active()
	if err != nil {
		return RunResult{}, err
	}
	products, err := s.catalog.All(ctx)
	if err != nil {
		return RunResult{}, oops.With("context", "failed to load catalog").Wrap(err)
	}

	counts := make(map[string]int, len(rules))
	result := RunResult{Products: len(products)}
	for i := range products {
		p := &products[i]
		tags := p.Tags
		for _, rule := range rules {
			if s.matches(rule, p) {
				counts[rule.ID]++
				tags = lo.Union(tags, rule.Tags)
			}
		}
		if len(tags) == len(p.Tags) {
			continue
		}
		if err := s.catalog.SetTags(ctx, p.ID, tags); err != nil {
			return result, oops.With("product_id", p.ID, "context", "failed to tag product").Wrap(err)
		}
		result.Tagged++
	}

	for _, rule := range rules {
		if _, err := s.rules.Update(rule.ID, func(r *domain.Rule) error {
			r.MatchCount = counts[rule.ID]
			return nil
		}); err != nil {
			return result, err
		}
	}

	s.logger.Info("Tag rules applied", "rules", len(rules), "products", result.Products, "tagged", result.Tagged)
	return result, nil
}

func (s *Service) active() ([]*domain.Rule, error) {
	rules, err := s.List()
	if err != nil {
		return nil, err
	}
	return lo.Filter(rules, func(r *domain.Rule, _ int) bool { return r.Active }), nil
}

func (s *Service) matches(rule *domain.Rule, p *productDomain.Product) bool {
	cond, err := s.condition(rule.Condition)
	if err != nil {
		s.logger.Warn("Skipping rule with invalid condition", "rule_id", rule.ID, "error", err)
		return false
	}
	return cond.Match(p)
}

func (s *Service) condition(text string) (domain.Condition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cond, ok := s.compiled[text]; ok {
		return cond, nil
	}
	cond, err := domain.ParseCondition(text)
	if err != nil {
		return nil, err
	}
	s.compiled[text] = cond
	return cond, nil
}

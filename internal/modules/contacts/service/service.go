package service

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reshetovitsme/product-scout/internal/modules/contacts/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/product/extract"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/storage"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Service struct {
	contacts *storage.Collection[domain.Contact]
	logger   *slog.Logger
	now      func() time.Time

	// mu keeps phone/email de-duplication consistent across writers
	mu sync.Mutex
}

func New(basePath string, logger *slog.Logger) (*Service, error) {
	contacts, err := storage.NewCollection(basePath, "contacts", func(c *domain.Contact) string { return c.ID })
	if err != nil {
		return nil, err
	}
	return &Service{contacts: contacts, logger: logger, now: time.Now}, nil
}

// List returns contacts matching term, most recently contacted first.
func (s *Service) List(term string) ([]*domain.Contact, error) {
	contacts, err := s.contacts.All()
	if err != nil {
		return nil, err
	}
	contacts = lo.Filter(contacts, func(c *domain.Contact, _ int) bool { return c.Matches(term) })
	slices.SortStableFunc(contacts, func(a, b *domain.Contact) int { return b.LastContact.Compare(a.LastContact) })
	return contacts, nil
}

// Extract finds phone numbers and email addresses in text.
func (s *Service) Extract(text string) domain.Extraction {
	return domain.Extraction{
		Phones: lo.Map(extract.Phones(text), func(p string, _ int) string { return domain.DisplayPhone(p) }),
		Emails: extract.Emails(text),
	}
}

// ExtractAndSave stores a contact for every new phone and email found in text.
func (s *Service) ExtractAndSave(text string) ([]*domain.Contact, error) {
	var saved []*domain.Contact
	for _, phone := range extract.Phones(text) {
		c, created, err := s.upsert(domain.Contact{Name: domain.DisplayPhone(phone), Phone: phone, Source: domain.SourceExtracted}, false)
		if err != nil {
			return saved, err
		}
		if created {
			saved = append(saved, c)
		}
	}
	for _, email := range extract.Emails(text) {
		c, created, err := s.upsert(domain.Contact{Name: email, Email: email, Source: domain.SourceExtracted}, false)
		if err != nil {
			return saved, err
		}
		if created {
			saved = append(saved, c)
		}
	}
	return saved, nil
}

// Create saves a contact entered by hand. A name and a phone or email are required.
func (s *Service) Create(input domain.NewContact) (*domain.Contact, error) {
	name := strings.TrimSpace(input.Name)
	phone := normalizePhone(input.Phone)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || (phone == "" && email == "") {
		return nil, oops.Wrapf(errors.ErrInvalidInput, "contact name and a phone or email are required")
	}

	c, created, err := s.upsert(domain.Contact{
		Name:     name,
		Company:  strings.TrimSpace(input.Company),
		Role:     strings.TrimSpace(input.Role),
		Phone:    phone,
		Email:    email,
		Location: strings.TrimSpace(input.Location),
		Source:   lo.CoalesceOrEmpty(strings.TrimSpace(input.Source), domain.SourceExtracted),
	}, false)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, oops.With("contact_id", c.ID).Wrapf(errors.ErrConflict, "contact already exists")
	}
	return c, nil
}

// RecordListing remembers the seller phone of a channel listing. A known
// phone only gets its last contact time moved forward.
func (s *Service) RecordListing(phone, channelName string, at time.Time) (*domain.Contact, error) {
	phone = normalizePhone(phone)
	if phone == "" {
		return nil, oops.Wrapf(errors.ErrInvalidInput, "phone is required")
	}
	c, _, err := s.upsert(domain.Contact{
		Name:        channelName,
		Company:     channelName,
		Phone:       phone,
		Source:      domain.SourceTelegram,
		LastContact: at,
	}, true)
	return c, err
}

func (s *Service) Verify(id string) (*domain.Contact, error) {
	return s.contacts.Update(id, func(c *domain.Contact) error {
		c.Verified = true
		return nil
	})
}

func (s *Service) Delete(id string) error {
	return s.contacts.Delete(id)
}

func (s *Service) Summary() (domain.Summary, error) {
	contacts, err := s.contacts.All()
	if err != nil {
		return domain.Summary{}, err
	}
	distinct := func(get func(*domain.Contact) string) int {
		return len(lo.Compact(lo.Uniq(lo.Map(contacts, func(c *domain.Contact, _ int) string { return get(c) }))))
	}
	return domain.Summary{
		Total:     len(contacts),
		Verified:  lo.CountBy(contacts, func(c *domain.Contact) bool { return c.Verified }),
		Companies: distinct(func(c *domain.Contact) string { return c.Company }),
		Sources:   distinct(func(c *domain.Contact) string { return c.Source }),
	}, nil
}

// upsert saves c unless a contact with the same phone or email exists. With
// touch set, the existing contact's last contact time is moved forward.
func (s *Service) upsert(c domain.Contact, touch bool) (*domain.Contact, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.LastContact.IsZero() {
		c.LastContact = s.now().UTC()
	}

	all, err := s.contacts.All()
	if err != nil {
		return nil, false, err
	}
	existing, found := lo.Find(all, func(e *domain.Contact) bool {
		return (c.Phone != "" && e.Phone == c.Phone) || (c.Email != "" && e.Email == c.Email)
	})
	if found {
		if !touch || !c.LastContact.After(existing.LastContact) {
			return existing, false, nil
		}
		updated, err := s.contacts.Update(existing.ID, func(e *domain.Contact) error {
			e.LastContact = c.LastContact
			return nil
		})
		return updated, false, err
	}

	c.ID = uuid.NewString()
	if err := s.contacts.Save(&c); err != nil {
		return nil, false, oops.With("context", "failed to save contact").Wrap(err)
	}
	s.logger.Debug("Contact saved", "contact_id", c.ID, "source", c.Source)
	return &c, true, nil
}

// normalizePhone reduces a phone to its 10-digit national number, or "".
func normalizePhone(phone string) string {
	return lo.FirstOrEmpty(extract.Phones(phone))
}

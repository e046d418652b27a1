package service

import (
	"log/slog"
	"strings"

	channelDomain "github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/channelsync/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/channelsync/repository"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Importer turns joined channels into managed ones.
type Importer interface {
	Import(channel *channelDomain.Channel) (*channelDomain.Channel, error)
}

// Service tracks the channels the bot has joined and saves them as managed channels.
type Service struct {
	repo     repository.Repository
	channels Importer
	logger   *slog.Logger
}

func New(repo repository.Repository, channels Importer, logger *slog.Logger) *Service {
	return &Service{repo: repo, channels: channels, logger: logger}
}

// Register records or refreshes a joined channel. A known channel keeps its
// join date and stays saved once saved.
func (s *Service) Register(joined domain.JoinedChannel) (*domain.JoinedChannel, error) {
	if joined.TelegramID == "" {
		return nil, oops.Wrapf(errors.ErrInvalidInput, "telegram id is required")
	}
	if joined.Tags == nil {
		joined.Tags = []string{}
	}

	existing, err := s.repo.GetJoined(joined.TelegramID)
	switch {
	case err == nil:
		joined.IsSaved = joined.IsSaved || existing.IsSaved
		if !existing.JoinedAt.IsZero() {
			joined.JoinedAt = existing.JoinedAt
		}
		joined.ChannelName = lo.CoalesceOrEmpty(joined.ChannelName, existing.ChannelName)
		joined.ChannelID = lo.CoalesceOrEmpty(joined.ChannelID, existing.ChannelID)
		joined.Members = lo.Ternary(joined.Members > 0, joined.Members, existing.Members)
		joined.Tags = lo.Ternary(len(joined.Tags) > 0, joined.Tags, existing.Tags)
		joined.Description = lo.CoalesceOrEmpty(joined.Description, existing.Description)
	case !errors.IsNotFound(err):
		return nil, err
	}

	if err := s.repo.SaveJoined(&joined); err != nil {
		return nil, oops.With("telegram_id", joined.TelegramID, "context", "failed to save joined channel").Wrap(err)
	}
	return &joined, nil
}

// List returns the joined channels matching opts.
func (s *Service) List(opts domain.ListOptions) ([]domain.JoinedChannel, error) {
	all, err := s.repo.GetAllJoined()
	if err != nil {
		return nil, err
	}
	return domain.Select(lo.FromSlicePtr(all), opts), nil
}

// Save imports the given joined channels as managed channels and marks them saved.
// An invalid entry rejects the whole batch before anything is imported.
// A storage failure stops the loop; channels imported before it stay saved.
func (s *Service) Save(joined []domain.JoinedChannel) ([]*channelDomain.Channel, error) {
	if len(joined) == 0 {
		return nil, oops.Wrap(errors.ErrNothingSelected)
	}
	for i, j := range joined {
		if j.TelegramID == "" || strings.TrimSpace(j.ChannelName) == "" {
			return nil, oops.
				With("index", i, "telegram_id", j.TelegramID, "channel_id", j.ChannelID).
				Wrapf(errors.ErrInvalidInput, "telegram id and channel name are required")
		}
	}

	saved := make([]*channelDomain.Channel, 0, len(joined))
	for _, j := range joined {
		channel, err := s.channels.Import(ToChannel(j))
		if err != nil {
			return saved, oops.With("telegram_id", j.TelegramID, "context", "failed to import channel").Wrap(err)
		}

		j.IsSaved = true
		if _, err := s.Register(j); err != nil {
			return saved, err
		}
		saved = append(saved, channel)
	}

	s.logger.Info("Channels saved", "count", len(saved))
	return saved, nil
}

// ToChannel maps a joined channel onto a managed channel. The telegram id
// becomes the managed channel id so posts can be matched to it.
func ToChannel(j domain.JoinedChannel) *channelDomain.Channel {
	username := j.Username()
	channel := &channelDomain.Channel{
		ID:       j.TelegramID,
		Name:     strings.TrimSpace(j.ChannelName),
		Username: username,
		Platform: channelDomain.PlatformTelegram,
		Type:     lo.Ternary(username == "", channelDomain.TypePrivate, channelDomain.TypePublic),
		Members:  j.Members,
		Tag:      strings.Join(j.Tags, ", "),
	}
	if username != "" {
		channel.InviteLink = "https://t.me/" + username
	}
	return channel
}

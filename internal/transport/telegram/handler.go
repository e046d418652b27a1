package telegram

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	analyticsDomain "github.com/reshetovitsme/product-scout/internal/modules/analytics/domain"
	channelDomain "github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	syncDomain "github.com/reshetovitsme/product-scout/internal/modules/channelsync/domain"
	ingestDomain "github.com/reshetovitsme/product-scout/internal/modules/ingest/domain"
	messageDomain "github.com/reshetovitsme/product-scout/internal/modules/message/domain"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/product/filter"
	userDomain "github.com/reshetovitsme/product-scout/internal/modules/user/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/config"
)

// Bot is the part of the Telegram API the handler calls.
type Bot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	GetChatMemberCount(ctx context.Context, params *bot.GetChatMemberCountParams) (int, error)
}

type Users interface {
	IsAuthorized(userID int64) bool
	Register(userID int64, username string) (*userDomain.User, error)
}

type Channels interface {
	List(q channelDomain.Query) ([]*channelDomain.Channel, error)
	GetChannel(channelID string) (*channelDomain.Channel, error)
	Toggle(channelID string) (*channelDomain.Channel, error)
	AddFilter(channelID string, filterType channelDomain.FilterType, keywords []string) (*channelDomain.Channel, error)
	RemoveFilter(channelID string, index int) (*channelDomain.Channel, error)
}

type Products interface {
	Search(ctx context.Context, query string, facets filter.Facets) ([]productDomain.Product, error)
}

type Analytics interface {
	Overview(ctx context.Context, r analyticsDomain.Range) (*analyticsDomain.Overview, error)
}

// Ingester turns channel posts into catalog entries.
type Ingester interface {
	Ingest(ctx context.Context, post ingestDomain.Post) (ingestDomain.Result, error)
	Discover(joined syncDomain.JoinedChannel)
}

// Handler handles Telegram bot interactions
type Handler struct {
	cfg       *config.Config
	users     Users
	channels  Channels
	products  Products
	analytics Analytics
	ingester  Ingester
	logger    *slog.Logger
}

// New creates a new Telegram handler
func New(cfg *config.Config, users Users, channels Channels, products Products, analytics Analytics, ingester Ingester, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		users:     users,
		channels:  channels,
		products:  products,
		analytics: analytics,
		ingester:  ingester,
		logger:    logger,
	}
}

// RegisterCommands registers bot commands
func (h *Handler) RegisterCommands(b *bot.Bot) {
	b.RegisterHandlerMatchFunc(matchCommand("start"), h.handleStart)
	b.RegisterHandlerMatchFunc(matchCommand("help"), h.guarded(h.help))
	b.RegisterHandlerMatchFunc(matchCommand("search"), h.guarded(h.search))
	b.RegisterHandlerMatchFunc(matchCommand("profit"), h.guarded(h.profit))
	b.RegisterHandlerMatchFunc(matchCommand("channels"), h.guarded(h.listChannels))
	b.RegisterHandlerMatchFunc(matchCommand("toggle"), h.guarded(h.toggle))
	b.RegisterHandlerMatchFunc(matchCommand("addfilter"), h.guarded(h.addFilter))
	b.RegisterHandlerMatchFunc(matchCommand("removefilter"), h.guarded(h.removeFilter))
	b.RegisterHandlerMatchFunc(matchCommand("rsslink"), h.guarded(h.rssLink))
	b.RegisterHandlerMatchFunc(matchCommand("status"), h.guarded(h.status))
}

// matchCommand matches messages whose first word is /name, with or
// without the "@botname" suffix Telegram adds in groups.
func matchCommand(name string) bot.MatchFunc {
	return func(update *models.Update) bool {
		return update.Message != nil && commandName(update.Message.Text) == name
	}
}

// commandName returns the lower-cased command of text, or "" when text
// does not start with a command.
func commandName(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	word := fields[0]
	if len(word) < 2 || word[0] != '/' {
		return ""
	}
	name, _, _ := strings.Cut(word[1:], "@")
	return strings.ToLower(name)
}

// HandleUpdate processes updates no command handler matched: channel posts
// and changes of the bot's own membership.
func (h *Handler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleUpdate(ctx, b, update)
}

func (h *Handler) handleUpdate(ctx context.Context, b Bot, update *models.Update) {
	switch {
	case update.ChannelPost != nil:
		h.processChannelPost(ctx, b, update.ChannelPost)
	case update.EditedChannelPost != nil:
		h.processChannelPost(ctx, b, update.EditedChannelPost)
	case update.Message != nil && update.Message.Chat.Type == models.ChatTypeChannel:
		h.processChannelPost(ctx, b, update.Message)
	case update.MyChatMember != nil:
		h.processMembership(ctx, b, update.MyChatMember)
	}
}

func (h *Handler) processChannelPost(ctx context.Context, b Bot, msg *models.Message) {
	h.discover(ctx, b, msg.Chat, time.Unix(int64(msg.Date), 0))

	// Extract message data
	text := msg.Text
	if text == "" && msg.Caption != "" {
		text = msg.Caption
	}

	post := ingestDomain.Post{
		ChannelID:    strconv.FormatInt(msg.Chat.ID, 10),
		ChannelTitle: msg.Chat.Title,
		Username:     msg.Chat.Username,
		MessageID:    int64(msg.ID),
		Text:         text,
		Date:         time.Unix(int64(msg.Date), 0).UTC(),
		Author:       getAuthorName(msg),
		Media:        extractMedia(msg),
	}

	result, err := h.ingester.Ingest(ctx, post)
	if err != nil {
		h.logger.Error("Error processing post", "error", err, "channel_id", post.ChannelID, "message_id", msg.ID)
		return
	}
	if result.Product != nil {
		h.logger.Info("Product listed", "product_id", result.Product.ID, "name", result.Product.Name, "tags", result.Tags, "alerts", len(result.Alerts))
	}
}

func (h *Handler) processMembership(ctx context.Context, b Bot, change *models.ChatMemberUpdated) {
	if change.Chat.Type != models.ChatTypeChannel {
		return
	}
	switch change.NewChatMember.Type {
	case models.ChatMemberTypeOwner, models.ChatMemberTypeAdministrator, models.ChatMemberTypeMember:
		h.discover(ctx, b, change.Chat, time.Unix(int64(change.Date), 0))
	default:
		h.logger.Info("Bot left channel", "channel_id", change.Chat.ID, "title", change.Chat.Title)
	}
}

// discover registers a channel the bot can see on the sync page.
func (h *Handler) discover(ctx context.Context, b Bot, chat models.Chat, seen time.Time) {
	joined := syncDomain.JoinedChannel{
		ChannelName: chat.Title,
		TelegramID:  strconv.FormatInt(chat.ID, 10),
		JoinedAt:    seen.UTC(),
		Tags:        []string{},
	}
	if chat.Username != "" {
		joined.ChannelID = "@" + chat.Username
	}
	if count, err := b.GetChatMemberCount(ctx, &bot.GetChatMemberCountParams{ChatID: chat.ID}); err == nil {
		joined.Members = count
	} else {
		h.logger.Debug("Failed to get member count", "channel_id", chat.ID, "error", err)
	}
	h.ingester.Discover(joined)
}

// Helper functions
func getAuthorName(msg *models.Message) string {
	if msg.AuthorSignature != "" {
		return msg.AuthorSignature
	}
	if msg.From != nil {
		if msg.From.Username != "" {
			return "@" + msg.From.Username
		}
		if msg.From.FirstName != "" {
			return msg.From.FirstName
		}
	}
	if msg.Chat.Title != "" {
		return msg.Chat.Title
	}
	return "Unknown"
}

func extractMedia(msg *models.Message) []messageDomain.Media {
	var media []messageDomain.Media

	if len(msg.Photo) > 0 {
		photo := msg.Photo[len(msg.Photo)-1]
		media = append(media, messageDomain.Media{
			Type:    messageDomain.MediaTypePhoto,
			FileID:  photo.FileID,
			Caption: msg.Caption,
		})
	}

	if msg.Video != nil {
		media = append(media, messageDomain.Media{
			Type:   messageDomain.MediaTypeVideo,
			FileID: msg.Video.FileID,
		})
	}

	if msg.Document != nil {
		media = append(media, messageDomain.Media{
			Type:   messageDomain.MediaTypeDocument,
			FileID: msg.Document.FileID,
		})
	}

	if msg.Audio != nil {
		media = append(media, messageDomain.Media{
			Type:   messageDomain.MediaTypeAudio,
			FileID: msg.Audio.FileID,
		})
	}

	return media
}

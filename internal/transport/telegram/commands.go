package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	analyticsDomain "github.com/reshetovitsme/product-scout/internal/modules/analytics/domain"
	channelDomain "github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/product/filter"
	profitDomain "github.com/reshetovitsme/product-scout/internal/modules/profit/domain"
	profitService "github.com/reshetovitsme/product-scout/internal/modules/profit/service"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/money"
	"github.com/samber/lo"
)

// searchResultLimit caps the products listed in a /search reply.
const searchResultLimit = 5

const helpText = `Available commands:
/help - Show this help message
/search <query> - Search wholesale listings
/profit <price> [shipping] [fee] [marketing] - Estimate profit
/channels - List managed channels
/toggle <channel_id> - Pause or resume a channel
/addfilter <channel_id> <keyword1,keyword2> [exclude] - Add keyword filter
/removefilter <channel_id> <filter_index> - Remove a filter
/rsslink [channel_id] - Get product feed links
/status - Show bot status

Add the bot to a channel as an administrator to start collecting its listings.`

// command builds the reply to a message. args are the words after the command.
type command func(ctx context.Context, msg *models.Message, args []string) string

func (h *Handler) reply(ctx context.Context, b Bot, chatID int64, text string) {
	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}); err != nil {
		h.logger.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}

// guarded wraps cmd with the authorization check.
func (h *Handler) guarded(cmd command) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		h.runCommand(ctx, b, update, cmd)
	}
}

func (h *Handler) runCommand(ctx context.Context, b Bot, update *models.Update, cmd command) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if !h.users.IsAuthorized(msg.From.ID) {
		h.reply(ctx, b, msg.Chat.ID, "❌ Unauthorized")
		return
	}
	h.reply(ctx, b, msg.Chat.ID, cmd(ctx, msg, lo.Drop(strings.Fields(msg.Text), 1)))
}

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.start(ctx, b, update)
}

func (h *Handler) start(ctx context.Context, b Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	user, err := h.users.Register(msg.From.ID, msg.From.Username)
	if err != nil {
		if errors.Is(err, errors.ErrUnauthorized) {
			h.reply(ctx, b, msg.Chat.ID, "❌ You are not authorized to use this bot.")
			return
		}
		h.logger.Error("Failed to register user", "error", err, "user_id", msg.From.ID)
		h.reply(ctx, b, msg.Chat.ID, "❌ Something went wrong, please try again.")
		return
	}

	greeting := "👋 Welcome to Product Scout!"
	if user.IsAdmin {
		greeting += "\nYou are the admin of this bot."
	}
	h.reply(ctx, b, msg.Chat.ID, greeting+"\n\nI collect wholesale product listings from Telegram channels.\n\n"+helpText)
}

func (h *Handler) help(context.Context, *models.Message, []string) string {
	return helpText
}

func (h *Handler) search(ctx context.Context, _ *models.Message, args []string) string {
	query := strings.Join(args, " ")
	if query == "" {
		return "Usage: /search <query>\nExample: /search bluetooth earbuds"
	}

	products, err := h.products.Search(ctx, query, filter.Facets{})
	if err != nil {
		h.logger.Error("Search failed", "query", query, "error", err)
		return fmt.Sprintf("❌ Search failed: %v", err)
	}
	if len(products) == 0 {
		return fmt.Sprintf("🔍 No products found for %q", query)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "🔍 Found %d products for %q:\n\n", len(products), query)
	for i, p := range lo.Slice(products, 0, searchResultLimit) {
		fmt.Fprintf(&text, "%d. %s\n   💰 %s · MOQ %d\n   📢 %s\n", i+1, p.Name, money.FormatINR(p.Price), p.MinQuantity, p.Channel)
		if p.Contact.WhatsApp != "" {
			fmt.Fprintf(&text, "   📞 %s\n", p.Contact.WhatsApp)
		}
		text.WriteString("\n")
	}
	if rest := len(products) - searchResultLimit; rest > 0 {
		fmt.Fprintf(&text, "…and %d more", rest)
	}
	return strings.TrimRight(text.String(), "\n")
}

func (h *Handler) profit(_ context.Context, _ *models.Message, args []string) string {
	const usage = "Usage: /profit <price> [shipping] [fee] [marketing]\nExample: /profit 899 50 45 30"
	if len(args) == 0 || len(args) > 4 {
		return usage
	}

	values := make([]float64, 4)
	for i, arg := range args {
		v, err := money.ParseAmount(arg)
		if err != nil {
			return fmt.Sprintf("❌ Invalid amount: %s\n\n%s", arg, usage)
		}
		values[i] = v
	}

	estimate, err := profitService.Calculate(values[0], profitDomain.Costs{
		Shipping:    values[1],
		PlatformFee: values[2],
		Marketing:   values[3],
	})
	if err != nil {
		return fmt.Sprintf("❌ %v", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "💹 Profit estimate\n\nPrice: %s\nCosts: %s\nProfit: %s\nMargin: %.1f%% (%s)\n",
		money.FormatINR(estimate.Price), money.FormatINR(estimate.TotalCosts), money.FormatINR(estimate.Profit), estimate.Margin, estimate.Rating)
	for _, s := range estimate.Scenarios {
		fmt.Fprintf(&text, "\n%s: %s (%.1f%%)", s.Name, money.FormatINR(s.Profit), s.Margin)
	}
	return text.String()
}

func statusIcon(status channelDomain.Status) string {
	switch status {
	case channelDomain.StatusActive:
		return "✅"
	case channelDomain.StatusPaused:
		return "⏸️"
	default:
		return "💤"
	}
}

func channelLabel(c *channelDomain.Channel) string {
	if c.Username != "" {
		return fmt.Sprintf("%s (@%s)", c.Name, c.Username)
	}
	return c.Name
}

func (h *Handler) listChannels(context.Context, *models.Message, []string) string {
	channels, err := h.channels.List(channelDomain.Query{})
	if err != nil {
		return fmt.Sprintf("❌ Failed to list channels: %v", err)
	}
	if len(channels) == 0 {
		return "📭 No channels yet.\nAdd the bot to a channel, then save it from the sync page."
	}

	var text strings.Builder
	text.WriteString("📋 Channels:\n\n")
	for i, ch := range channels {
		fmt.Fprintf(&text, "%s %d. %s\n   ID: %s\n   Products: %d · Filters: %d\n\n",
			statusIcon(ch.Status), i+1, channelLabel(ch), ch.ID, ch.Stats.ProductsFound, len(ch.Filters))
	}
	return strings.TrimRight(text.String(), "\n")
}

func (h *Handler) toggle(_ context.Context, _ *models.Message, args []string) string {
	if len(args) < 1 {
		return "Usage: /toggle <channel_id>"
	}

	channel, err := h.channels.Toggle(args[0])
	switch {
	case errors.IsNotFound(err):
		return fmt.Sprintf("❌ Channel not found: %s", args[0])
	case err != nil:
		return fmt.Sprintf("❌ Failed to toggle channel: %v", err)
	case channel.Status == channelDomain.StatusPaused:
		return fmt.Sprintf("⏸️ %s paused", channelLabel(channel))
	default:
		return fmt.Sprintf("✅ %s resumed", channelLabel(channel))
	}
}

func (h *Handler) addFilter(_ context.Context, _ *models.Message, args []string) string {
	if len(args) < 2 {
		return "Usage: /addfilter <channel_id> <keyword1,keyword2,...> [exclude]\nExample: /addfilter -1001234567890 wholesale,bulk"
	}

	filterType := channelDomain.FilterTypeKeywords
	if len(args) > 2 && strings.EqualFold(args[2], "exclude") {
		filterType = channelDomain.FilterTypeExcludeKeywords
	}
	keywords := strings.Split(args[1], ",")

	channel, err := h.channels.AddFilter(args[0], filterType, keywords)
	switch {
	case errors.IsNotFound(err):
		return fmt.Sprintf("❌ Channel not found: %s", args[0])
	case err != nil:
		return fmt.Sprintf("❌ Failed to save filter: %v", err)
	}
	added := channel.Filters[len(channel.Filters)-1]
	return fmt.Sprintf("✅ Filter %d added to %s\nType: %s\nKeywords: %s",
		len(channel.Filters), channelLabel(channel), added.Type, strings.Join(added.Keywords, ", "))
}

func (h *Handler) removeFilter(_ context.Context, _ *models.Message, args []string) string {
	if len(args) < 2 {
		return "Usage: /removefilter <channel_id> <filter_index>"
	}

	index, err := strconv.Atoi(args[1])
	if err != nil || index < 1 {
		return "❌ Invalid filter index"
	}

	channel, err := h.channels.RemoveFilter(args[0], index)
	switch {
	case errors.IsNotFound(err):
		return fmt.Sprintf("❌ Channel not found: %s", args[0])
	case errors.Is(err, errors.ErrInvalidInput):
		return "❌ Filter index out of range"
	case err != nil:
		return fmt.Sprintf("❌ Failed to remove filter: %v", err)
	}
	return fmt.Sprintf("✅ Filter %d removed from %s", index, channelLabel(channel))
}

func (h *Handler) feedLink(channelID string) string {
	return strings.TrimRight(h.cfg.APIBaseURL, "/") + "/rss/" + channelID
}

func (h *Handler) rssLink(_ context.Context, _ *models.Message, args []string) string {
	if len(args) == 0 {
		channels, err := h.channels.List(channelDomain.Query{})
		if err != nil {
			return fmt.Sprintf("❌ Failed to get channels: %v", err)
		}
		if len(channels) == 0 {
			return "📭 No channels yet."
		}

		var text strings.Builder
		text.WriteString("🔗 Product Feed Links:\n\n")
		for _, ch := range channels {
			fmt.Fprintf(&text, "%s:\n%s\n\n", channelLabel(ch), h.feedLink(ch.ID))
		}
		return strings.TrimRight(text.String(), "\n")
	}

	channel, err := h.channels.GetChannel(args[0])
	if err != nil {
		return fmt.Sprintf("❌ Channel not found: %s", args[0])
	}
	return fmt.Sprintf("🔗 Product Feed for %s:\n%s", channelLabel(channel), h.feedLink(channel.ID))
}

func (h *Handler) status(ctx context.Context, _ *models.Message, _ []string) string {
	channels, err := h.channels.List(channelDomain.Query{})
	if err != nil {
		return fmt.Sprintf("❌ Failed to get status: %v", err)
	}
	overview, err := h.analytics.Overview(ctx, analyticsDomain.RangeAll)
	if err != nil {
		return fmt.Sprintf("❌ Failed to get status: %v", err)
	}

	latest := "None yet"
	if len(overview.Recent) > 0 {
		latest = overview.Recent[0].Name
	}

	return fmt.Sprintf(`📊 Bot Status:

Channels: %d (Active: %d)
Products: %d
Average Price: %s
Latest Product: %s
Update Interval: %d seconds
HTTP Port: %s
Storage: %s`,
		len(channels), overview.ActiveChannels, overview.TotalProducts, money.FormatINR(overview.AveragePrice),
		latest, h.cfg.UpdateInterval, h.cfg.HTTPPort, h.cfg.StoragePath)
}

package telegram

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/go-cmp/cmp"
	analyticsDomain "github.com/reshetovitsme/product-scout/internal/modules/analytics/domain"
	channelDomain "github.com/reshetovitsme/product-scout/internal/modules/channel/domain"
	syncDomain "github.com/reshetovitsme/product-scout/internal/modules/channelsync/domain"
	ingestDomain "github.com/reshetovitsme/product-scout/internal/modules/ingest/domain"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/modules/product/filter"
	userDomain "github.com/reshetovitsme/product-scout/internal/modules/user/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/config"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/reshetovitsme/product-scout/internal/shared/logging"
	"github.com/samber/lo"
)

type fakeBot struct {
	sent []string
}

func (f *fakeBot) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.sent = append(f.sent, params.Text)
	return &models.Message{}, nil
}

func (f *fakeBot) GetChatMemberCount(context.Context, *bot.GetChatMemberCountParams) (int, error) {
	return 42, nil
}

func (f *fakeBot) last() string {
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

type fakeUsers struct {
	allowed []int64
}

func (f fakeUsers) IsAuthorized(userID int64) bool {
	return len(f.allowed) == 0 || slices.Contains(f.allowed, userID)
}

func (f fakeUsers) Register(userID int64, username string) (*userDomain.User, error) {
	if !f.IsAuthorized(userID) {
		return nil, errors.ErrUnauthorized
	}
	return &userDomain.User{ID: userID, Username: username, IsAdmin: true}, nil
}

type fakeChannels map[string]*channelDomain.Channel

func (f fakeChannels) List(channelDomain.Query) ([]*channelDomain.Channel, error) {
	ids := lo.Keys(f)
	slices.Sort(ids)
	return lo.Map(ids, func(id string, _ int) *channelDomain.Channel { return f[id] }), nil
}

func (f fakeChannels) GetChannel(id string) (*channelDomain.Channel, error) {
	if c, ok := f[id]; ok {
		return c, nil
	}
	return nil, errors.ErrChannelNotFound
}

func (f fakeChannels) Toggle(id string) (*channelDomain.Channel, error) {
	c, err := f.GetChannel(id)
	if err != nil {
		return nil, err
	}
	c.Status = lo.Ternary(c.Status == channelDomain.StatusActive, channelDomain.StatusPaused, channelDomain.StatusActive)
	return c, nil
}

func (f fakeChannels) AddFilter(id string, filterType channelDomain.FilterType, keywords []string) (*channelDomain.Channel, error) {
	c, err := f.GetChannel(id)
	if err != nil {
		return nil, err
	}
	c.Filters = append(c.Filters, channelDomain.Filter{Type: filterType, Keywords: keywords, Enabled: true})
	return c, nil
}

func (f fakeChannels) RemoveFilter(id string, index int) (*channelDomain.Channel, error) {
	c, err := f.GetChannel(id)
	if err != nil {
		return nil, err
	}
	if index > len(c.Filters) {
		return nil, fmt.Errorf("index %d: %w", index, errors.ErrInvalidInput)
	}
	c.Filters = slices.Delete(c.Filters, index-1, index)
	return c, nil
}

type fakeProducts []productDomain.Product

func (f fakeProducts) Search(_ context.Context, query string, facets filter.Facets) ([]productDomain.Product, error) {
	return filter.Apply(filter.Search(f, query), facets), nil
}

type fakeAnalytics struct{}

func (fakeAnalytics) Overview(context.Context, analyticsDomain.Range) (*analyticsDomain.Overview, error) {
	return &analyticsDomain.Overview{TotalProducts: 8, ActiveChannels: 1, AveragePrice: 1424}, nil
}

type fakeIngester struct {
	posts      []ingestDomain.Post
	discovered []syncDomain.JoinedChannel
}

func (f *fakeIngester) Ingest(_ context.Context, post ingestDomain.Post) (ingestDomain.Result, error) {
	f.posts = append(f.posts, post)
	return ingestDomain.Result{Outcome: ingestDomain.OutcomeStored}, nil
}

func (f *fakeIngester) Discover(joined syncDomain.JoinedChannel) {
	f.discovered = append(f.discovered, joined)
}

func newTestHandler(allowed ...int64) (*Handler, *fakeIngester) {
	cfg := &config.Config{APIBaseURL: "http://scout.local/", HTTPPort: "8080", UpdateInterval: 60, StoragePath: "./data"}
	channels := fakeChannels{
		"-1001": {ID: "-1001", Name: "TechWholesale", Username: "techwholesale", Status: channelDomain.StatusActive},
	}
	ingester := &fakeIngester{}
	h := New(cfg, fakeUsers{allowed: allowed}, channels, fakeProducts(productDomain.SampleProducts()), fakeAnalytics{}, ingester, logging.Discard())
	return h, ingester
}

func commandUpdate(userID int64, text string) *models.Update {
	return &models.Update{Message: &models.Message{
		ID:   1,
		Chat: models.Chat{ID: 500, Type: models.ChatTypePrivate},
		From: &models.User{ID: userID, Username: "buyer"},
		Text: text,
	}}
}

func TestUnauthorizedCommand(t *testing.T) {
	h, _ := newTestHandler(7)
	b := &fakeBot{}

	h.runCommand(context.Background(), b, commandUpdate(8, "/channels"), h.listChannels)
	if b.last() != "❌ Unauthorized" {
		t.Errorf("reply = %q", b.last())
	}

	h.start(context.Background(), b, commandUpdate(8, "/start"))
	if b.last() != "❌ You are not authorized to use this bot." {
		t.Errorf("start reply = %q", b.last())
	}
}

func TestStart(t *testing.T) {
	h, _ := newTestHandler()
	b := &fakeBot{}

	h.start(context.Background(), b, commandUpdate(1, "/start"))
	if !strings.Contains(b.last(), "Welcome to Product Scout") || !strings.Contains(b.last(), "admin") {
		t.Errorf("start reply = %q", b.last())
	}
}

func TestSearchCommand(t *testing.T) {
	h, _ := newTestHandler()
	b := &fakeBot{}

	h.runCommand(context.Background(), b, commandUpdate(1, "/search earbuds"), h.search)
	reply := b.last()
	if !strings.Contains(reply, "Wireless Bluetooth Earbuds") || !strings.Contains(reply, "MOQ 25") || !strings.Contains(reply, "https://wa.me/919876543211") {
		t.Errorf("search reply = %q", reply)
	}

	h.runCommand(context.Background(), b, commandUpdate(1, "/search e"), h.search)
	if !strings.Contains(b.last(), "…and 3 more") {
		t.Errorf("long search reply = %q", b.last())
	}

	h.runCommand(context.Background(), b, commandUpdate(1, "/search"), h.search)
	if !strings.HasPrefix(b.last(), "Usage: /search") {
		t.Errorf("usage reply = %q", b.last())
	}
}

func TestProfitCommand(t *testing.T) {
	h, _ := newTestHandler()
	b := &fakeBot{}

	h.runCommand(context.Background(), b, commandUpdate(1, "/profit 1000 50 100 50"), h.profit)
	for _, want := range []string{"Profit: ₹800", "Margin: 80.0% (excellent)", "Conservative: ₹640 (64.0%)"} {
		if !strings.Contains(b.last(), want) {
			t.Errorf("reply %q missing %q", b.last(), want)
		}
	}

	h.runCommand(context.Background(), b, commandUpdate(1, "/profit abc"), h.profit)
	if !strings.HasPrefix(b.last(), "❌ Invalid amount: abc") {
		t.Errorf("invalid reply = %q", b.last())
	}
}

func TestChannelCommands(t *testing.T) {
	h, _ := newTestHandler()
	b := &fakeBot{}
	ctx := context.Background()

	h.runCommand(ctx, b, commandUpdate(1, "/addfilter -1001 wholesale,bulk"), h.addFilter)
	if !strings.HasPrefix(b.last(), "✅ Filter 1 added to TechWholesale (@techwholesale)") {
		t.Errorf("addfilter reply = %q", b.last())
	}
	h.runCommand(ctx, b, commandUpdate(1, "/removefilter -1001 3"), h.removeFilter)
	if b.last() != "❌ Filter index out of range" {
		t.Errorf("removefilter reply = %q", b.last())
	}
	h.runCommand(ctx, b, commandUpdate(1, "/toggle -1001"), h.toggle)
	if !strings.HasPrefix(b.last(), "⏸️") {
		t.Errorf("toggle reply = %q", b.last())
	}
	h.runCommand(ctx, b, commandUpdate(1, "/toggle -404"), h.toggle)
	if b.last() != "❌ Channel not found: -404" {
		t.Errorf("toggle unknown reply = %q", b.last())
	}
	h.runCommand(ctx, b, commandUpdate(1, "/rsslink -1001"), h.rssLink)
	if !strings.HasSuffix(b.last(), "http://scout.local/rss/-1001") {
		t.Errorf("rsslink reply = %q", b.last())
	}
	h.runCommand(ctx, b, commandUpdate(1, "/status"), h.status)
	if !strings.Contains(b.last(), "Channels: 1 (Active: 1)") || !strings.Contains(b.last(), "Products: 8") {
		t.Errorf("status reply = %q", b.last())
	}
}

func TestChannelPostIsIngested(t *testing.T) {
	h, ingester := newTestHandler()
	b := &fakeBot{}

	update := &models.Update{ChannelPost: &models.Message{
		ID:              77,
		Date:            1751536800,
		Chat:            models.Chat{ID: -1001, Type: models.ChatTypeChannel, Title: "TechWholesale", Username: "techwholesale"},
		Caption:         "USB Hub ₹350",
		AuthorSignature: "Ravi",
		Photo:           []models.PhotoSize{{FileID: "small"}, {FileID: "large"}},
	}}
	h.handleUpdate(context.Background(), b, update)

	if len(ingester.posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(ingester.posts))
	}
	post := ingester.posts[0]
	if post.ChannelID != "-1001" || post.MessageID != 77 || post.Text != "USB Hub ₹350" || post.Author != "Ravi" {
		t.Errorf("post = %+v", post)
	}
	if post.Link() != "https://t.me/techwholesale/77" {
		t.Errorf("link = %q", post.Link())
	}
	if len(post.Media) != 1 || post.Media[0].FileID != "large" {
		t.Errorf("media = %+v", post.Media)
	}

	want := []syncDomain.JoinedChannel{{
		ChannelID:   "@techwholesale",
		ChannelName: "TechWholesale",
		TelegramID:  "-1001",
		Members:     42,
		JoinedAt:    post.Date,
		Tags:        []string{},
	}}
	if diff := cmp.Diff(want, ingester.discovered); diff != "" {
		t.Errorf("discovered mismatch (-want +got):\n%s", diff)
	}
	if len(b.sent) != 0 {
		t.Errorf("channel posts must not be answered, sent %v", b.sent)
	}
}

func TestMembershipUpdates(t *testing.T) {
	h, ingester := newTestHandler()
	b := &fakeBot{}
	chat := models.Chat{ID: -1002, Type: models.ChatTypeChannel, Title: "Private Deals"}

	h.handleUpdate(context.Background(), b, &models.Update{MyChatMember: &models.ChatMemberUpdated{
		Chat:          chat,
		Date:          1751536800,
		NewChatMember: models.ChatMember{Type: models.ChatMemberTypeAdministrator},
	}})
	h.handleUpdate(context.Background(), b, &models.Update{MyChatMember: &models.ChatMemberUpdated{
		Chat:          chat,
		NewChatMember: models.ChatMember{Type: models.ChatMemberTypeLeft},
	}})

	if len(ingester.discovered) != 1 {
		t.Fatalf("discovered = %d, want 1", len(ingester.discovered))
	}
	if got := ingester.discovered[0]; got.ChannelID != "" || got.TelegramID != "-1002" {
		t.Errorf("joined = %+v", got)
	}
}

func TestCommandMatching(t *testing.T) {
	tests := []struct {
		text    string
		command string
		want    bool
	}{
		{"/channels", "channels", true},
		{"/channels@ScoutBot", "channels", true},
		{"/search@ScoutBot earbuds", "search", true},
		{"/Profit 1000 50", "profit", true},
		{"/profit\n1000", "profit", true},
		{"/profitx 1000", "profit", false},
		{"/statuses", "status", false},
		{"please /search earbuds", "search", false},
		{"/", "help", false},
		{"", "help", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := matchCommand(tt.command)(commandUpdate(1, tt.text)); got != tt.want {
				t.Errorf("matchCommand(%q)(%q) = %v, want %v", tt.command, tt.text, got, tt.want)
			}
		})
	}

	if matchCommand("start")(&models.Update{ChannelPost: &models.Message{Text: "/start"}}) {
		t.Error("channel posts are not commands")
	}
}

func TestCommandArgsIgnoreBotSuffix(t *testing.T) {
	h, _ := newTestHandler(1)
	b := &fakeBot{}

	h.runCommand(context.Background(), b, commandUpdate(1, "/profit@ScoutBot 1000 50 100 50"), h.profit)
	if !strings.Contains(b.last(), "Profit: ₹800") {
		t.Errorf("reply = %q", b.last())
	}
}

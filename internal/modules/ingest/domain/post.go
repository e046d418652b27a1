package domain

import (
	"strconv"
	"time"

	alertDomain "github.com/reshetovitsme/product-scout/internal/modules/alerts/domain"
	messageDomain "github.com/reshetovitsme/product-scout/internal/modules/message/domain"
	productDomain "github.com/reshetovitsme/product-scout/internal/modules/product/domain"
)

// Post is a channel post as delivered by the bot.
type Post struct {
	ChannelID    string
	ChannelTitle string
	Username     string
	MessageID    int64
	Text         string
	Date         time.Time
	Author       string
	Media        []messageDomain.Media
}

// Link is the public t.me link of the post, or "" for channels without a username.
func (p *Post) Link() string {
	if p.Username == "" {
		return ""
	}
	return "https://t.me/" + p.Username + "/" + strconv.FormatInt(p.MessageID, 10)
}

// ProductID is the catalog id of the listing read from the post.
func (p *Post) ProductID() string {
	return p.ChannelID + "-" + strconv.FormatInt(p.MessageID, 10)
}

// Result reports what ingesting a post produced.
type Result struct {
	Outcome Outcome
	Message *messageDomain.Message
	Product *productDomain.Product
	Alerts  []*alertDomain.Alert
	// Tags are the names of the tag rules that matched the product.
	Tags []string
}

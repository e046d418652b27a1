package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/reshetovitsme/product-scout/internal/modules/product/domain"
	"github.com/reshetovitsme/product-scout/internal/shared/database"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const productColumns = `id, name, price, min_quantity, channel, channel_id, phone, whatsapp, posted_at, category, description, image, tags`

// SQLStorage implements Repository on top of sqlx (SQLite or PostgreSQL).
// Every inserted row takes the next value of seq, the sync cursor.
type SQLStorage struct {
	db *sqlx.DB

	// serializes seq assignment
	mu sync.Mutex
}

func NewSQLStorage(db *sqlx.DB) *SQLStorage {
	return &SQLStorage{db: db}
}

type productRow struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Price       float64 `db:"price"`
	MinQuantity int     `db:"min_quantity"`
	Channel     string  `db:"channel"`
	ChannelID   string  `db:"channel_id"`
	Phone       string  `db:"phone"`
	WhatsApp    string  `db:"whatsapp"`
	PostedAt    string  `db:"posted_at"`
	Category    string  `db:"category"`
	Description string  `db:"description"`
	Image       string  `db:"image"`
	Tags        string  `db:"tags"`
}

type sequencedRow struct {
	productRow
	Seq int64 `db:"seq"`
}

func toRow(p *domain.Product) productRow {
	tags, _ := json.Marshal(lo.Uniq(p.Tags))
	return productRow{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		MinQuantity: p.MinQuantity,
		Channel:     p.Channel,
		ChannelID:   p.ChannelID,
		Phone:       p.Contact.Phone,
		WhatsApp:    p.Contact.WhatsApp,
		PostedAt:    database.FormatTime(p.PostedAt),
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		Tags:        string(tags),
	}
}

func (r productRow) toDomain() domain.Product {
	var tags []string
	_ = json.Unmarshal([]byte(r.Tags), &tags)
	if len(tags) == 0 {
		tags = nil
	}
	return domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		MinQuantity: r.MinQuantity,
		Channel:     r.Channel,
		ChannelID:   r.ChannelID,
		Contact:     domain.Contact{Phone: r.Phone, WhatsApp: r.WhatsApp},
		PostedAt:    database.ParseTime(r.PostedAt),
		Category:    r.Category,
		Description: r.Description,
		Image:       r.Image,
		Tags:        tags,
	}
}

func (s *SQLStorage) Upsert(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		return oops.Wrapf(errors.ErrInvalidInput, "product id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO products (`+productColumns+`, seq)
		VALUES (:id, :name, :price, :min_quantity, :channel, :channel_id, :phone, :whatsapp, :posted_at, :category, :description, :image, :tags,
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM products))
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			min_quantity = excluded.min_quantity,
			channel = excluded.channel,
			channel_id = excluded.channel_id,
			phone = excluded.phone,
			whatsapp = excluded.whatsapp,
			posted_at = excluded.posted_at,
			category = excluded.category,
			description = excluded.description,
			image = excluded.image,
			tags = excluded.tags`, toRow(product))
	if err != nil {
		return oops.With("product_id", product.ID, "context", "failed to upsert product").Wrap(err)
	}
	return nil
}

func (s *SQLStorage) Get(ctx context.Context, id string) (*domain.Product, error) {
	var row productRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(`SELECT `+productColumns+` FROM products WHERE id = ?`), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, oops.With("product_id", id).Wrap(errors.ErrNotFound)
		}
		return nil, oops.With("product_id", id, "context", "failed to get product").Wrap(err)
	}
	product := row.toDomain()
	return &product, nil
}

func (s *SQLStorage) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	pattern := "%" + escapeLike(strings.ToLower(strings.TrimSpace(query))) + "%"
	q := `SELECT ` + productColumns + ` FROM products
		WHERE LOWER(name) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\' OR LOWER(channel) LIKE ? ESCAPE '\'
		ORDER BY posted_at DESC, id`
	args := []any{pattern, pattern, pattern}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(q), args...); err != nil {
		return nil, oops.With("query", query, "context", "failed to search products").Wrap(err)
	}
	return toDomainList(rows), nil
}

func (s *SQLStorage) List(ctx context.Context, opts ListOptions) ([]domain.Product, error) {
	var (
		where []string
		args  []any
	)
	if opts.ChannelID != "" {
		where = append(where, "channel_id = ?")
		args = append(args, opts.ChannelID)
	}

	q := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY posted_at DESC, id`
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
	}

	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(q), args...); err != nil {
		return nil, oops.With("channel_id", opts.ChannelID, "context", "failed to list products").Wrap(err)
	}
	return toDomainList(rows), nil
}

func (s *SQLStorage) Added(ctx context.Context, channelID string, cursor int64) ([]domain.Product, int64, error) {
	var rows []sequencedRow
	q := `SELECT ` + productColumns + `, seq FROM products WHERE channel_id = ? AND seq > ? ORDER BY seq DESC`
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(q), channelID, cursor); err != nil {
		return nil, cursor, oops.With("channel_id", channelID, "cursor", cursor, "context", "failed to list added products").Wrap(err)
	}
	if len(rows) > 0 {
		cursor = rows[0].Seq
	}
	return lo.Map(rows, func(r sequencedRow, _ int) domain.Product { return r.toDomain() }), cursor, nil
}

func (s *SQLStorage) UpdateTags(ctx context.Context, id string, tags []string) error {
	encoded, err := json.Marshal(lo.Uniq(tags))
	if err != nil {
		return oops.With("product_id", id).Wrap(err)
	}
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`UPDATE products SET tags = ? WHERE id = ?`), string(encoded), id)
	if err != nil {
		return oops.With("product_id", id, "context", "failed to update tags").Wrap(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return oops.With("product_id", id).Wrap(errors.ErrNotFound)
	}
	return nil
}

func (s *SQLStorage) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM products`); err != nil {
		return 0, oops.With("context", "failed to count products").Wrap(err)
	}
	return n, nil
}

func toDomainList(rows []productRow) []domain.Product {
	return lo.Map(rows, func(r productRow, _ int) domain.Product { return r.toDomain() })
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

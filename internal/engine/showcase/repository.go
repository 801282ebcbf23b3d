package showcase

import (
	"context"
	"database/sql"
	"fmt"

	"nexus/internal/engine/reorder"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// nextOrder is the order value that appends to the end of c.
func (r *Repository) nextOrder(ctx context.Context, c reorder.Collection) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COALESCE(MAX(sort_order) + 1, 0) FROM %s`, c.Table())).Scan(&next)
	return next, err
}

func (r *Repository) CreatePortfolioItem(ctx context.Context, item *PortfolioItem) error {
	order, err := r.nextOrder(ctx, reorder.Portfolio)
	if err != nil {
		return err
	}
	item.Order = order
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO portfolio_items (id, title, description, image_url, category, project_url, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, item.ID, item.Title, item.Description, item.ImageURL, item.Category, item.ProjectURL, item.Order, item.CreatedAt)
	return err
}

func (r *Repository) ListPortfolio(ctx context.Context) ([]*PortfolioItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, image_url, category, project_url, sort_order, created_at
		FROM portfolio_items ORDER BY sort_order ASC, created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*PortfolioItem{}
	for rows.Next() {
		i := &PortfolioItem{}
		if err := rows.Scan(&i.ID, &i.Title, &i.Description, &i.ImageURL, &i.Category, &i.ProjectURL, &i.Order, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *Repository) CreateTestimonial(ctx context.Context, t *Testimonial) error {
	order, err := r.nextOrder(ctx, reorder.Testimonials)
	if err != nil {
		return err
	}
	t.Order = order
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO testimonials (id, author_name, author_company, author_role, quote, rating, avatar_url, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, t.ID, t.AuthorName, t.AuthorCompany, t.AuthorRole, t.Quote, t.Rating, t.AvatarURL, t.Order, t.CreatedAt)
	return err
}

func (r *Repository) ListTestimonials(ctx context.Context) ([]*Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, author_name, author_company, author_role, quote, rating, avatar_url, sort_order, created_at
		FROM testimonials ORDER BY sort_order ASC, created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	testimonials := []*Testimonial{}
	for rows.Next() {
		t := &Testimonial{}
		if err := rows.Scan(&t.ID, &t.AuthorName, &t.AuthorCompany, &t.AuthorRole, &t.Quote, &t.Rating, &t.AvatarURL, &t.Order, &t.CreatedAt); err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

func (r *Repository) CreateClientLogo(ctx context.Context, l *ClientLogo) error {
	order, err := r.nextOrder(ctx, reorder.ClientLogos)
	if err != nil {
		return err
	}
	l.Order = order
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO client_logos (id, name, logo_url, website_url, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, l.ID, l.Name, l.LogoURL, l.WebsiteURL, l.Order, l.CreatedAt)
	return err
}

func (r *Repository) ListClientLogos(ctx context.Context) ([]*ClientLogo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, logo_url, website_url, sort_order, created_at
		FROM client_logos ORDER BY sort_order ASC, created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logos := []*ClientLogo{}
	for rows.Next() {
		l := &ClientLogo{}
		if err := rows.Scan(&l.ID, &l.Name, &l.LogoURL, &l.WebsiteURL, &l.Order, &l.CreatedAt); err != nil {
			return nil, err
		}
		logos = append(logos, l)
	}
	return logos, rows.Err()
}

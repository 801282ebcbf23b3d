package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"nexus/internal/platform/models"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetGeneral returns zero-value settings when the row has never been saved.
func (r *SettingsRepository) GetGeneral(ctx context.Context) (*models.GeneralSettings, error) {
	s := &models.GeneralSettings{}
	err := r.db.QueryRowContext(ctx, `
		SELECT company_name, tagline, email, phone, address, website, updated_at
		FROM general_settings WHERE id = $1
	`, models.GeneralSettingsID).Scan(&s.CompanyName, &s.Tagline, &s.Email, &s.Phone, &s.Address, &s.Website, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return &models.GeneralSettings{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SettingsRepository) SaveGeneral(ctx context.Context, s *models.GeneralSettings) error {
	s.UpdatedAt = time.Now().Unix()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO general_settings (id, company_name, tagline, email, phone, address, website, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			company_name = excluded.company_name,
			tagline = excluded.tagline,
			email = excluded.email,
			phone = excluded.phone,
			address = excluded.address,
			website = excluded.website,
			updated_at = excluded.updated_at
	`, models.GeneralSettingsID, s.CompanyName, s.Tagline, s.Email, s.Phone, s.Address, s.Website, s.UpdatedAt)
	return err
}

func (r *SettingsRepository) ListSocial(ctx context.Context) ([]models.SocialLink, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, platform, url, sort_order FROM social_links ORDER BY sort_order ASC, platform ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []models.SocialLink{}
	for rows.Next() {
		var l models.SocialLink
		var platform string
		if err := rows.Scan(&l.ID, &platform, &l.URL, &l.Order); err != nil {
			return nil, err
		}
		p, err := models.ParseSocialPlatform(platform)
		if err != nil {
			// Rows written before the platform list shrank are skipped.
			continue
		}
		l.Platform = p
		links = append(links, l)
	}
	return links, rows.Err()
}

// ReplaceSocial swaps the whole social link set in one transaction.
func (r *SettingsRepository) ReplaceSocial(ctx context.Context, links []models.SocialLink) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM social_links`); err != nil {
		return err
	}
	for i := range links {
		if links[i].ID == "" {
			links[i].ID = uuid.NewString()
		}
		links[i].Order = i
		if _, err := tx.ExecContext(ctx, `INSERT INTO social_links (id, platform, url, sort_order) VALUES ($1, $2, $3, $4)`,
			links[i].ID, links[i].Platform.String(), links[i].URL, links[i].Order); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Site loads the general settings and social links together.
func (r *SettingsRepository) Site(ctx context.Context) (*models.SiteSettings, error) {
	general, err := r.GetGeneral(ctx)
	if err != nil {
		return nil, err
	}
	social, err := r.ListSocial(ctx)
	if err != nil {
		return nil, err
	}
	return &models.SiteSettings{General: *general, Social: social}, nil
}

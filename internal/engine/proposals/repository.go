package proposals

import (
	"context"
	"database/sql"
)

const proposalColumns = `id, client_id, title, content, status, ai_generated, share_token, created_at, updated_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, p *Proposal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO proposals (`+proposalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.ClientID, p.Title, p.Content, p.Status, p.AIGenerated, p.ShareToken, p.CreatedAt, p.UpdatedAt)
	return err
}

// GetByID returns nil, nil when the proposal does not exist.
func (r *Repository) GetByID(ctx context.Context, id string) (*Proposal, error) {
	return scanOne(r.db.QueryRowContext(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE id = $1`, id))
}

// GetByShareToken returns nil, nil when no proposal carries the token.
func (r *Repository) GetByShareToken(ctx context.Context, token string) (*Proposal, error) {
	return scanOne(r.db.QueryRowContext(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE share_token = $1`, token))
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Proposal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+proposalColumns+` FROM proposals
		ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	proposals := []*Proposal{}
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, err
		}
		proposals = append(proposals, p)
	}
	return proposals, rows.Err()
}

func (r *Repository) Update(ctx context.Context, p *Proposal) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE proposals SET client_id = $1, title = $2, content = $3, status = $4, updated_at = $5
		WHERE id = $6
	`, p.ClientID, p.Title, p.Content, p.Status, p.UpdatedAt, p.ID)
	return err
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM proposals WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *Repository) ShareToken(ctx context.Context, id string) (string, bool, error) {
	var token sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT share_token FROM proposals WHERE id = $1`, id).Scan(&token)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return token.String, true, nil
}

func (r *Repository) TokenExists(ctx context.Context, token string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM proposals WHERE share_token = $1`, token).Scan(&n)
	return n > 0, err
}

func (r *Repository) SetShareToken(ctx context.Context, id, token string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE proposals SET share_token = $1 WHERE id = $2 AND (share_token IS NULL OR share_token = '')`, token, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// ClientExists reports whether the referenced client row is present.
func (r *Repository) ClientExists(ctx context.Context, id string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients WHERE id = $1`, id).Scan(&n)
	return n > 0, err
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOne(row scanner) (*Proposal, error) {
	p, err := scan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func scan(s scanner) (*Proposal, error) {
	var p Proposal
	var clientID, shareToken sql.NullString

	if err := s.Scan(&p.ID, &clientID, &p.Title, &p.Content, &p.Status, &p.AIGenerated, &shareToken, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if clientID.Valid {
		p.ClientID = &clientID.String
	}
	if shareToken.Valid {
		p.ShareToken = &shareToken.String
	}
	return &p, nil
}

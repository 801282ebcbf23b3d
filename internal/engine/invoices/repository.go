package invoices

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

const invoiceColumns = `id, client_id, project_id, amount, advance_payment, tax_percentage, custom_tax_name,
	status, issued_date, due_date, paid_date, notes, share_token, created_at, updated_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, inv *Invoice) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, inv.ID, inv.ClientID, inv.ProjectID, inv.Amount, inv.AdvancePayment, inv.TaxPercentage, inv.CustomTaxName,
		inv.Status, inv.IssuedDate, inv.DueDate, inv.PaidDate, inv.Notes, inv.ShareToken, inv.CreatedAt, inv.UpdatedAt)
	return err
}

// GetByID returns nil, nil when the invoice does not exist.
func (r *Repository) GetByID(ctx context.Context, id string) (*Invoice, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
	return scanOne(row)
}

// GetByShareToken returns nil, nil when no invoice carries the token.
func (r *Repository) GetByShareToken(ctx context.Context, token string) (*Invoice, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE share_token = $1`, token)
	return scanOne(row)
}

func (r *Repository) List(ctx context.Context, f Filter) ([]*Invoice, error) {
	var where []string
	var args []interface{}

	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.ClientID != "" {
		args = append(args, f.ClientID)
		where = append(where, fmt.Sprintf("client_id = $%d", len(args)))
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, f.Limit, f.Offset)
	query += fmt.Sprintf(" ORDER BY issued_date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []*Invoice{}
	for rows.Next() {
		inv, err := scan(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// Update writes every mutable column. The share token is owned by the share
// issuer and is left alone.
func (r *Repository) Update(ctx context.Context, inv *Invoice) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE invoices SET client_id = $1, project_id = $2, amount = $3, advance_payment = $4,
			tax_percentage = $5, custom_tax_name = $6, status = $7, issued_date = $8, due_date = $9,
			paid_date = $10, notes = $11, updated_at = $12
		WHERE id = $13
	`, inv.ClientID, inv.ProjectID, inv.Amount, inv.AdvancePayment, inv.TaxPercentage, inv.CustomTaxName,
		inv.Status, inv.IssuedDate, inv.DueDate, inv.PaidDate, inv.Notes, inv.UpdatedAt, inv.ID)
	return err
}

// Delete reports whether a row was removed.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *Repository) ShareToken(ctx context.Context, id string) (string, bool, error) {
	var token sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT share_token FROM invoices WHERE id = $1`, id).Scan(&token)
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
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM invoices WHERE share_token = $1`, token).Scan(&n)
	return n > 0, err
}

func (r *Repository) SetShareToken(ctx context.Context, id, token string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE invoices SET share_token = $1 WHERE id = $2 AND (share_token IS NULL OR share_token = '')`, token, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// ClientExists reports whether the referenced client row is present.
func (r *Repository) ClientExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT COUNT(*) FROM clients WHERE id = $1`, id)
}

func (r *Repository) ProjectExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT COUNT(*) FROM projects WHERE id = $1`, id)
}

func (r *Repository) exists(ctx context.Context, query, id string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanOne(row scanner) (*Invoice, error) {
	inv, err := scan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return inv, err
}

func scan(s scanner) (*Invoice, error) {
	var inv Invoice
	var projectID, dueDate, paidDate, shareToken sql.NullString

	err := s.Scan(&inv.ID, &inv.ClientID, &projectID, &inv.Amount, &inv.AdvancePayment, &inv.TaxPercentage,
		&inv.CustomTaxName, &inv.Status, &inv.IssuedDate, &dueDate, &paidDate, &inv.Notes, &shareToken,
		&inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}

	inv.ProjectID = nullable(projectID)
	inv.DueDate = nullable(dueDate)
	inv.PaidDate = nullable(paidDate)
	inv.ShareToken = nullable(shareToken)
	return &inv, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

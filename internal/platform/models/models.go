package models

import "github.com/shopspring/decimal"

const (
	ClientStatusLead     = "lead"
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

type Client struct {
	ID        string `json:"id"`
	Name      string `json:"name" validate:"required,max=200"`
	Company   string `json:"company,omitempty" validate:"max=200"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty" validate:"max=50"`
	Address   string `json:"address,omitempty"`
	Website   string `json:"website,omitempty" validate:"omitempty,url"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status" validate:"oneof=lead active inactive"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

const (
	ProjectStatusPending   = "pending"
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

type Project struct {
	ID          string              `json:"id"`
	ClientID    string              `json:"client_id" validate:"required"`
	Title       string              `json:"title" validate:"required,max=200"`
	Description string              `json:"description,omitempty"`
	Status      string              `json:"status" validate:"oneof=pending active completed cancelled"`
	StartDate   *string             `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string             `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Budget      decimal.NullDecimal `json:"budget"`
	CreatedAt   int64               `json:"created_at"`
	UpdatedAt   int64               `json:"updated_at"`
}

// GeneralSettingsID is the primary key of the single general settings row.
const GeneralSettingsID = "general"

type GeneralSettings struct {
	CompanyName string `json:"company_name" validate:"max=200"`
	Tagline     string `json:"tagline" validate:"max=300"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"max=50"`
	Address     string `json:"address"`
	Website     string `json:"website" validate:"omitempty,url"`
	UpdatedAt   int64  `json:"updated_at"`
}

type SocialLink struct {
	ID       string         `json:"id"`
	Platform SocialPlatform `json:"platform"`
	URL      string         `json:"url" validate:"required,url"`
	Order    int            `json:"order"`
}

// SiteSettings is everything site-wide a rendered document needs.
type SiteSettings struct {
	General GeneralSettings `json:"general"`
	Social  []SocialLink    `json:"social"`
}

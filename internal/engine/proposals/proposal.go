package proposals

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

type Proposal struct {
	ID          string  `json:"id"`
	ClientID    *string `json:"client_id,omitempty"`
	Title       string  `json:"title" validate:"required,max=200"`
	Content     string  `json:"content" validate:"max=100000"`
	Status      Status  `json:"status" validate:"oneof=draft sent accepted rejected"`
	AIGenerated bool    `json:"ai_generated"`
	ShareToken  *string `json:"share_token,omitempty"`
	CreatedAt   int64   `json:"created_at"`
	UpdatedAt   int64   `json:"updated_at"`
}

// Patch carries the fields an update may change. Nil means unchanged; an
// empty client id detaches the proposal.
type Patch struct {
	ClientID *string `json:"client_id"`
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Status   *Status `json:"status"`
}

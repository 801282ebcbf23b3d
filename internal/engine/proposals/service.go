package proposals

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"nexus/internal/pkg/errors"
	"nexus/internal/pkg/validator"
)

const untitled = "Untitled proposal"

type Service struct {
	repo      *Repository
	generator *Generator
	now       func() time.Time
}

func NewService(repo *Repository, generator *Generator) *Service {
	return &Service{repo: repo, generator: generator, now: time.Now}
}

func (s *Service) CreateProposal(ctx context.Context, req *Proposal) (*Proposal, error) {
	p := *req
	p.ID = uuid.New().String()
	p.ShareToken = nil
	p.ClientID = optional(p.ClientID)
	if p.Status == "" {
		p.Status = StatusDraft
	}
	p.CreatedAt = s.now().Unix()
	p.UpdatedAt = p.CreatedAt

	if err := validator.Struct(&p); err != nil {
		return nil, err
	}
	if err := s.checkClient(ctx, p.ClientID); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}

	log.Info().Str("proposal_id", p.ID).Bool("ai_generated", p.AIGenerated).Msg("proposal created")
	return &p, nil
}

func (s *Service) GetProposal(ctx context.Context, id string) (*Proposal, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.NewNotFound("proposal", id)
	}
	return p, nil
}

func (s *Service) ListProposals(ctx context.Context, limit, offset int) ([]*Proposal, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) UpdateProposal(ctx context.Context, id string, patch *Patch) (*Proposal, error) {
	p, err := s.GetProposal(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ClientID != nil {
		p.ClientID = optional(patch.ClientID)
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	return s.save(ctx, p)
}

// ChangeStatus sets any status; the draft, sent, accepted/rejected
// progression is a convention, not enforced.
func (s *Service) ChangeStatus(ctx context.Context, id string, status Status) (*Proposal, error) {
	p, err := s.GetProposal(ctx, id)
	if err != nil {
		return nil, err
	}
	from := p.Status
	p.Status = status

	updated, err := s.save(ctx, p)
	if err != nil {
		return nil, err
	}
	log.Info().Str("proposal_id", id).Str("from", string(from)).Str("to", string(status)).Msg("proposal status changed")
	return updated, nil
}

func (s *Service) DeleteProposal(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.NewNotFound("proposal", id)
	}
	return nil
}

// GenerateProposal asks the generator for a draft and stores it with
// ai_generated set. The generator's client id wins over the requested one.
func (s *Service) GenerateProposal(ctx context.Context, req GenerateRequest) (*Proposal, error) {
	if err := validator.Struct(&req); err != nil {
		return nil, err
	}

	draft, err := s.generator.Generate(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("proposal generation failed")
		return nil, err
	}

	clientID := draft.ClientID
	if clientID == "" {
		clientID = req.ClientID
	}
	title := draft.Title
	if title == "" {
		title = untitled
	}

	return s.CreateProposal(ctx, &Proposal{
		ClientID:    &clientID,
		Title:       title,
		Content:     draft.Content,
		Status:      StatusDraft,
		AIGenerated: true,
	})
}

func (s *Service) save(ctx context.Context, p *Proposal) (*Proposal, error) {
	p.UpdatedAt = s.now().Unix()
	if err := validator.Struct(p); err != nil {
		return nil, err
	}
	if err := s.checkClient(ctx, p.ClientID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) checkClient(ctx context.Context, id *string) error {
	if id == nil {
		return nil
	}
	ok, err := s.repo.ClientExists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return validator.Merge(nil, "client_id", "unknown client")
	}
	return nil
}

func optional(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

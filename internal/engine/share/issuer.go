package share

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"nexus/internal/pkg/errors"
	"nexus/internal/platform/metrics"
)

// Kind is the type of record a token is attached to. Its value is the path
// segment of the public URL.
type Kind string

const (
	KindInvoice  Kind = "invoices"
	KindProposal Kind = "proposals"
)

func (k Kind) resource() string {
	switch k {
	case KindInvoice:
		return "invoice"
	case KindProposal:
		return "proposal"
	}
	return string(k)
}

// TokenStore is the persistence a share issuer needs from a record table.
type TokenStore interface {
	TokenChecker
	// ShareToken returns the record's current token ("" when none) and
	// whether the record exists.
	ShareToken(ctx context.Context, id string) (token string, found bool, err error)
	// SetShareToken stores token only if the record has none yet and reports
	// whether it did.
	SetShareToken(ctx context.Context, id, token string) (bool, error)
}

type Issuer struct {
	kind    Kind
	store   TokenStore
	baseURL string
	metrics *metrics.Metrics
}

func NewIssuer(kind Kind, store TokenStore, baseURL string, m *metrics.Metrics) *Issuer {
	return &Issuer{kind: kind, store: store, baseURL: baseURL, metrics: m}
}

func (s *Issuer) Kind() Kind {
	return s.kind
}

// Share returns the record's share token, creating it on first use. A token
// is never replaced once set.
func (s *Issuer) Share(ctx context.Context, id string) (string, error) {
	current, found, err := s.store.ShareToken(ctx, id)
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.NewNotFound(s.kind.resource(), id)
	}
	if current != "" {
		return current, nil
	}

	token, err := s.uniqueToken(ctx)
	if err != nil {
		return "", err
	}

	stored, err := s.store.SetShareToken(ctx, id, token)
	if err != nil {
		return "", err
	}
	if !stored {
		// Lost the race to another request; hand back the winner's token.
		current, found, err = s.store.ShareToken(ctx, id)
		if err != nil {
			return "", err
		}
		if !found || current == "" {
			return "", errors.NewNotFound(s.kind.resource(), id)
		}
		return current, nil
	}

	log.Info().Str("kind", s.kind.resource()).Str("id", id).Msg("share token issued")
	s.metrics.ShareIssued(s.kind.resource())
	return token, nil
}

func (s *Issuer) uniqueToken(ctx context.Context) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		token, err := generateToken()
		if err != nil {
			return "", err
		}

		exists, err := s.store.TokenExists(ctx, token)
		if err != nil {
			return "", err
		}
		if !exists {
			return token, nil
		}
	}
	return "", ErrTokenSpaceExhausted
}

// URL is the public, unauthenticated address of a shared record.
func (s *Issuer) URL(token string) string {
	return fmt.Sprintf("%s/%s/shared/%s", s.baseURL, s.kind, token)
}

package share

import (
	"context"
	"errors"
	"testing"

	apperrors "nexus/internal/pkg/errors"
)

type fakeStore struct {
	tokens   map[string]string
	taken    map[string]bool
	writes   int
	stealing string // token another request stores just before ours
}

func (f *fakeStore) ShareToken(ctx context.Context, id string) (string, bool, error) {
	tok, ok := f.tokens[id]
	return tok, ok, nil
}

func (f *fakeStore) TokenExists(ctx context.Context, token string) (bool, error) {
	return f.taken[token], nil
}

func (f *fakeStore) SetShareToken(ctx context.Context, id, token string) (bool, error) {
	if f.stealing != "" {
		f.tokens[id] = f.stealing
		f.stealing = ""
	}
	if f.tokens[id] != "" {
		return false, nil
	}
	f.writes++
	f.tokens[id] = token
	return true, nil
}

func TestIssuer_ShareIsIdempotent(t *testing.T) {
	store := &fakeStore{tokens: map[string]string{"inv1": ""}}
	issuer := NewIssuer(KindInvoice, store, "https://agency.test", nil)

	first, err := issuer.Share(context.Background(), "inv1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !ValidToken(first) {
		t.Errorf("Expected a %d char base62 token, got %q", tokenLength, first)
	}

	second, err := issuer.Share(context.Background(), "inv1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("Expected same token, got %q then %q", first, second)
	}
	if store.writes != 1 {
		t.Errorf("Expected exactly one write, got %d", store.writes)
	}
}

func TestIssuer_ShareMissingRecord(t *testing.T) {
	issuer := NewIssuer(KindProposal, &fakeStore{tokens: map[string]string{}}, "", nil)

	_, err := issuer.Share(context.Background(), "nope")
	if !apperrors.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestIssuer_ShareLosesRace(t *testing.T) {
	winner := "WinnerWinnerWinnerWinnerWinner00"
	store := &fakeStore{tokens: map[string]string{"p1": ""}, stealing: winner}
	issuer := NewIssuer(KindProposal, store, "", nil)

	got, err := issuer.Share(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != winner {
		t.Errorf("Expected the stored token %q, got %q", winner, got)
	}
}

type collidingStore struct{ fakeStore }

func (c *collidingStore) TokenExists(ctx context.Context, token string) (bool, error) {
	return true, nil
}

func TestIssuer_ShareGivesUpOnCollisions(t *testing.T) {
	store := &collidingStore{fakeStore{tokens: map[string]string{"inv1": ""}}}
	issuer := NewIssuer(KindInvoice, store, "", nil)

	_, err := issuer.Share(context.Background(), "inv1")
	if !errors.Is(err, ErrTokenSpaceExhausted) {
		t.Errorf("Expected ErrTokenSpaceExhausted, got %v", err)
	}
}

func TestIssuer_URL(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInvoice, "https://agency.test/invoices/shared/abc"},
		{KindProposal, "https://agency.test/proposals/shared/abc"},
	}

	for _, tt := range tests {
		got := NewIssuer(tt.kind, nil, "https://agency.test", nil).URL("abc")
		if got != tt.want {
			t.Errorf("URL() = %q, want %q", got, tt.want)
		}
	}
}

func TestValidToken(t *testing.T) {
	tok, err := generateToken()
	if err != nil {
		t.Fatal(err)
	}
	if !ValidToken(tok) {
		t.Errorf("generated token %q rejected", tok)
	}
	for _, bad := range []string{"", "short", tok[:31] + "-", tok + "x"} {
		if ValidToken(bad) {
			t.Errorf("ValidToken(%q) = true", bad)
		}
	}
}

func TestQRCode(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"default size", 0, false},
		{"smallest", MinQRSize, false},
		{"too small", 100, true},
		{"too large", 5000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := QRCode("https://agency.test/invoices/shared/abc", tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("QRCode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("QRCode() error = %v, want a validation error", err)
			}
			if !tt.wantErr && len(got) == 0 {
				t.Error("QRCode() returned empty bytes")
			}
		})
	}
}

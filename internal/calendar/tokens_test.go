package calendar

import (
	"context"
	"testing"
)

func TestTokenStore_SaveAndGet(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	if err := store.Save(ctx, &Tokens{
		AccountID:    DefaultAccountID,
		AccessToken:  "access",
		RefreshToken: "refresh",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tok, ok := store.Get(ctx, DefaultAccountID)
	if !ok {
		t.Fatal("expected stored tokens")
	}
	if tok.RefreshToken != "refresh" {
		t.Errorf("expected refresh token %q, got %q", "refresh", tok.RefreshToken)
	}
	if tok.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set on save")
	}
}

func TestTokenStore_LastWriteWins(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	store.Save(ctx, &Tokens{AccountID: DefaultAccountID, RefreshToken: "first"})
	store.Save(ctx, &Tokens{AccountID: DefaultAccountID, RefreshToken: "second"})

	tok, ok := store.Get(ctx, DefaultAccountID)
	if !ok || tok.RefreshToken != "second" {
		t.Errorf("expected last write to win, got %+v", tok)
	}
}

func TestTokenStore_DefaultAccountOnEmptyID(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	store.Save(ctx, &Tokens{RefreshToken: "refresh"})

	if _, ok := store.Get(ctx, DefaultAccountID); !ok {
		t.Error("expected empty account id to map to the default account")
	}
}

func TestTokenStore_Delete(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	store.Save(ctx, &Tokens{AccountID: DefaultAccountID, RefreshToken: "refresh"})
	if err := store.Delete(ctx, DefaultAccountID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.Get(ctx, DefaultAccountID); ok {
		t.Error("expected tokens to be deleted")
	}

	// deleting again is a no-op
	if err := store.Delete(ctx, DefaultAccountID); err != nil {
		t.Errorf("unexpected error on double delete: %v", err)
	}
}

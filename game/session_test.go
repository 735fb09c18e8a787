package game

import (
	"context"
	"testing"
)

func TestSessionManagerCreate(t *testing.T) {
	store := newMemStore()
	manager := NewSessionManager(store)
	ctx := context.Background()

	creds, err := manager.Create(ctx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if creds.SessionID == "" {
		t.Error("empty session id")
	}
	if len(creds.Secret) != 64 {
		t.Errorf("expected 64-char secret, got %d chars", len(creds.Secret))
	}

	session, err := manager.Get(ctx, creds.SessionID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session == nil {
		t.Fatal("created session not found")
	}
	if !session.IsActive {
		t.Error("new session is not active")
	}
	if session.ValidatedScore != nil {
		t.Error("new session already has a validated score")
	}
	if session.Secret != creds.Secret {
		t.Error("stored secret differs from issued secret")
	}
	if session.Seed != creds.Seed {
		t.Error("stored seed differs from issued seed")
	}

	// Two sessions never share identity or keying material.
	other, err := manager.Create(ctx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if other.SessionID == creds.SessionID {
		t.Error("duplicate session id")
	}
	if other.Secret == creds.Secret {
		t.Error("duplicate session secret")
	}
}

func TestSessionManagerGetUnknown(t *testing.T) {
	manager := NewSessionManager(newMemStore())

	session, err := manager.Get(context.Background(), "no-such-session")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if session != nil {
		t.Error("expected nil for unknown session id")
	}
}

func TestSessionManagerFinalizeOnce(t *testing.T) {
	manager := NewSessionManager(newMemStore())
	ctx := context.Background()

	creds, err := manager.Create(ctx)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	ok, err := manager.Finalize(ctx, creds.SessionID, 60)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if !ok {
		t.Fatal("first finalize did not succeed")
	}

	session, _ := manager.Get(ctx, creds.SessionID)
	if session.IsActive {
		t.Error("finalized session still active")
	}
	if session.ValidatedScore == nil || *session.ValidatedScore != 60 {
		t.Errorf("validated score not stored, got %v", session.ValidatedScore)
	}

	// The transition is one-way: a second attempt must not succeed.
	ok, err = manager.Finalize(ctx, creds.SessionID, 999)
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if ok {
		t.Error("second finalize succeeded")
	}

	session, _ = manager.Get(ctx, creds.SessionID)
	if *session.ValidatedScore != 60 {
		t.Errorf("validated score changed to %d", *session.ValidatedScore)
	}
}

package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(Config{Path: filepath.Join(t.TempDir(), "journal.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDefaultConfig(t *testing.T) {
	if got := DefaultConfig().Path; got != "./data/journal.db" {
		t.Errorf("Path = %v, want ./data/journal.db", got)
	}
}

func TestStore_StartConversation(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	conv, err := store.StartConversation(ctx, "enhanced", "gpt-4", map[string]string{"voice": "nova"})
	if err != nil {
		t.Fatalf("StartConversation() error = %v", err)
	}
	if conv.ID == "" {
		t.Fatal("conversation ID should be generated")
	}

	got, err := store.GetConversation(ctx, conv.ID)
	if err != nil {
		t.Fatalf("GetConversation() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetConversation() returned nil")
	}
	if got.Variant != "enhanced" || got.Model != "gpt-4" {
		t.Errorf("conversation = %+v", got)
	}
	if got.Metadata["voice"] != "nova" {
		t.Errorf("Metadata = %v, want voice=nova", got.Metadata)
	}

	missing, err := store.GetConversation(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("GetConversation(missing) = %v, %v; want nil, nil", missing, err)
	}
}

func TestStore_RecordTurn(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	conv, _ := store.StartConversation(ctx, "console", "gpt-4", nil)
	start := time.Now().Add(-2 * time.Second)

	ok := &Turn{
		ConversationID: conv.ID,
		UserText:       "status report",
		Reply:          "All systems nominal.",
		ArtifactPath:   "/tmp/audio/response.mp3",
		Voice:          "alloy",
		StartedAt:      start,
		FinishedAt:     start.Add(time.Second),
	}
	if err := store.RecordTurn(ctx, ok); err != nil {
		t.Fatalf("RecordTurn() error = %v", err)
	}
	if ok.ID == "" {
		t.Error("turn ID should be generated")
	}

	failed := &Turn{
		ConversationID: conv.ID,
		UserText:       "again",
		Error:          "chat completion: status 500",
		StartedAt:      start.Add(time.Second),
	}
	if err := store.RecordTurn(ctx, failed); err != nil {
		t.Fatalf("RecordTurn() error = %v", err)
	}

	turns, err := store.ConversationTurns(ctx, conv.ID)
	if err != nil {
		t.Fatalf("ConversationTurns() error = %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("ConversationTurns() = %d turns, want 2", len(turns))
	}
	if turns[0].Reply != "All systems nominal." || turns[0].Failed() {
		t.Errorf("first turn = %+v", turns[0])
	}
	if turns[0].Duration() != time.Second {
		t.Errorf("Duration() = %v, want 1s", turns[0].Duration())
	}
	if !turns[1].Failed() {
		t.Errorf("second turn should be failed: %+v", turns[1])
	}

	recent, err := store.RecentTurns(ctx, 1)
	if err != nil {
		t.Fatalf("RecentTurns() error = %v", err)
	}
	if len(recent) != 1 || recent[0].UserText != "again" {
		t.Errorf("RecentTurns(1) = %+v, want newest turn", recent)
	}

	stats, err := store.Statistics(ctx)
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if stats["total_turns"] != int64(2) || stats["failed_turns"] != int64(1) {
		t.Errorf("Statistics() = %v", stats)
	}
}

func TestStore_RecordTurnRequiresConversation(t *testing.T) {
	store := createTestStore(t)

	if err := store.RecordTurn(context.Background(), &Turn{UserText: "x"}); err == nil {
		t.Error("RecordTurn() expected error without conversation ID")
	}
}

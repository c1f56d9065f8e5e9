package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	mdwlog "github.com/msto63/ember/foundation/core/log"
	"github.com/msto63/ember/foundation/lang"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(Config{Path: filepath.Join(t.TempDir(), "journal", "ember.db")})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func parseFor(t *testing.T, name, source string) *Entry {
	t.Helper()
	engine, err := lang.New(lang.Options{Logger: mdwlog.Discard()})
	if err != nil {
		t.Fatalf("lang.New() error = %v", err)
	}
	start := time.Now()
	root, err := engine.Parse(context.Background(), name, source, nil)
	return Observe(name, source, root, err, time.Since(start))
}

func TestObserve_Success(t *testing.T) {
	entry := parseFor(t, "ok.em", `print("a", "b")`)

	if !entry.Success {
		t.Fatalf("Success = false, error %q", entry.Error)
	}
	// Compound, FunctionCall and two StringLiterals
	if entry.Nodes != 4 {
		t.Errorf("Nodes = %d, want 4", entry.Nodes)
	}
	if len(entry.Hash) != 64 {
		t.Errorf("Hash length = %d, want 64", len(entry.Hash))
	}
	if entry.Size != len(`print("a", "b")`) {
		t.Errorf("Size = %d, want %d", entry.Size, len(`print("a", "b")`))
	}
	if entry.Code != "" || entry.Error != "" {
		t.Errorf("Expected no error fields, got %q %q", entry.Code, entry.Error)
	}
}

func TestObserve_Failure(t *testing.T) {
	entry := parseFor(t, "bad.em", "a = \"x\";\nprint(")

	if entry.Success {
		t.Fatal("Success = true, want false")
	}
	if entry.Code != string(mdwerror.CodeSyntax) {
		t.Errorf("Code = %v, want %v", entry.Code, mdwerror.CodeSyntax)
	}
	if entry.Line != 2 || entry.Column != 7 {
		t.Errorf("Position = %d:%d, want 2:7", entry.Line, entry.Column)
	}
	if entry.Nodes != 0 {
		t.Errorf("Nodes = %d, want 0", entry.Nodes)
	}
	if entry.Error == "" {
		t.Error("Error is empty")
	}
}

func TestObserve_SameContentSameHash(t *testing.T) {
	a := Observe("a.em", `x = "1"`, nil, nil, 0)
	b := Observe("b.em", `x = "1"`, nil, nil, 0)
	c := Observe("a.em", `x = "2"`, nil, nil, 0)

	if a.Hash != b.Hash {
		t.Error("Expected equal hashes for equal content")
	}
	if a.Hash == c.Hash {
		t.Error("Expected different hashes for different content")
	}
}

func TestSQLiteStore_RecordAndQuery(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ok := parseFor(t, "main.em", `print("hi")`)
	ok.RunID = "run-1"
	bad := parseFor(t, "main.em", `print(`)
	other := parseFor(t, "lib.em", `f(x)`)

	for _, entry := range []*Entry{ok, bad, other} {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
		if entry.ID == "" || entry.Timestamp.IsZero() {
			t.Errorf("Record() did not assign ID and timestamp: %+v", entry)
		}
	}

	all, err := store.Query(ctx, Filter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Query() returned %d entries, want 3", len(all))
	}
	if all[0].ID != other.ID {
		t.Errorf("Expected newest entry first, got %s", all[0].Source)
	}

	got := findEntry(all, bad.ID)
	if got == nil {
		t.Fatal("Recorded failure not found")
	}
	if got.Success || got.Code != bad.Code || got.Line != bad.Line || got.Column != bad.Column || got.Error != bad.Error {
		t.Errorf("Failure round trip mismatch: got %+v, want %+v", got, bad)
	}
	if got.Hash != bad.Hash || got.Duration != bad.Duration {
		t.Errorf("Hash or duration mismatch: got %s/%v, want %s/%v", got.Hash, got.Duration, bad.Hash, bad.Duration)
	}

	tests := []struct {
		name     string
		filter   Filter
		expected int
	}{
		{"by source", Filter{Source: "main.em"}, 2},
		{"only failed", Filter{OnlyFailed: true}, 1},
		{"by hash", Filter{Hash: ok.Hash}, 1},
		{"by run", Filter{RunID: "run-1"}, 1},
		{"limit", Filter{Limit: 2}, 2},
		{"offset", Filter{Offset: 2}, 1},
		{"since future", Filter{Since: time.Now().Add(time.Hour)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.Query(ctx, tt.filter)
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if len(entries) != tt.expected {
				t.Errorf("Query() returned %d entries, want %d", len(entries), tt.expected)
			}
		})
	}
}

func TestSQLiteStore_RecordRejectsMissingSource(t *testing.T) {
	store := openTestStore(t)

	err := store.Record(context.Background(), &Entry{Hash: "x"})
	if !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Record() code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeInvalidInput)
	}
}

func TestSQLiteStore_Stats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	empty, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if empty.Total != 0 || !empty.LastEntry.IsZero() {
		t.Errorf("Stats() on empty journal = %+v", empty)
	}

	entries := []*Entry{
		parseFor(t, "a.em", `f("1")`),
		parseFor(t, "a.em", `f(`),
		parseFor(t, "b.em", `f(#)`),
		Observe("c.em", "", nil, mdwerror.New("empty").WithCode(mdwerror.CodeInvalidInput), 0),
	}
	for _, entry := range entries {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Total != 4 {
		t.Errorf("Total = %d, want 4", stats.Total)
	}
	if stats.Failed != 3 {
		t.Errorf("Failed = %d, want 3", stats.Failed)
	}
	if stats.Sources != 3 {
		t.Errorf("Sources = %d, want 3", stats.Sources)
	}
	if stats.ByCode[string(mdwerror.CodeSyntax)] != 2 {
		t.Errorf("ByCode[SYNTAX] = %d, want 2", stats.ByCode[string(mdwerror.CodeSyntax)])
	}
	if stats.ByCode[string(mdwerror.CodeInvalidInput)] != 1 {
		t.Errorf("ByCode[INVALID_INPUT] = %d, want 1", stats.ByCode[string(mdwerror.CodeInvalidInput)])
	}
	if stats.LastEntry.IsZero() {
		t.Error("LastEntry is zero")
	}
}

func TestSQLiteStore_Prune(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	old := parseFor(t, "old.em", `f("x")`)
	old.Timestamp = time.Now().Add(-48 * time.Hour)
	recent := parseFor(t, "new.em", `f("x")`)

	for _, entry := range []*Entry{old, recent} {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	deleted, err := store.Prune(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("Prune() deleted %d, want 1", deleted)
	}

	remaining, err := store.Query(ctx, Filter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(remaining) != 1 || remaining[0].Source != "new.em" {
		t.Errorf("Expected only new.em to remain, got %d entries", len(remaining))
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ember.db")
	ctx := context.Background()

	store, err := Open(Config{Path: path})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := store.Record(ctx, parseFor(t, "a.em", `f("x")`)); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	store.Close()

	store, err = Open(Config{Path: path})
	if err != nil {
		t.Fatalf("Open() second time error = %v", err)
	}
	defer store.Close()

	entries, err := store.Query(ctx, Filter{})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected 1 persisted entry, got %d", len(entries))
	}
}

func TestSQLiteStore_CancelledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Record(ctx, parseFor(t, "a.em", `f("x")`))
	if err == nil {
		t.Fatal("Record() expected error for cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled in chain, got %v", err)
	}
	if !mdwerror.HasCode(err, mdwerror.CodeStorageError) {
		t.Errorf("Record() code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeStorageError)
	}
}

func findEntry(entries []*Entry, id string) *Entry {
	for _, e := range entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}

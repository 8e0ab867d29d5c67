package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "papuso.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	sessions := []Session{
		{EventID: "evento-1", GameID: "snake", Points: 12, Target: 12, LivesLeft: 3, Outcome: OutcomeWon, CreatedAt: base},
		{EventID: "evento-1", GameID: "pong", Points: 2, Target: 9, LivesLeft: 0, Outcome: OutcomeLost, CreatedAt: base.Add(time.Minute)},
		{EventID: "evento-2", GameID: "snake", Points: 1, Target: 12, LivesLeft: 5, Outcome: OutcomeAborted, CreatedAt: base.Add(2 * time.Minute)},
	}
	ids := make([]string, len(sessions))
	for i, sess := range sessions {
		id, err := store.SaveSession(sess)
		if err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
		if id == "" {
			t.Fatal("SaveSession() returned an empty id")
		}
		ids[i] = id
	}

	recent, err := store.RecentSessions(10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(recent))
	}
	if recent[0].ID != ids[2] || recent[2].ID != ids[0] {
		t.Errorf("sessions should be newest first, got %v", []string{recent[0].ID, recent[1].ID, recent[2].ID})
	}

	got := recent[2]
	want := sessions[0]
	want.ID = ids[0]
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, expected %v", got.CreatedAt, want.CreatedAt)
	}
	got.CreatedAt, want.CreatedAt = time.Time{}, time.Time{}
	if got != want {
		t.Errorf("round trip = %+v, expected %+v", got, want)
	}

	snake, err := store.GameSessions("snake", 10)
	if err != nil {
		t.Fatalf("GameSessions() failed: %v", err)
	}
	if len(snake) != 2 {
		t.Errorf("Expected 2 snake sessions, got %d", len(snake))
	}

	limited, err := store.RecentSessions(1)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit ignored: got %d sessions", len(limited))
	}
}

func TestSaveSessionDefaults(t *testing.T) {
	store := openTestStore(t)

	before := time.Now().Add(-time.Second)
	id, err := store.SaveSession(Session{EventID: "evento-1", GameID: "2048", Outcome: OutcomeWon})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	sess, err := store.SessionByID(id)
	if err != nil || sess == nil {
		t.Fatalf("SessionByID() = %v, %v", sess, err)
	}
	if sess.CreatedAt.Before(before) {
		t.Errorf("CreatedAt = %v, expected it to default to now", sess.CreatedAt)
	}

	missing, err := store.SessionByID("nope")
	if err != nil || missing != nil {
		t.Errorf("SessionByID(unknown) = %v, %v, expected nil, nil", missing, err)
	}
}

func TestSaveSessionRejectsUnknownOutcome(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveSession(Session{GameID: "snake", Outcome: "draw"})
	if !errors.Is(err, ErrInvalidOutcome) {
		t.Errorf("err = %v, expected ErrInvalidOutcome", err)
	}
}

func TestDuplicateIDFails(t *testing.T) {
	store := openTestStore(t)

	sess := Session{ID: "fixed", GameID: "snake", Outcome: OutcomeWon}
	if _, err := store.SaveSession(sess); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if _, err := store.SaveSession(sess); err == nil {
		t.Error("second insert with the same id should fail")
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)
	last := time.Date(2026, 5, 2, 8, 30, 0, 0, time.UTC)

	for _, sess := range []Session{
		{GameID: "tetris", Points: 4, Outcome: OutcomeWon, CreatedAt: last.Add(-time.Hour)},
		{GameID: "tetris", Points: 1, Outcome: OutcomeLost, CreatedAt: last},
		{GameID: "tetris", Points: 0, Outcome: OutcomeAborted, CreatedAt: last.Add(-2 * time.Hour)},
		{GameID: "missile", Points: 15, Outcome: OutcomeWon, CreatedAt: last},
	} {
		if _, err := store.SaveSession(sess); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	st, err := store.GetGameStats("tetris")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if st.Sessions != 3 || st.Won != 1 || st.Lost != 1 || st.Aborted != 1 || st.WordsRevealed != 5 {
		t.Errorf("stats = %+v", st)
	}
	if !st.LastPlayed.Equal(last) {
		t.Errorf("LastPlayed = %v, expected %v", st.LastPlayed, last)
	}
	if rate := st.WinRate(); rate < 0.33 || rate > 0.34 {
		t.Errorf("WinRate = %v, expected 1/3", rate)
	}

	empty, err := store.GetGameStats("pong")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.Sessions != 0 || empty.WinRate() != 0 {
		t.Errorf("unplayed game stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["missile"].Won != 1 {
		t.Errorf("all stats = %v", all)
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)

	for _, game := range []string{"snake", "snake", "pong"} {
		if _, err := store.SaveSession(Session{GameID: game, Outcome: OutcomeLost}); err != nil {
			t.Fatalf("SaveSession() failed: %v", err)
		}
	}

	if err := store.ClearGame("snake"); err != nil {
		t.Fatalf("ClearGame() failed: %v", err)
	}
	left, _ := store.RecentSessions(10)
	if len(left) != 1 || left[0].GameID != "pong" {
		t.Errorf("after ClearGame: %+v", left)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	left, _ = store.RecentSessions(10)
	if len(left) != 0 {
		t.Errorf("after Clear: %d sessions", len(left))
	}
}

func TestParseTime(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 600, time.UTC)
	tests := []struct {
		name     string
		in       any
		expected time.Time
	}{
		{"time value", ts, ts},
		{"stored layout", ts.Format(timeLayout), ts},
		{"sqlite default", "2026-01-02 03:04:05", ts.Truncate(time.Second)},
		{"garbage", "yesterday", time.Time{}},
		{"nil", nil, time.Time{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseTime(tc.in); !got.Equal(tc.expected) {
				t.Errorf("parseTime(%v) = %v, expected %v", tc.in, got, tc.expected)
			}
		})
	}
}

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("memory_easy", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("memory_hard", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("memory_easy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}

	top, err := store.TopScores("memory_easy", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(top))
	}

	all, err := store.AllScores("memory_hard")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("Expected 1 hard score, got %d", len(all))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("memory_easy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("memory_easy", 100)
	store.SaveScore("memory_easy", 300)
	store.SaveScore("memory_easy", 200)

	high, err = store.HighScore("memory_easy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("memory_easy", 100)
	store.SaveScore("memory_medium", 300)
	store.SaveRound(Round{GameID: "memory_easy", Level: "easy", Outcome: "won", Score: 100})

	if err := store.ClearScores("memory_easy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if easy, _ := store.TopScores("memory_easy", 10); len(easy) != 0 {
		t.Errorf("Expected 0 easy scores after clear, got %d", len(easy))
	}
	if rounds, _ := store.RecentRounds("memory_easy", 10); len(rounds) != 0 {
		t.Errorf("Expected 0 easy rounds after clear, got %d", len(rounds))
	}
	if medium, _ := store.TopScores("memory_medium", 10); len(medium) != 1 {
		t.Error("Medium scores should not be affected by clearing easy")
	}
}

func TestStoreSaveRound(t *testing.T) {
	store := openTestStore(t)

	runID, err := store.SaveRound(Round{
		GameID:      "memory_easy",
		Level:       "easy",
		Outcome:     "won",
		Matches:     8,
		Pairs:       8,
		Moves:       14,
		SecondsLeft: 21,
		Score:       185,
		Player:      "alice",
	})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if _, err := uuid.Parse(runID); err != nil {
		t.Fatalf("SaveRound() returned non-uuid run ID %q", runID)
	}

	r, err := store.RoundByID(runID)
	if err != nil {
		t.Fatalf("RoundByID() failed: %v", err)
	}
	if r == nil {
		t.Fatal("RoundByID() returned nil for a saved round")
	}
	if r.Level != "easy" || r.Moves != 14 || r.Score != 185 || r.Player != "alice" || r.SecondsLeft != 21 {
		t.Errorf("RoundByID() = %+v", r)
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	missing, err := store.RoundByID(uuid.NewString())
	if err != nil {
		t.Fatalf("RoundByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("RoundByID() = %+v, expected nil for unknown run", missing)
	}
}

func TestStoreSaveRoundRunID(t *testing.T) {
	store := openTestStore(t)

	id := uuid.NewString()
	got, err := store.SaveRound(Round{RunID: id, GameID: "memory_easy", Level: "easy", Outcome: "lost"})
	if err != nil {
		t.Fatalf("SaveRound() failed: %v", err)
	}
	if got != id {
		t.Errorf("SaveRound() = %s, expected caller's run ID %s", got, id)
	}

	if _, err := store.SaveRound(Round{RunID: id, GameID: "memory_easy", Level: "easy", Outcome: "lost"}); err == nil {
		t.Error("SaveRound() should reject a duplicate run ID")
	}
	if _, err := store.SaveRound(Round{RunID: "not-a-uuid", GameID: "memory_easy"}); err == nil {
		t.Error("SaveRound() should reject a malformed run ID")
	}
}

func TestStoreRecentRounds(t *testing.T) {
	store := openTestStore(t)

	for i, game := range []string{"memory_easy", "memory_hard", "memory_easy"} {
		if _, err := store.SaveRound(Round{GameID: game, Level: game, Outcome: "lost", Moves: i}); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	all, err := store.RecentRounds("", 10)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(all))
	}
	if all[0].Moves != 2 || all[2].Moves != 0 {
		t.Errorf("Rounds not newest first: %+v", all)
	}

	easy, err := store.RecentRounds("memory_easy", 1)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(easy) != 1 || easy[0].Moves != 2 {
		t.Errorf("RecentRounds(easy, 1) = %+v", easy)
	}
}

func TestStoreBestRound(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestRound("memory_easy")
	if err != nil {
		t.Fatalf("BestRound() failed: %v", err)
	}
	if best != nil {
		t.Fatalf("BestRound() = %+v, expected nil with no rounds", best)
	}

	rounds := []Round{
		{GameID: "memory_easy", Level: "easy", Outcome: "won", Score: 150, Moves: 20},
		{GameID: "memory_easy", Level: "easy", Outcome: "won", Score: 150, Moves: 12},
		{GameID: "memory_easy", Level: "easy", Outcome: "lost", Score: 400, Moves: 5},
		{GameID: "memory_hard", Level: "hard", Outcome: "won", Score: 900, Moves: 40},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	best, err = store.BestRound("memory_easy")
	if err != nil {
		t.Fatalf("BestRound() failed: %v", err)
	}
	if best == nil || best.Score != 150 || best.Moves != 12 {
		t.Errorf("BestRound() = %+v, expected the 12-move win", best)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("memory_easy", 100)
	store.SaveScore("memory_easy", 300)
	store.SaveScore("memory_hard", 50)
	store.SaveRound(Round{GameID: "memory_easy", Level: "easy", Outcome: "won", Score: 300})
	store.SaveRound(Round{GameID: "memory_easy", Level: "easy", Outcome: "lost", Score: 100})

	stats, err := store.GetGameStats("memory_easy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 || stats.Wins != 1 {
		t.Errorf("GetGameStats() = %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["memory_hard"] == nil || all["memory_hard"].HighScore != 50 {
		t.Errorf("GetAllGamesStats() = %+v", all)
	}
	if all["memory_easy"].Wins != 1 || all["memory_easy"].GamesCount != 2 {
		t.Errorf("memory_easy stats = %+v, expected 2 games and 1 win", all["memory_easy"])
	}
}

func TestStoreGameStatsCountsScorelessRounds(t *testing.T) {
	store := openTestStore(t)

	store.SaveRound(Round{GameID: "memory_medium", Level: "medium", Outcome: "lost", Score: 0})
	store.SaveRound(Round{GameID: "memory_medium", Level: "medium", Outcome: "lost", Score: 0})

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	gs, ok := all["memory_medium"]
	if !ok {
		t.Fatalf("GetAllGamesStats() = %+v, expected memory_medium from its rounds", all)
	}
	if gs.GamesCount != 2 || gs.Wins != 0 || gs.HighScore != 0 {
		t.Errorf("memory_medium stats = %+v", gs)
	}
	if gs.LastPlayed.IsZero() {
		t.Error("LastPlayed should come from the rounds table")
	}

	single, err := store.GetGameStats("memory_medium")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if single.GamesCount != 2 {
		t.Errorf("GetGameStats() = %+v, expected 2 games", single)
	}

	empty, err := store.GetGameStats("memory_none")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.GameID != "memory_none" {
		t.Errorf("GetGameStats() for an unplayed game = %+v", empty)
	}
}

package server

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/globetrotterhq/globetrotter/internal/database"
	"github.com/globetrotterhq/globetrotter/internal/migrations"
)

func setupStore(t *testing.T) (*DocStore, *sql.DB) {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := migrations.Run(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewDocStore(db), db
}

func testCatalog() []Destination {
	return []Destination{
		{
			ID:      "d-paris",
			City:    "Paris",
			Country: "France",
			Clues:   []string{"A tower that sparkles at night.", "The city of love.", "Croissants everywhere."},
			FunFact: []string{"The Eiffel Tower was meant to be temporary."},
			Trivia:  []string{"Once a Roman city called Lutetia."},
		},
		{
			ID:      "d-tokyo",
			City:    "Tokyo",
			Country: "Japan",
			Clues:   []string{"The busiest pedestrian crossing in the world."},
			FunFact: []string{"Originally a fishing village called Edo.", "Home to over 160,000 restaurants."},
			Trivia:  []string{"Trains arrive on time to the second."},
		},
		{
			ID:      "d-rome",
			City:    "Rome",
			Country: "Italy",
			Clues:   []string{"Gladiators fought in its amphitheater.", "Toss a coin into the fountain."},
			FunFact: []string{"The Trevi Fountain collects thousands of euros a day."},
			Trivia:  []string{"Contains a country within the city."},
		},
		{
			ID:      "d-cairo",
			City:    "Cairo",
			Country: "Egypt",
			Clues:   []string{"The last ancient wonder stands nearby.", "The longest river flows through it."},
			FunFact: []string{"Known as the city of a thousand minarets."},
			Trivia:  []string{"Largest city in Africa."},
		},
		{
			ID:      "d-sydney",
			City:    "Sydney",
			Country: "Australia",
			Clues:   []string{"An opera house shaped like sails."},
			FunFact: []string{"The opera house roof has over a million tiles."},
			Trivia:  []string{"Built on the world's largest natural harbour."},
		},
	}
}

// testRouter builds the full route table over a fresh store seeded with the
// test catalog.
func testRouter(t *testing.T) (chi.Router, *DocStore) {
	t.Helper()

	store, db := setupStore(t)
	if err := store.ReplaceDestinations(context.Background(), testCatalog()); err != nil {
		t.Fatalf("seed destinations: %v", err)
	}

	r := chi.NewRouter()
	addRoutes(r, slog.Default(), store, db)
	return r, store
}

func TestCreateUserDefaults(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	u, err := store.CreateUser(ctx, User{Username: "alice"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == "" {
		t.Error("expected a generated id")
	}
	if u.CreatedAt == "" {
		t.Error("expected created_at to be set")
	}
	if u.Score != 0 || u.CorrectAnswers != 0 || u.TotalAttempts != 0 {
		t.Errorf("expected zero stats, got %+v", u)
	}

	got, err := store.UserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("lookup id = %q, want %q", got.ID, u.ID)
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, User{Username: "alice"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := store.CreateUser(ctx, User{Username: "alice"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second create: got %v, want ErrDuplicate", err)
	}
}

func TestIncrementScore(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if _, err := store.CreateUser(ctx, User{Username: "alice"}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Correct answer: +10, correct +1, attempts +1.
	matched, err := store.IncrementScore(ctx, "alice", 10, true)
	if err != nil || !matched {
		t.Fatalf("increment: matched=%v err=%v", matched, err)
	}

	// Incorrect answer: attempts only.
	matched, err = store.IncrementScore(ctx, "alice", 0, false)
	if err != nil || !matched {
		t.Fatalf("increment: matched=%v err=%v", matched, err)
	}

	u, err := store.UserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if u.Score != 10 {
		t.Errorf("score = %d, want 10", u.Score)
	}
	if u.CorrectAnswers != 1 {
		t.Errorf("correct_answers = %d, want 1", u.CorrectAnswers)
	}
	if u.TotalAttempts != 2 {
		t.Errorf("total_attempts = %d, want 2", u.TotalAttempts)
	}
	if u.CorrectAnswers > u.TotalAttempts {
		t.Error("invariant violated: correct_answers > total_attempts")
	}
}

func TestIncrementScoreUnknownUser(t *testing.T) {
	store, _ := setupStore(t)

	matched, err := store.IncrementScore(context.Background(), "ghost", 10, true)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if matched {
		t.Error("expected no match for unknown user")
	}
}

func TestSampleDestinations(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if err := store.ReplaceDestinations(ctx, testCatalog()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sample, err := store.SampleDestinations(ctx, 4)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(sample) != 4 {
		t.Fatalf("sample size = %d, want 4", len(sample))
	}

	// No repeats: sampling is without replacement.
	seen := map[string]bool{}
	for _, d := range sample {
		if seen[d.ID] {
			t.Errorf("destination %q sampled twice", d.ID)
		}
		seen[d.ID] = true
	}

	// Asking for more than exist returns what there is.
	sample, err = store.SampleDestinations(ctx, 10)
	if err != nil {
		t.Fatalf("oversized sample: %v", err)
	}
	if len(sample) != len(testCatalog()) {
		t.Errorf("oversized sample size = %d, want %d", len(sample), len(testCatalog()))
	}
}

func TestReplaceDestinationsResets(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	if err := store.ReplaceDestinations(ctx, testCatalog()); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if err := store.ReplaceDestinations(ctx, testCatalog()[:2]); err != nil {
		t.Fatalf("second load: %v", err)
	}

	count, err := store.CountDestinations(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestAcceptChallengeNoMatch(t *testing.T) {
	store, _ := setupStore(t)

	err := store.AcceptChallenge(context.Background(), "nope", "u1", "bob")
	if !errors.Is(err, ErrAcceptFailed) {
		t.Fatalf("got %v, want ErrAcceptFailed", err)
	}
}

func TestChallengeLifecycle(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	alice, err := store.CreateUser(ctx, User{Username: "alice"})
	if err != nil {
		t.Fatalf("create alice: %v", err)
	}
	bob, err := store.CreateUser(ctx, User{Username: "bob"})
	if err != nil {
		t.Fatalf("create bob: %v", err)
	}

	c, err := store.CreateChallenge(ctx, Challenge{
		ChallengeID: "ch-123",
		CreatorID:   alice.ID,
		Status:      StatusCreated,
		CreatedAt:   nowUTC(),
	})
	if err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	if c.ID == "" {
		t.Error("expected a generated store id")
	}

	if err := store.AcceptChallenge(ctx, "ch-123", bob.ID, bob.Username); err != nil {
		t.Fatalf("accept: %v", err)
	}

	got, err := store.ChallengeByID(ctx, "ch-123")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got.Status != StatusAccepted {
		t.Errorf("status = %q, want %q", got.Status, StatusAccepted)
	}
	if got.OpponentUsername == nil || *got.OpponentUsername != "bob" {
		t.Errorf("opponent_username = %v, want bob", got.OpponentUsername)
	}
	if got.OpponentID == nil || *got.OpponentID != bob.ID {
		t.Errorf("opponent_id = %v, want %q", got.OpponentID, bob.ID)
	}
}

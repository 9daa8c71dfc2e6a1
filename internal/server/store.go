package server

import "context"

// Destination is a document in the destinations collection. The catalog is
// reference data: bulk-loaded at startup, never mutated by gameplay.
type Destination struct {
	ID      string   `json:"id"`
	City    string   `json:"city"`
	Country string   `json:"country"`
	Clues   []string `json:"clues"`
	FunFact []string `json:"fun_fact"`
	Trivia  []string `json:"trivia"`
}

// User is a document in the users collection.
type User struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correct_answers"`
	TotalAttempts  int    `json:"total_attempts"`
	CreatedAt      string `json:"created_at"`
}

// Challenge is a document in the challenges collection. ChallengeID is the
// public token handed to players; ID is the store key.
type Challenge struct {
	ID               string  `json:"id"`
	ChallengeID      string  `json:"challenge_id"`
	CreatorID        string  `json:"creator_id"`
	Status           string  `json:"status"`
	OpponentID       *string `json:"opponent_id"`
	OpponentUsername *string `json:"opponent_username"`
	CreatedAt        string  `json:"created_at"`
}

// Challenge statuses. StatusCompleted exists in stored documents for forward
// compatibility; no transition currently produces it.
const (
	StatusCreated   = "created"
	StatusAccepted  = "accepted"
	StatusCompleted = "completed"
)

// Store is the data-store adapter over the three document collections.
type Store interface {
	CountDestinations(ctx context.Context) (int, error)
	SampleDestinations(ctx context.Context, n int) ([]Destination, error)
	DestinationByID(ctx context.Context, id string) (Destination, error)
	ReplaceDestinations(ctx context.Context, docs []Destination) error

	CreateUser(ctx context.Context, u User) (User, error)
	UserByUsername(ctx context.Context, username string) (User, error)
	UserByID(ctx context.Context, id string) (User, error)
	// IncrementScore atomically adds points to score, bumps total_attempts,
	// and bumps correct_answers when correct. Returns false when no user
	// matched; that is a soft failure for the caller to log, not an error.
	IncrementScore(ctx context.Context, username string, points int, correct bool) (bool, error)
	ClearUsers(ctx context.Context) error

	CreateChallenge(ctx context.Context, c Challenge) (Challenge, error)
	ChallengeByID(ctx context.Context, challengeID string) (Challenge, error)
	AcceptChallenge(ctx context.Context, challengeID, opponentID, opponentUsername string) error
	ClearChallenges(ctx context.Context) error
}

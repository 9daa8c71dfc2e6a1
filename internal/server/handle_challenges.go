package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type ChallengeCreator struct {
	Username       string `json:"username"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correct_answers"`
	TotalAttempts  int    `json:"total_attempts"`
}

// ChallengeView is a challenge joined with its creator's live stats. The
// stats are read at view time, not snapshotted at creation.
type ChallengeView struct {
	ChallengeID      string           `json:"challenge_id"`
	Creator          ChallengeCreator `json:"creator"`
	Status           string           `json:"status"`
	OpponentUsername *string          `json:"opponent_username"`
	CreatedAt        string           `json:"created_at"`
}

func challengeView(ctx context.Context, store Store, c Challenge) (ChallengeView, error) {
	creator, err := store.UserByID(ctx, c.CreatorID)
	if err != nil {
		return ChallengeView{}, err
	}
	return ChallengeView{
		ChallengeID: c.ChallengeID,
		Creator: ChallengeCreator{
			Username:       creator.Username,
			Score:          creator.Score,
			CorrectAnswers: creator.CorrectAnswers,
			TotalAttempts:  creator.TotalAttempts,
		},
		Status:           c.Status,
		OpponentUsername: c.OpponentUsername,
		CreatedAt:        c.CreatedAt,
	}, nil
}

func handleCreateChallenge(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creatorUsername := r.URL.Query().Get("creator_username")
		if creatorUsername == "" {
			writeError(w, http.StatusUnprocessableEntity, codeValidation, "creator_username is required")
			return
		}

		creator, err := store.UserByUsername(r.Context(), creatorUsername)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "User not found")
			return
		}
		if err != nil {
			writeInternalError(w)
			return
		}

		challenge, err := store.CreateChallenge(r.Context(), Challenge{
			ChallengeID: uuid.NewString(),
			CreatorID:   creator.ID,
			Status:      StatusCreated,
			CreatedAt:   nowUTC(),
		})
		if err != nil {
			writeInternalError(w)
			return
		}

		writeJSON(w, http.StatusOK, challenge)
	}
}

func handleGetChallenge(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		challengeID := chi.URLParam(r, "challengeID")

		challenge, err := store.ChallengeByID(r.Context(), challengeID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "Challenge not found")
			return
		}
		if err != nil {
			writeInternalError(w)
			return
		}

		view, err := challengeView(r.Context(), store, challenge)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "Challenge creator not found")
			return
		}
		if err != nil {
			writeInternalError(w)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

func handleAcceptChallenge(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		challengeID := chi.URLParam(r, "challengeID")
		username := r.URL.Query().Get("username")
		if username == "" {
			writeError(w, http.StatusUnprocessableEntity, codeValidation, "username is required")
			return
		}

		if _, err := store.ChallengeByID(r.Context(), challengeID); err != nil {
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, codeNotFound, "Challenge not found")
				return
			}
			writeInternalError(w)
			return
		}

		opponent, err := store.UserByUsername(r.Context(), username)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "User not found")
			return
		}
		if err != nil {
			writeInternalError(w)
			return
		}

		err = store.AcceptChallenge(r.Context(), challengeID, opponent.ID, opponent.Username)
		if errors.Is(err, ErrAcceptFailed) {
			writeError(w, http.StatusBadRequest, codeAccept, "Failed to accept challenge")
			return
		}
		if err != nil {
			writeInternalError(w)
			return
		}

		challenge, err := store.ChallengeByID(r.Context(), challengeID)
		if err != nil {
			writeInternalError(w)
			return
		}
		view, err := challengeView(r.Context(), store, challenge)
		if err != nil {
			writeInternalError(w)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

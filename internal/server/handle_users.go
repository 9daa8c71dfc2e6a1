package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type CreateUserRequest struct {
	Username              string `json:"username"`
	InitialScore          int    `json:"initial_score"`
	InitialCorrectAnswers int    `json:"initial_correct_answers"`
	InitialTotalAttempts  int    `json:"initial_total_attempts"`
}

// UserResponse is the public view of a user record.
type UserResponse struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Score          int    `json:"score"`
	CorrectAnswers int    `json:"correct_answers"`
	TotalAttempts  int    `json:"total_attempts"`
	CreatedAt      string `json:"created_at"`
}

func userResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		Username:       u.Username,
		Score:          u.Score,
		CorrectAnswers: u.CorrectAnswers,
		TotalAttempts:  u.TotalAttempts,
		CreatedAt:      u.CreatedAt,
	}
}

func (req *CreateUserRequest) validate() string {
	if strings.TrimSpace(req.Username) == "" {
		return "username is required"
	}
	if req.InitialScore < 0 || req.InitialCorrectAnswers < 0 || req.InitialTotalAttempts < 0 {
		return "initial stats must not be negative"
	}
	if req.InitialCorrectAnswers > req.InitialTotalAttempts {
		return "initial_correct_answers cannot exceed initial_total_attempts"
	}
	return ""
}

func handleCreateUser(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, codeValidation, "Invalid request data")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusUnprocessableEntity, codeValidation, msg)
			return
		}

		// Initial stats may be non-zero when promoting an anonymous session.
		user, err := store.CreateUser(r.Context(), User{
			Username:       req.Username,
			Score:          req.InitialScore,
			CorrectAnswers: req.InitialCorrectAnswers,
			TotalAttempts:  req.InitialTotalAttempts,
		})
		if errors.Is(err, ErrDuplicate) {
			writeError(w, http.StatusConflict, codeDuplicate,
				fmt.Sprintf("Username %q is already taken", req.Username))
			return
		}
		if err != nil {
			writeInternalError(w)
			return
		}

		writeJSON(w, http.StatusOK, userResponse(user))
	}
}

func handleGetUser(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := chi.URLParam(r, "username")

		user, err := store.UserByUsername(r.Context(), username)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound,
				fmt.Sprintf("User with username %q not found", username))
			return
		}
		if err != nil {
			writeInternalError(w)
			return
		}

		writeJSON(w, http.StatusOK, userResponse(user))
	}
}

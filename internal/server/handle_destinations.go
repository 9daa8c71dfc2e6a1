package server

import (
	"errors"
	"log/slog"
	"net/http"
)

type AnswerRequest struct {
	DestinationID string `json:"destination_id"`
	Answer        string `json:"answer"`
	Username      string `json:"username,omitempty"`
}

type AnswerResponse struct {
	Correct       bool           `json:"correct"`
	CorrectAnswer QuestionOption `json:"correct_answer"`
	FunFact       string         `json:"fun_fact"`
	ScoreUpdate   int            `json:"score_update"`
}

func handleRandomDestination(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sample, err := store.SampleDestinations(r.Context(), questionOptionCount)
		if err != nil {
			writeInternalError(w)
			return
		}
		if len(sample) == 0 {
			writeError(w, http.StatusNotFound, codeNotFound, "No destinations found")
			return
		}
		if len(sample) < questionOptionCount {
			writeError(w, http.StatusNotFound, codeNotFound, "Not enough destinations to build a question")
			return
		}

		writeJSON(w, http.StatusOK, buildQuestion(sample))
	}
}

func handleCheckAnswer(logger *slog.Logger, store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, codeValidation, "Invalid request data")
			return
		}
		if req.DestinationID == "" || req.Answer == "" {
			writeError(w, http.StatusUnprocessableEntity, codeValidation, "destination_id and answer are required")
			return
		}

		dest, err := store.DestinationByID(r.Context(), req.DestinationID)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "Destination not found")
			return
		}
		if err != nil {
			writeInternalError(w)
			return
		}

		correct := isCorrectAnswer(dest, req.Answer)
		points := 0
		if correct {
			points = pointsPerCorrectAnswer
		}

		// A failed score update never changes the outcome of the answer
		// check; it is logged and the response goes out as computed.
		if req.Username != "" {
			matched, err := store.IncrementScore(r.Context(), req.Username, points, correct)
			if err != nil {
				logger.Error("updating score", "username", req.Username, "error", err)
			} else if !matched {
				logger.Warn("score update matched no user", "username", req.Username)
			}
		}

		writeJSON(w, http.StatusOK, AnswerResponse{
			Correct:       correct,
			CorrectAnswer: QuestionOption{City: dest.City, Country: dest.Country},
			FunFact:       randomFunFact(dest),
			ScoreUpdate:   points,
		})
	}
}

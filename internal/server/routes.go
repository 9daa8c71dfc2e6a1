package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, store Store, db *sql.DB) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Globetrotter API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))
	r.Get("/", handleRoot())

	r.Route("/destinations", func(r chi.Router) {
		r.Get("/random", handleRandomDestination(store))
		r.Post("/answer", handleCheckAnswer(logger, store))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", handleCreateUser(store))
		r.Get("/{username}", handleGetUser(store))
	})

	r.Route("/challenges", func(r chi.Router) {
		r.Post("/", handleCreateChallenge(store))
		r.Get("/{challengeID}", handleGetChallenge(store))
		r.Post("/{challengeID}/accept", handleAcceptChallenge(store))
	})
}

// RootResponse is the welcome payload for GET /.
type RootResponse struct {
	Message string `json:"message"`
}

func handleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, RootResponse{Message: "Welcome to the Globetrotter API"})
	}
}

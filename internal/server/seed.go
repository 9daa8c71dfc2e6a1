package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// LoadDataset reads the destination catalog from a JSON file. The file is an
// array of destination documents keyed city/country/clues/fun_fact/trivia.
func LoadDataset(path string) ([]Destination, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	var docs []Destination
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	return docs, nil
}

// ResetData replaces the destination catalog with docs and clears the users
// and challenges collections. All player history is discarded; callers gate
// this behind the RESET_ON_START config flag.
func ResetData(ctx context.Context, logger *slog.Logger, store Store, docs []Destination) error {
	if err := store.ReplaceDestinations(ctx, docs); err != nil {
		return fmt.Errorf("replacing destinations: %w", err)
	}
	logger.Info("destination catalog loaded", "count", len(docs))

	if err := store.ClearUsers(ctx); err != nil {
		return fmt.Errorf("clearing users: %w", err)
	}
	if err := store.ClearChallenges(ctx); err != nil {
		return fmt.Errorf("clearing challenges: %w", err)
	}
	logger.Info("users and challenges collections reset")
	return nil
}

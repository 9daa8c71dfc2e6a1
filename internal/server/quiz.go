package server

import (
	"math/rand/v2"
	"strings"
)

const (
	// questionOptionCount is how many destinations a question samples; the
	// first is the answer, the rest are distractors.
	questionOptionCount = 4

	pointsPerCorrectAnswer = 10

	fallbackFunFact = "No fun fact available for this destination."
)

type QuestionOption struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type QuestionResponse struct {
	ID      string           `json:"id"`
	Clues   []string         `json:"clues"`
	Options []QuestionOption `json:"options"`
}

// buildQuestion turns a random sample into a question: the first sampled
// destination is the answer, 1 or 2 of its clues are revealed, and the
// city/country pairs of the whole sample become the shuffled option list.
func buildQuestion(sample []Destination) QuestionResponse {
	correct := sample[0]

	numClues := 1
	if len(correct.Clues) >= 2 && rand.IntN(2) == 1 {
		numClues = 2
	}
	if numClues > len(correct.Clues) {
		numClues = len(correct.Clues)
	}
	clues := make([]string, 0, numClues)
	for _, i := range rand.Perm(len(correct.Clues))[:numClues] {
		clues = append(clues, correct.Clues[i])
	}

	options := make([]QuestionOption, len(sample))
	for i, d := range sample {
		options[i] = QuestionOption{City: d.City, Country: d.Country}
	}
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return QuestionResponse{
		ID:      correct.ID,
		Clues:   clues,
		Options: options,
	}
}

// isCorrectAnswer accepts the city alone or "city, country", compared
// case-insensitively with no extra normalization.
func isCorrectAnswer(d Destination, answer string) bool {
	got := strings.ToLower(answer)
	city := strings.ToLower(d.City)
	return got == city || got == city+", "+strings.ToLower(d.Country)
}

func randomFunFact(d Destination) string {
	if len(d.FunFact) == 0 {
		return fallbackFunFact
	}
	return d.FunFact[rand.IntN(len(d.FunFact))]
}

package server

import "testing"

func TestBuildQuestion(t *testing.T) {
	sample := testCatalog()[:4]

	// The clue subset and option order are random; run enough rounds to
	// exercise both clue counts.
	for i := 0; i < 50; i++ {
		q := buildQuestion(sample)

		if q.ID != sample[0].ID {
			t.Fatalf("question id = %q, want %q", q.ID, sample[0].ID)
		}
		if len(q.Options) != 4 {
			t.Fatalf("options = %d, want 4", len(q.Options))
		}
		if len(q.Clues) < 1 || len(q.Clues) > 2 {
			t.Fatalf("clues = %d, want 1 or 2", len(q.Clues))
		}
		if len(q.Clues) == 2 && q.Clues[0] == q.Clues[1] {
			t.Fatal("clue selected twice")
		}

		found := false
		for _, o := range q.Options {
			if o.City == sample[0].City && o.Country == sample[0].Country {
				found = true
			}
		}
		if !found {
			t.Fatal("correct destination missing from options")
		}
	}
}

func TestBuildQuestionSingleClue(t *testing.T) {
	sample := []Destination{
		{ID: "d1", City: "Sydney", Country: "Australia", Clues: []string{"only clue"}},
		{ID: "d2", City: "Tokyo", Country: "Japan", Clues: []string{"x"}},
		{ID: "d3", City: "Rome", Country: "Italy", Clues: []string{"y"}},
		{ID: "d4", City: "Cairo", Country: "Egypt", Clues: []string{"z"}},
	}

	for i := 0; i < 20; i++ {
		q := buildQuestion(sample)
		if len(q.Clues) != 1 {
			t.Fatalf("clues = %d, want 1 when the destination has a single clue", len(q.Clues))
		}
		if q.Clues[0] != "only clue" {
			t.Fatalf("clue = %q, want %q", q.Clues[0], "only clue")
		}
	}
}

func TestIsCorrectAnswer(t *testing.T) {
	dest := Destination{City: "Paris", Country: "France"}

	tests := []struct {
		answer string
		want   bool
	}{
		{"Paris", true},
		{"paris", true},
		{"PARIS", true},
		{"Paris, France", true},
		{"paris, france", true},
		{"PARIS, FRANCE", true},
		{"London", false},
		{"France", false},
		{"paris,france", false}, // missing space after comma
		{" paris", false},      // no whitespace normalization
		{"paris, ", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			if got := isCorrectAnswer(dest, tt.answer); got != tt.want {
				t.Errorf("isCorrectAnswer(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func TestRandomFunFact(t *testing.T) {
	dest := Destination{FunFact: []string{"a", "b"}}
	for i := 0; i < 20; i++ {
		got := randomFunFact(dest)
		if got != "a" && got != "b" {
			t.Fatalf("fun fact = %q, want one of the destination's facts", got)
		}
	}

	if got := randomFunFact(Destination{}); got != fallbackFunFact {
		t.Errorf("empty list fun fact = %q, want fallback", got)
	}
}

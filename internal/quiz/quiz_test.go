package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/pytutor/internal/validation"
)

func sampleQuestions() []Question {
	return []Question{
		{Text: "Which keyword defines a function?", Options: []string{"func", "def", "function", "lambda"}, Answer: "def"},
		{Text: "What does len([1, 2]) return?", Options: []string{"1", "2", "3", "Error"}, Answer: "2"},
		{Text: "Which loop iterates over a sequence?", Options: []string{"for", "while", "do", "repeat"}, Answer: "for"},
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    int
	}{
		{"all correct", []string{"def", "2", "for"}, 3},
		{"none correct", []string{"func", "1", "while"}, 0},
		{"partial", []string{"def", "3", "for"}, 2},
		{"case sensitive", []string{"DEF", "2", "For"}, 1},
		{"no trimming", []string{"def ", "2", "for"}, 2},
		{"empty answers", []string{"", "", ""}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(sampleQuestions(), tt.answers)
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScore_LengthMismatch(t *testing.T) {
	for _, answers := range [][]string{nil, {"def"}, {"def", "2", "for", "extra"}} {
		_, err := Score(sampleQuestions(), answers)
		var vErr *validation.Error
		if !errors.As(err, &vErr) {
			t.Errorf("Score(%v) error = %v, want validation error", answers, err)
		}
	}
}

func TestScore_EmptyQuiz(t *testing.T) {
	got, err := Score(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestScore_RangeProperty(t *testing.T) {
	qs := sampleQuestions()
	options := [][]string{qs[0].Options, qs[1].Options, qs[2].Options}
	for _, a := range options[0] {
		for _, b := range options[1] {
			for _, c := range options[2] {
				got, err := Score(qs, []string{a, b, c})
				require.NoError(t, err)
				perfect := a == qs[0].Answer && b == qs[1].Answer && c == qs[2].Answer
				if got < 0 || got > len(qs) {
					t.Fatalf("Score = %d out of range", got)
				}
				if (got == len(qs)) != perfect {
					t.Fatalf("Score(%q, %q, %q) = %d, perfect = %v", a, b, c, got, perfect)
				}
			}
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Quiz: Loops", "quiz:_loops"},
		{"Quiz: Variables and Data Types", "quiz:_variables_and_data_types"},
		{"quiz:_loops", "quiz:_loops"},
	}
	for _, tt := range tests {
		if got := NormalizeKey(tt.title); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
	assert.Equal(t, "quiz:_functions", Quiz{Title: "Quiz: Functions"}.Key())
}

func TestFeedback(t *testing.T) {
	tests := []struct {
		score, total int
		want         string
	}{
		{5, 5, "Great job! You can move to a higher difficulty level."},
		{3, 5, "Good work! Keep practicing to improve."},
		{2, 5, "Good work! Keep practicing to improve."},
		{1, 5, "Don't worry! Review the lesson and try again."},
		{0, 4, "Don't worry! Review the lesson and try again."},
		{2, 4, "Good work! Keep practicing to improve."},
	}
	for _, tt := range tests {
		if got := Feedback(tt.score, tt.total); got != tt.want {
			t.Errorf("Feedback(%d, %d) = %q, want %q", tt.score, tt.total, got, tt.want)
		}
	}
}

func TestQuestionValidate(t *testing.T) {
	valid := sampleQuestions()[0]

	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
	}{
		{"valid", func(q *Question) {}, false},
		{"three options", func(q *Question) { q.Options = q.Options[:3] }, true},
		{"duplicate option", func(q *Question) { q.Options = []string{"def", "def", "a", "b"} }, true},
		{"answer not an option", func(q *Question) { q.Answer = "define" }, true},
		{"empty text", func(q *Question) { q.Text = " " }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid
			q.Options = append([]string(nil), valid.Options...)
			tt.mutate(&q)
			err := q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestQuizValidate(t *testing.T) {
	assert.NoError(t, Quiz{Title: "Quiz: Functions", Questions: sampleQuestions()}.Validate())
	assert.Error(t, Quiz{Title: "Quiz: Functions"}.Validate())
	assert.Error(t, Quiz{Questions: sampleQuestions()}.Validate())

	bad := sampleQuestions()
	bad[2].Answer = "loop"
	err := Quiz{Title: "Quiz: Loops", Questions: bad}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "question 3")
}

func TestResolveAnswer(t *testing.T) {
	q := sampleQuestions()[0]
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"2", "def", true},
		{" 4 ", "lambda", true},
		{"DEF", "def", true},
		{"function", "function", true},
		{"0", "", false},
		{"5", "", false},
		{"nope", "", false},
	}
	for _, tt := range tests {
		got, ok := q.ResolveAnswer(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ResolveAnswer(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

// Package catalog is the fixed registry of lessons and quizzes and the
// loader for their documents.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/abhisek/pytutor/content"
	"github.com/abhisek/pytutor/internal/quiz"
	"github.com/abhisek/pytutor/internal/schemacheck"
)

var (
	ErrUnknownLesson = errors.New("unknown lesson")
	ErrUnknownQuiz   = errors.New("unknown quiz")
)

// LessonDescriptor names a lesson and where its document lives.
type LessonDescriptor struct {
	Title    string
	Location string
}

// QuizDescriptor names a quiz, where its document lives and the lesson
// that must be completed before it can be taken.
type QuizDescriptor struct {
	Title    string
	Location string
	Lesson   string
}

// Key returns the normalized key the quiz's score is stored under.
func (d QuizDescriptor) Key() string {
	return quiz.NormalizeKey(d.Title)
}

// Lesson is a loaded lesson document.
type Lesson struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// DefaultLessons returns the built-in lessons in teaching order.
func DefaultLessons() []LessonDescriptor {
	return []LessonDescriptor{
		{Title: "Introduction to Python", Location: "lessons/intro_to_python.json"},
		{Title: "Variables and Data Types", Location: "lessons/variables_and_data_types.json"},
		{Title: "Conditionals in Python", Location: "lessons/conditionals.json"},
		{Title: "Loops in Python", Location: "lessons/loops.json"},
		{Title: "Functions in Python", Location: "lessons/functions.json"},
	}
}

// DefaultQuizzes returns the built-in quizzes in the same order as their
// lessons.
func DefaultQuizzes() []QuizDescriptor {
	return []QuizDescriptor{
		{Title: "Quiz: Introduction to Python", Location: "quizzes/intro_to_python_quiz.json", Lesson: "Introduction to Python"},
		{Title: "Quiz: Variables and Data Types", Location: "quizzes/variables_and_data_types_quiz.json", Lesson: "Variables and Data Types"},
		{Title: "Quiz: Conditionals", Location: "quizzes/conditionals_quiz.json", Lesson: "Conditionals in Python"},
		{Title: "Quiz: Loops", Location: "quizzes/loops_quiz.json", Lesson: "Loops in Python"},
		{Title: "Quiz: Functions", Location: "quizzes/functions_quiz.json", Lesson: "Functions in Python"},
	}
}

// Catalog serves lesson and quiz documents from a file system.
type Catalog struct {
	fsys    fs.FS
	lessons []LessonDescriptor
	quizzes []QuizDescriptor

	// questionCounts maps quiz key to question count for loaded quizzes.
	questionCounts map[string]int
}

// New builds a catalog over fsys without reading any documents.
func New(fsys fs.FS, lessons []LessonDescriptor, quizzes []QuizDescriptor) *Catalog {
	return &Catalog{
		fsys:           fsys,
		lessons:        lessons,
		quizzes:        quizzes,
		questionCounts: make(map[string]int),
	}
}

// Open returns the built-in catalog. Documents come from dir when it is
// set, otherwise from the embedded content. Every quiz is loaded and
// validated so question counts are known up front.
func Open(dir string) (*Catalog, error) {
	var fsys fs.FS = content.FS
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("content dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("content dir %s is not a directory", dir)
		}
		fsys = os.DirFS(dir)
	}

	c := New(fsys, DefaultLessons(), DefaultQuizzes())
	if err := c.Preload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Preload loads every quiz to record its question count.
func (c *Catalog) Preload() error {
	for _, d := range c.quizzes {
		if _, err := c.LoadQuiz(d.Title); err != nil {
			return err
		}
	}
	return nil
}

// Lessons returns the lesson descriptors in catalog order.
func (c *Catalog) Lessons() []LessonDescriptor {
	return append([]LessonDescriptor(nil), c.lessons...)
}

// Quizzes returns the quiz descriptors in catalog order.
func (c *Catalog) Quizzes() []QuizDescriptor {
	return append([]QuizDescriptor(nil), c.quizzes...)
}

// LessonTitles returns the lesson titles in catalog order.
func (c *Catalog) LessonTitles() []string {
	titles := make([]string, len(c.lessons))
	for i, l := range c.lessons {
		titles[i] = l.Title
	}
	return titles
}

// LessonCount returns the number of lessons.
func (c *Catalog) LessonCount() int {
	return len(c.lessons)
}

// HasLesson reports whether title is a catalog lesson.
func (c *Catalog) HasLesson(title string) bool {
	_, err := c.FindLesson(title)
	return err == nil
}

// QuestionCount returns the question count of the quiz with key, if the
// quiz has been loaded.
func (c *Catalog) QuestionCount(quizKey string) (int, bool) {
	n, ok := c.questionCounts[quizKey]
	return n, ok
}

// IsQuizKey reports whether key is the normalized key of a catalog quiz.
func (c *Catalog) IsQuizKey(key string) bool {
	for _, q := range c.quizzes {
		if q.Key() == key {
			return true
		}
	}
	return false
}

// FindLesson returns the descriptor for title.
func (c *Catalog) FindLesson(title string) (LessonDescriptor, error) {
	for _, l := range c.lessons {
		if l.Title == title {
			return l, nil
		}
	}
	return LessonDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownLesson, title)
}

// FindQuiz returns the descriptor for title.
func (c *Catalog) FindQuiz(title string) (QuizDescriptor, error) {
	for _, q := range c.quizzes {
		if q.Title == title {
			return q, nil
		}
	}
	return QuizDescriptor{}, fmt.Errorf("%w: %q", ErrUnknownQuiz, title)
}

// LoadLesson reads and validates the document for the lesson title.
func (c *Catalog) LoadLesson(title string) (Lesson, error) {
	d, err := c.FindLesson(title)
	if err != nil {
		return Lesson{}, err
	}
	data, err := fs.ReadFile(c.fsys, d.Location)
	if err != nil {
		return Lesson{}, fmt.Errorf("read lesson %s: %w", d.Location, err)
	}
	l, err := ParseLesson(data)
	if err != nil {
		return Lesson{}, fmt.Errorf("lesson %s: %w", d.Location, err)
	}
	return l, nil
}

// LoadQuiz reads and validates the document for the quiz title and records
// its question count.
func (c *Catalog) LoadQuiz(title string) (quiz.Quiz, error) {
	d, err := c.FindQuiz(title)
	if err != nil {
		return quiz.Quiz{}, err
	}
	data, err := fs.ReadFile(c.fsys, d.Location)
	if err != nil {
		return quiz.Quiz{}, fmt.Errorf("read quiz %s: %w", d.Location, err)
	}
	q, err := ParseQuiz(data)
	if err != nil {
		return quiz.Quiz{}, fmt.Errorf("quiz %s: %w", d.Location, err)
	}
	c.questionCounts[d.Key()] = len(q.Questions)
	return q, nil
}

// ParseLesson validates and decodes a lesson document.
func ParseLesson(data []byte) (Lesson, error) {
	if err := schemacheck.Validate(lessonSchemaName, LessonDocumentSchema, data); err != nil {
		return Lesson{}, err
	}
	var l Lesson
	if err := json.Unmarshal(data, &l); err != nil {
		return Lesson{}, err
	}
	return l, nil
}

// ParseQuiz validates and decodes a quiz document.
func ParseQuiz(data []byte) (quiz.Quiz, error) {
	if err := schemacheck.Validate(quizSchemaName, QuizDocumentSchema, data); err != nil {
		return quiz.Quiz{}, err
	}
	var q quiz.Quiz
	if err := json.Unmarshal(data, &q); err != nil {
		return quiz.Quiz{}, err
	}
	if err := q.Validate(); err != nil {
		return quiz.Quiz{}, err
	}
	return q, nil
}

package coursework

import (
	"sort"
	"time"

	"gorm.io/datatypes"
)

type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Prompt  string   `json:"prompt" yaml:"prompt"`
	Choices []string `json:"choices" yaml:"choices"`
}

// Quiz holds the student-facing content. The correct answers live in AnswerKey.
type Quiz struct {
	ID        string                       `gorm:"primaryKey;column:id" json:"id"`
	WeekID    string                       `gorm:"index;column:week_id" json:"weekId,omitempty"`
	Title     string                       `gorm:"not null;column:title" json:"title"`
	Questions datatypes.JSONSlice[Question] `gorm:"column:questions" json:"questions"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Quiz) TableName() string { return "quizzes" }

// AnswerKey maps question id to the correct choice for one quiz.
type AnswerKey struct {
	QuizID string                                `gorm:"primaryKey;column:quiz_id" json:"quizId"`
	WeekID string                                `gorm:"column:week_id" json:"weekId,omitempty"`
	Key    datatypes.JSONType[map[string]string] `gorm:"column:answer_key" json:"key"`

	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (AnswerKey) TableName() string { return "quiz_answers" }

// QuestionOrder returns the key's question ids ordered by their position in
// questions, with ids unknown to the quiz appended in lexical order.
func QuestionOrder(key map[string]string, questions []Question) []string {
	out := make([]string, 0, len(key))
	seen := make(map[string]bool, len(key))
	for _, q := range questions {
		if _, ok := key[q.ID]; ok && !seen[q.ID] {
			out = append(out, q.ID)
			seen[q.ID] = true
		}
	}
	rest := make([]string, 0, len(key)-len(out))
	for id := range key {
		if !seen[id] {
			rest = append(rest, id)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

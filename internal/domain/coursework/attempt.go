package coursework

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BreakdownItem struct {
	ID            string  `json:"id"`
	CorrectAnswer string  `json:"correctAnswer"`
	Selected      *string `json:"selected"`
	IsCorrect     bool    `json:"isCorrect"`
}

// Attempt is written once per graded submission and never updated.
type Attempt struct {
	ID         uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID     string                                `gorm:"not null;index;column:quiz_id" json:"quizId"`
	UserID     uuid.UUID                             `gorm:"type:uuid;not null;index;column:user_id" json:"userId"`
	ClassID    uuid.UUID                             `gorm:"type:uuid;not null;index;column:class_id" json:"classId"`
	Answers    datatypes.JSONType[map[string]string] `gorm:"column:answers" json:"answers"`
	Score      int                                   `gorm:"not null;column:score" json:"score"`
	Total      int                                   `gorm:"not null;column:total" json:"total"`
	Percent    int                                   `gorm:"not null;column:percent" json:"percent"`
	Breakdown  datatypes.JSONSlice[BreakdownItem]    `gorm:"column:breakdown" json:"breakdown"`
	AutoGraded bool                                  `gorm:"not null;column:auto_graded" json:"autoGraded"`

	SubmittedAt time.Time `gorm:"not null;index;column:submitted_at" json:"submittedAt"`
}

func (Attempt) TableName() string { return "attempts" }

package coursework

import (
	"time"

	"github.com/google/uuid"
)

const (
	FlagGuideComplete = "guideComplete"
	FlagColabComplete = "colabComplete"
	FlagQuizComplete  = "quizComplete"
)

// Progress is keyed by (user, week, class). Writers merge only the columns they
// set, so independent pages never overwrite each other's flags.
type Progress struct {
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"userId"`
	WeekID  string    `gorm:"primaryKey;column:week_id" json:"weekId"`
	ClassID uuid.UUID `gorm:"type:uuid;primaryKey;index;column:class_id" json:"classId"`

	GuideComplete bool `gorm:"not null;column:guide_complete" json:"guideComplete"`
	ColabComplete bool `gorm:"not null;column:colab_complete" json:"colabComplete"`
	QuizComplete  bool `gorm:"not null;column:quiz_complete" json:"quizComplete"`
	QuizPercent   *int `gorm:"column:quiz_percent" json:"quizPercent,omitempty"`
	QuizScore     *int `gorm:"column:quiz_score" json:"quizScore,omitempty"`

	LastUpdated time.Time `gorm:"not null;column:last_updated" json:"lastUpdated"`
}

func (Progress) TableName() string { return "progress" }

// ProgressUpdate lists the fields one merge writes. Nil fields are left untouched.
type ProgressUpdate struct {
	GuideComplete *bool
	ColabComplete *bool
	QuizComplete  *bool
	QuizPercent   *int
	QuizScore     *int
}

func (u ProgressUpdate) Empty() bool {
	return u.GuideComplete == nil && u.ColabComplete == nil && u.QuizComplete == nil &&
		u.QuizPercent == nil && u.QuizScore == nil
}

// FlagUpdate builds an update for a single named boolean flag.
func FlagUpdate(flag string, value bool) (ProgressUpdate, bool) {
	v := value
	switch flag {
	case FlagGuideComplete:
		return ProgressUpdate{GuideComplete: &v}, true
	case FlagColabComplete:
		return ProgressUpdate{ColabComplete: &v}, true
	case FlagQuizComplete:
		return ProgressUpdate{QuizComplete: &v}, true
	default:
		return ProgressUpdate{}, false
	}
}

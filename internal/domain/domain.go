package domain

import (
	"github.com/yungbote/classroom-backend/internal/domain/classroom"
	"github.com/yungbote/classroom-backend/internal/domain/coursework"
	"github.com/yungbote/classroom-backend/internal/domain/user"
)

const (
	RoleStudent  = user.RoleStudent
	RoleEducator = user.RoleEducator

	FlagGuideComplete = coursework.FlagGuideComplete
	FlagColabComplete = coursework.FlagColabComplete
	FlagQuizComplete  = coursework.FlagQuizComplete
)

type User = user.User

func ValidRole(role string) bool { return user.ValidRole(role) }

type Class = classroom.Class
type ClassMember = classroom.ClassMember

type Week = coursework.Week
type GuideSource = coursework.GuideSource
type StudentMaterials = coursework.StudentMaterials
type TeacherMaterials = coursework.TeacherMaterials
type Question = coursework.Question
type Quiz = coursework.Quiz
type AnswerKey = coursework.AnswerKey
type Attempt = coursework.Attempt
type BreakdownItem = coursework.BreakdownItem
type Progress = coursework.Progress
type ProgressUpdate = coursework.ProgressUpdate

func QuestionOrder(key map[string]string, questions []Question) []string {
	return coursework.QuestionOrder(key, questions)
}

func FlagUpdate(flag string, value bool) (ProgressUpdate, bool) {
	return coursework.FlagUpdate(flag, value)
}

package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/classroom-backend/internal/data/repos/classroom"
	"github.com/yungbote/classroom-backend/internal/data/repos/coursework"
	"github.com/yungbote/classroom-backend/internal/data/repos/user"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo

type ClassRepo = classroom.ClassRepo
type ClassMemberRepo = classroom.ClassMemberRepo

type WeekRepo = coursework.WeekRepo
type MaterialsRepo = coursework.MaterialsRepo
type QuizRepo = coursework.QuizRepo
type AnswerKeyRepo = coursework.AnswerKeyRepo
type AttemptRepo = coursework.AttemptRepo
type ProgressRepo = coursework.ProgressRepo
type ProgressKey = coursework.ProgressKey

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }

func NewClassRepo(db *gorm.DB, baseLog *logger.Logger) ClassRepo {
	return classroom.NewClassRepo(db, baseLog)
}
func NewClassMemberRepo(db *gorm.DB, baseLog *logger.Logger) ClassMemberRepo {
	return classroom.NewClassMemberRepo(db, baseLog)
}

func NewWeekRepo(db *gorm.DB, baseLog *logger.Logger) WeekRepo {
	return coursework.NewWeekRepo(db, baseLog)
}
func NewMaterialsRepo(db *gorm.DB, baseLog *logger.Logger) MaterialsRepo {
	return coursework.NewMaterialsRepo(db, baseLog)
}
func NewQuizRepo(db *gorm.DB, baseLog *logger.Logger) QuizRepo {
	return coursework.NewQuizRepo(db, baseLog)
}
func NewAnswerKeyRepo(db *gorm.DB, baseLog *logger.Logger) AnswerKeyRepo {
	return coursework.NewAnswerKeyRepo(db, baseLog)
}
func NewAttemptRepo(db *gorm.DB, baseLog *logger.Logger) AttemptRepo {
	return coursework.NewAttemptRepo(db, baseLog)
}
func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	return coursework.NewProgressRepo(db, baseLog)
}

package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/classroom-backend/internal/data/repos"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type Repos struct {
	Users       repos.UserRepo
	Classes     repos.ClassRepo
	ClassMember repos.ClassMemberRepo
	Weeks       repos.WeekRepo
	Materials   repos.MaterialsRepo
	Quizzes     repos.QuizRepo
	AnswerKeys  repos.AnswerKeyRepo
	Attempts    repos.AttemptRepo
	Progress    repos.ProgressRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Users:       repos.NewUserRepo(db, log),
		Classes:     repos.NewClassRepo(db, log),
		ClassMember: repos.NewClassMemberRepo(db, log),
		Weeks:       repos.NewWeekRepo(db, log),
		Materials:   repos.NewMaterialsRepo(db, log),
		Quizzes:     repos.NewQuizRepo(db, log),
		AnswerKeys:  repos.NewAnswerKeyRepo(db, log),
		Attempts:    repos.NewAttemptRepo(db, log),
		Progress:    repos.NewProgressRepo(db, log),
	}
}

package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/classroom-backend/internal/domain"
)

// Models lists every table the service owns, in creation order.
func Models() []interface{} {
	return []interface{}{
		// =========================
		// Identity
		// =========================
		&types.User{},

		// =========================
		// Classes
		// =========================
		&types.Class{},
		&types.ClassMember{},

		// =========================
		// Coursework content
		// =========================
		&types.Week{},
		&types.StudentMaterials{},
		&types.TeacherMaterials{},
		&types.Quiz{},
		&types.AnswerKey{},

		// =========================
		// Student activity
		// =========================
		&types.Attempt{},
		&types.Progress{},
	}
}

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// EnsureIndexes adds the composite indexes the list queries rely on. The
// statements are portable between Postgres and SQLite.
func EnsureIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"idx_attempts_class_submitted", `CREATE INDEX IF NOT EXISTS idx_attempts_class_submitted ON attempts (class_id, submitted_at DESC);`},
		{"idx_progress_user_class", `CREATE INDEX IF NOT EXISTS idx_progress_user_class ON progress (user_id, class_id);`},
		{"idx_classes_owner_created", `CREATE INDEX IF NOT EXISTS idx_classes_owner_created ON classes (owner_id, created_at DESC);`},
	}
	for _, st := range stmts {
		if err := db.Exec(st.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", st.name, err)
		}
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...", "driver", s.driver)
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureIndexes(s.db); err != nil {
		s.log.Error("Index migration failed", "error", err)
		return err
	}
	return nil
}

package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/classroom-backend/internal/domain"
	"github.com/yungbote/classroom-backend/internal/platform/dbctx"
	"github.com/yungbote/classroom-backend/internal/platform/logger"
)

type UserRepo interface {
	CreateIgnoreDuplicate(dbc dbctx.Context, u *types.User) error
	GetByID(dbc dbctx.Context, userID uuid.UUID) (*types.User, error)
	GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error)
	UpdateRole(dbc dbctx.Context, userID uuid.UUID, role string) error
	UpdateName(dbc dbctx.Context, userID uuid.UUID, firstName, lastName string) error
	BackfillEmail(dbc dbctx.Context, userID uuid.UUID, email string) error
	FullDeleteByID(dbc dbctx.Context, userID uuid.UUID) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

// CreateIgnoreDuplicate inserts u unless a profile with the same id exists.
func (r *userRepo) CreateIgnoreDuplicate(dbc dbctx.Context, u *types.User) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if u == nil {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(u).Error
}

func (r *userRepo) GetByID(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var u types.User
	if err := t.WithContext(dbc.Ctx).Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	results := []*types.User{}
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userRepo) UpdateRole(dbc dbctx.Context, userID uuid.UUID, role string) error {
	return r.updates(dbc, userID, map[string]interface{}{"role": role})
}

func (r *userRepo) UpdateName(dbc dbctx.Context, userID uuid.UUID, firstName, lastName string) error {
	return r.updates(dbc, userID, map[string]interface{}{
		"first_name": strings.TrimSpace(firstName),
		"last_name":  strings.TrimSpace(lastName),
	})
}

// BackfillEmail sets the email only when the stored one is empty.
func (r *userRepo) BackfillEmail(dbc dbctx.Context, userID uuid.UUID, email string) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if strings.TrimSpace(email) == "" {
		return nil
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("id = ? AND (email IS NULL OR email = '')", userID).
		Updates(map[string]interface{}{"email": email, "updated_at": time.Now().UTC()}).Error
}

func (r *userRepo) FullDeleteByID(dbc dbctx.Context, userID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).Where("id = ?", userID).Delete(&types.User{}).Error
}

func (r *userRepo) updates(dbc dbctx.Context, userID uuid.UUID, fields map[string]interface{}) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	fields["updated_at"] = time.Now().UTC()
	res := t.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

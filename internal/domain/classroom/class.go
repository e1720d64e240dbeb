package classroom

import (
	"time"

	"github.com/google/uuid"
)

// Class is an educator-owned group that students join with Code.
type Class struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index;column:owner_id" json:"ownerId"`
	Name    string    `gorm:"not null;column:name" json:"name"`
	Code    string    `gorm:"not null;uniqueIndex:idx_classes_code;column:code" json:"code"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Class) TableName() string { return "classes" }

// ClassMember is keyed by (class_id, user_id). Its role is independent of the
// user's profile role: the owner is an educator member of their own class.
type ClassMember struct {
	ClassID uuid.UUID `gorm:"type:uuid;primaryKey;column:class_id" json:"classId"`
	UserID  uuid.UUID `gorm:"type:uuid;primaryKey;index;column:user_id" json:"userId"`
	Role    string    `gorm:"not null;column:role" json:"role"`

	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (ClassMember) TableName() string { return "class_members" }

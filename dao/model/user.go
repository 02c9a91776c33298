package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is the basic account entity of the system
type User struct {
	gorm.Model
	Name     string  `gorm:"uniqueIndex;type:varchar(64);not null;comment:login name"`
	Email    string  `gorm:"type:varchar(255);comment:report delivery address"`
	Password *string `gorm:"type:varchar(256);comment:bcrypt hash"`
	Role     Role    `gorm:"index:role;not null;comment:platform role (guest, user, admin)"`
}

// ChangeLog records every mutating operation for audit purposes. Data holds
// a JSON snapshot of the record as it was written.
type ChangeLog struct {
	gorm.Model
	UserName   string                            `gorm:"type:varchar(64);index;comment:acting user"`
	Action     string                            `gorm:"type:varchar(16);not null;comment:create, update or delete"`
	EntityType EntityType                        `gorm:"type:varchar(32);index;not null"`
	ObjectID   uint                              `gorm:"index;not null"`
	Data       datatypes.JSONType[map[string]any] `gorm:"comment:snapshot of the written record"`
}

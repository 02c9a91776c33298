// Package audit appends change log rows for every mutation that goes
// through the API or the bulk pipeline.
package audit

import (
	"dcim/dao/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LogCreate records a create inside the caller's transaction so the log
// entry commits or rolls back with the entity itself.
func LogCreate(db *gorm.DB, userName string, entityType model.EntityType, objectID uint, data map[string]any) error {
	return log(db, userName, model.ActionCreate, entityType, objectID, data)
}

// LogDelete records a delete with a snapshot of the removed entity.
func LogDelete(db *gorm.DB, userName string, entityType model.EntityType, objectID uint, data map[string]any) error {
	return log(db, userName, model.ActionDelete, entityType, objectID, data)
}

func log(db *gorm.DB, userName, action string, entityType model.EntityType, objectID uint, data map[string]any) error {
	entry := model.ChangeLog{
		UserName:   userName,
		Action:     action,
		EntityType: entityType,
		ObjectID:   objectID,
		Data:       datatypes.NewJSONType(data),
	}
	return db.Create(&entry).Error
}

package query

import (
	"fmt"

	"dcim/dao/model"

	"gorm.io/gorm"
)

// ListEntities returns every record of the given kind, ordered by name.
func ListEntities(db *gorm.DB, kind model.EntityType) (any, error) {
	switch kind {
	case model.EntityLocations:
		var out []model.Location
		return out, db.Order("name").Find(&out).Error
	case model.EntityBuildings:
		var out []model.Building
		return out, db.Order("name").Find(&out).Error
	case model.EntityWings:
		var out []model.Wing
		return out, db.Order("name").Find(&out).Error
	case model.EntityFloors:
		var out []model.Floor
		return out, db.Order("name").Find(&out).Error
	case model.EntityDatacenters:
		var out []model.Datacenter
		return out, db.Order("name").Find(&out).Error
	case model.EntityRacks:
		var out []model.Rack
		return out, db.Order("name").Find(&out).Error
	case model.EntityDevices:
		var out []model.Device
		return out, db.Order("name").Find(&out).Error
	case model.EntityMakes:
		var out []model.Make
		return out, db.Order("name").Find(&out).Error
	case model.EntityDeviceTypes:
		var out []model.DeviceType
		return out, db.Order("name").Find(&out).Error
	case model.EntityModels:
		var out []model.Model
		return out, db.Order("name").Find(&out).Error
	case model.EntityAssetOwners:
		var out []model.AssetOwner
		return out, db.Order("name").Find(&out).Error
	case model.EntityApplications:
		var out []model.ApplicationMapped
		return out, db.Order("name").Find(&out).Error
	}
	return nil, fmt.Errorf("unknown entity type '%s'", kind)
}

// CountSummary returns the number of records per entity kind.
func CountSummary(db *gorm.DB) (map[model.EntityType]int64, error) {
	tables := map[model.EntityType]any{
		model.EntityLocations:    &model.Location{},
		model.EntityBuildings:    &model.Building{},
		model.EntityWings:        &model.Wing{},
		model.EntityFloors:       &model.Floor{},
		model.EntityDatacenters:  &model.Datacenter{},
		model.EntityRacks:        &model.Rack{},
		model.EntityDevices:      &model.Device{},
		model.EntityMakes:        &model.Make{},
		model.EntityDeviceTypes:  &model.DeviceType{},
		model.EntityModels:       &model.Model{},
		model.EntityAssetOwners:  &model.AssetOwner{},
		model.EntityApplications: &model.ApplicationMapped{},
	}
	out := make(map[model.EntityType]int64, len(tables))
	for kind, table := range tables {
		var n int64
		if err := db.Model(table).Count(&n).Error; err != nil {
			return nil, err
		}
		out[kind] = n
	}
	return out, nil
}

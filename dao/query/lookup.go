package query

import (
	"dcim/dao/model"

	"gorm.io/gorm"
)

// Name-scoped lookups for the physical hierarchy. Each helper resolves a
// child by name inside its direct parent scope and returns
// gorm.ErrRecordNotFound (wrapped by gorm) when no such sibling exists.

func LocationByName(db *gorm.DB, name string) (*model.Location, error) {
	var loc model.Location
	if err := db.Where("name = ?", name).First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func BuildingByName(db *gorm.DB, name string, locationID uint) (*model.Building, error) {
	var b model.Building
	err := db.Where("name = ? AND location_id = ?", name, locationID).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func WingByName(db *gorm.DB, name string, locationID, buildingID uint) (*model.Wing, error) {
	var w model.Wing
	err := db.Where("name = ? AND location_id = ? AND building_id = ?",
		name, locationID, buildingID).First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func FloorByName(db *gorm.DB, name string, locationID, buildingID, wingID uint) (*model.Floor, error) {
	var f model.Floor
	err := db.Where("name = ? AND location_id = ? AND building_id = ? AND wing_id = ?",
		name, locationID, buildingID, wingID).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func DatacenterByName(db *gorm.DB, name string, locationID, buildingID, wingID, floorID uint) (*model.Datacenter, error) {
	var dc model.Datacenter
	err := db.Where("name = ? AND location_id = ? AND building_id = ? AND wing_id = ? AND floor_id = ?",
		name, locationID, buildingID, wingID, floorID).First(&dc).Error
	if err != nil {
		return nil, err
	}
	return &dc, nil
}

func RackByName(db *gorm.DB, name string, datacenterID uint) (*model.Rack, error) {
	var r model.Rack
	err := db.Where("name = ? AND datacenter_id = ?", name, datacenterID).First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func MakeByName(db *gorm.DB, name string) (*model.Make, error) {
	var m model.Make
	if err := db.Where("name = ?", name).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func DeviceTypeByName(db *gorm.DB, name string, makeID uint) (*model.DeviceType, error) {
	var dt model.DeviceType
	err := db.Where("name = ? AND make_id = ?", name, makeID).First(&dt).Error
	if err != nil {
		return nil, err
	}
	return &dt, nil
}

func ModelByName(db *gorm.DB, name string, makeID, deviceTypeID uint) (*model.Model, error) {
	var m model.Model
	err := db.Where("name = ? AND make_id = ? AND device_type_id = ?",
		name, makeID, deviceTypeID).First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func AssetOwnerByName(db *gorm.DB, name string) (*model.AssetOwner, error) {
	var ao model.AssetOwner
	if err := db.Where("name = ?", name).First(&ao).Error; err != nil {
		return nil, err
	}
	return &ao, nil
}

func ApplicationByName(db *gorm.DB, name string, assetOwnerID uint) (*model.ApplicationMapped, error) {
	var app model.ApplicationMapped
	err := db.Where("name = ? AND asset_owner_id = ?", name, assetOwnerID).First(&app).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// Get-or-create helpers for the kinds the creation handlers treat as
// idempotent inside their parent scope.

func GetOrCreateWing(db *gorm.DB, name string, locationID, buildingID uint) (*model.Wing, error) {
	wing := model.Wing{Name: name, LocationID: locationID, BuildingID: buildingID}
	err := db.Where("name = ? AND location_id = ? AND building_id = ?",
		name, locationID, buildingID).FirstOrCreate(&wing).Error
	if err != nil {
		return nil, err
	}
	return &wing, nil
}

func GetOrCreateFloor(db *gorm.DB, name string, locationID, buildingID, wingID uint) (*model.Floor, error) {
	floor := model.Floor{Name: name, LocationID: locationID, BuildingID: buildingID, WingID: wingID}
	err := db.Where("name = ? AND location_id = ? AND building_id = ? AND wing_id = ?",
		name, locationID, buildingID, wingID).FirstOrCreate(&floor).Error
	if err != nil {
		return nil, err
	}
	return &floor, nil
}

func GetOrCreateMake(db *gorm.DB, name string) (*model.Make, error) {
	mk := model.Make{Name: name}
	if err := db.Where("name = ?", name).FirstOrCreate(&mk).Error; err != nil {
		return nil, err
	}
	return &mk, nil
}

func GetOrCreateDeviceType(db *gorm.DB, name string, makeID uint) (*model.DeviceType, error) {
	dt := model.DeviceType{Name: name, MakeID: makeID}
	err := db.Where("name = ? AND make_id = ?", name, makeID).FirstOrCreate(&dt).Error
	if err != nil {
		return nil, err
	}
	return &dt, nil
}

func GetOrCreateAssetOwner(db *gorm.DB, name string, locationID *uint) (*model.AssetOwner, error) {
	ao := model.AssetOwner{Name: name, LocationID: locationID}
	tx := db.Where("name = ?", name)
	if locationID != nil {
		tx = tx.Where("location_id = ?", *locationID)
	}
	if err := tx.FirstOrCreate(&ao).Error; err != nil {
		return nil, err
	}
	return &ao, nil
}

package bulk

import (
	"testing"

	"dcim/dao/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.ChangeLog{},
		&model.Location{}, &model.Building{}, &model.Wing{}, &model.Floor{},
		&model.Datacenter{}, &model.Rack{}, &model.Device{},
		&model.Make{}, &model.DeviceType{}, &model.Model{},
		&model.AssetOwner{}, &model.ApplicationMapped{},
	))
	return db
}

// seedHierarchy creates Location L1 > Building B1 > Wing W1 > Floor F1 >
// Datacenter DC1 and returns the datacenter.
func seedHierarchy(t *testing.T, db *gorm.DB) *model.Datacenter {
	t.Helper()
	loc := model.Location{Name: "L1"}
	require.NoError(t, db.Create(&loc).Error)
	bld := model.Building{Name: "B1", LocationID: loc.ID}
	require.NoError(t, db.Create(&bld).Error)
	wing := model.Wing{Name: "W1", LocationID: loc.ID, BuildingID: bld.ID}
	require.NoError(t, db.Create(&wing).Error)
	floor := model.Floor{Name: "F1", LocationID: loc.ID, BuildingID: bld.ID, WingID: wing.ID}
	require.NoError(t, db.Create(&floor).Error)
	dc := model.Datacenter{
		Name: "DC1", LocationID: loc.ID, BuildingID: bld.ID,
		WingID: wing.ID, FloorID: floor.ID,
	}
	require.NoError(t, db.Create(&dc).Error)
	return &dc
}

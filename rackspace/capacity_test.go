package rackspace

import (
	"testing"

	"dcim/dao/model"

	"github.com/stretchr/testify/assert"
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
	require.NoError(t, db.AutoMigrate(&model.Rack{}, &model.Device{}))
	return db
}

func intPtr(n int) *int { return &n }

func TestEnsureRackCapacity(t *testing.T) {
	rack := &model.Rack{Name: "A1", Height: 42, SpaceUsed: 40, SpaceAvailable: intPtr(2)}

	assert.NoError(t, EnsureRackCapacity(rack, 2))

	err := EnsureRackCapacity(rack, 3)
	require.Error(t, err)
	assert.Equal(t, "Rack 'A1' only has 2U available, 3U required", err.Error())
}

func TestEnsureRackCapacityRecomputesStaleAvailability(t *testing.T) {
	rack := &model.Rack{Name: "A1", Height: 42, SpaceUsed: 10}

	require.NoError(t, EnsureRackCapacity(rack, 32))
	require.NotNil(t, rack.SpaceAvailable)
	assert.Equal(t, 32, *rack.SpaceAvailable)

	err := EnsureRackCapacity(rack, 33)
	require.Error(t, err)
	var insufficient *InsufficientSpaceError
	assert.ErrorAs(t, err, &insufficient)
}

func TestEnsureContinuousSpace(t *testing.T) {
	db := testDB(t)
	rack := &model.Rack{Name: "A1", DatacenterID: 1, Height: 42, SpaceUsed: 10}
	require.NoError(t, db.Create(rack).Error)
	occupant := &model.Device{
		Name: "db-01", RackID: rack.ID,
		MakeID: 1, DeviceTypeID: 1, ModelID: 1,
		Position: 33, SpaceRequired: 10,
	}
	require.NoError(t, db.Create(occupant).Error)

	// units 1-32 are free
	assert.NoError(t, EnsureContinuousSpace(db, rack, intPtr(1), 32, 0))

	err := EnsureContinuousSpace(db, rack, intPtr(30), 5, 0)
	require.Error(t, err)
	assert.Equal(t, "Units 33-42 are already occupied by device 'db-01'", err.Error())

	// moving the occupant itself may reuse its own range
	assert.NoError(t, EnsureContinuousSpace(db, rack, intPtr(33), 10, occupant.ID))
}

func TestEnsureContinuousSpaceGuards(t *testing.T) {
	db := testDB(t)
	rack := &model.Rack{Name: "A1", DatacenterID: 1, Height: 42}
	require.NoError(t, db.Create(rack).Error)

	err := EnsureContinuousSpace(db, rack, nil, 2, 0)
	require.Error(t, err)
	assert.Equal(t, "Position is required for rack placement", err.Error())

	err = EnsureContinuousSpace(db, rack, intPtr(0), 2, 0)
	require.Error(t, err)
	assert.Equal(t, "Position must be >= 1", err.Error())

	err = EnsureContinuousSpace(db, rack, intPtr(41), 3, 0)
	require.Error(t, err)
	assert.Equal(t, "Device placement exceeds rack height (units 41-43, rack is 42U)", err.Error())

	flat := &model.Rack{Name: "A2", DatacenterID: 1}
	require.NoError(t, db.Create(flat).Error)
	err = EnsureContinuousSpace(db, flat, intPtr(1), 1, 0)
	require.Error(t, err)
	assert.Equal(t, "Rack 'A2' has no height defined", err.Error())
}

func TestReserveAndRelease(t *testing.T) {
	rack := &model.Rack{Name: "A1", Height: 42}

	ReserveRackCapacity(rack, 10)
	assert.Equal(t, 10, rack.SpaceUsed)
	require.NotNil(t, rack.SpaceAvailable)
	assert.Equal(t, 32, *rack.SpaceAvailable)

	ReserveRackCapacity(rack, 0)
	assert.Equal(t, 10, rack.SpaceUsed)

	ReleaseRackCapacity(rack, 4)
	assert.Equal(t, 6, rack.SpaceUsed)
	assert.Equal(t, 36, *rack.SpaceAvailable)

	ReleaseRackCapacity(rack, 100)
	assert.Equal(t, 0, rack.SpaceUsed)
	assert.Equal(t, 42, *rack.SpaceAvailable)
}

func TestSyncRackUsage(t *testing.T) {
	db := testDB(t)
	rack := &model.Rack{Name: "A1", DatacenterID: 1, Height: 42, SpaceUsed: 99}
	require.NoError(t, db.Create(rack).Error)
	require.NoError(t, db.Create(&model.Device{
		Name: "d1", RackID: rack.ID, MakeID: 1, DeviceTypeID: 1, ModelID: 1,
		Position: 1, SpaceRequired: 2,
	}).Error)
	require.NoError(t, db.Create(&model.Device{
		Name: "d2", RackID: rack.ID, MakeID: 1, DeviceTypeID: 1, ModelID: 1,
		Position: 5, SpaceRequired: 3,
	}).Error)

	require.NoError(t, SyncRackUsage(db, rack))
	assert.Equal(t, 5, rack.SpaceUsed)
	require.NotNil(t, rack.SpaceAvailable)
	assert.Equal(t, 37, *rack.SpaceAvailable)
}

func TestSyncRackUsageEmptyRack(t *testing.T) {
	db := testDB(t)
	rack := &model.Rack{Name: "A1", DatacenterID: 1, Height: 42, SpaceUsed: 7}
	require.NoError(t, db.Create(rack).Error)

	require.NoError(t, SyncRackUsage(db, rack))
	assert.Equal(t, 0, rack.SpaceUsed)
	assert.Equal(t, 42, *rack.SpaceAvailable)
}

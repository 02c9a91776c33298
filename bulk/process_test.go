package bulk

import (
	"errors"
	"testing"

	"dcim/dao/model"
	"dcim/entities"
	"dcim/schemas"
	"dcim/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testPipeline() *Pipeline {
	return &Pipeline{
		Handlers: entities.DefaultRegistry(),
		Schemas:  schemas.Default(),
	}
}

func loadTable(t *testing.T, csv string) *tabular.Table {
	t.Helper()
	table, err := tabular.LoadRows([]byte(csv))
	require.NoError(t, err)
	return table
}

func TestProcessSingleEntitySuccess(t *testing.T) {
	db := testDB(t)
	p := testPipeline()

	table := loadTable(t, "name\nL1\nL2\n")
	summary, results := p.Process(db, table, string(model.EntityLocations), true, "tester")

	assert.Equal(t, 2, summary.Success["locations"])
	assert.False(t, summary.HasErrors())
	require.Len(t, results, 2)
	assert.Equal(t, model.RowSuccess, results[0].Status)

	var count int64
	require.NoError(t, db.Model(&model.Location{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// every created row left an audit entry
	var logs int64
	require.NoError(t, db.Model(&model.ChangeLog{}).Count(&logs).Error)
	assert.EqualValues(t, 2, logs)
}

func TestProcessChainMode(t *testing.T) {
	db := testDB(t)
	loc := model.Location{Name: "L1"}
	require.NoError(t, db.Create(&loc).Error)
	require.NoError(t, db.Create(&model.Building{Name: "B1", LocationID: loc.ID}).Error)
	p := testPipeline()

	table := loadTable(t,
		"location name,building name,wing name,floor name,datacenter name\nL1,B1,W1,F1,DC1\n")
	summary, results := p.Process(db, table, model.UploadModeWFD, true, "tester")

	assert.Equal(t, 1, summary.Success["wings"])
	assert.Equal(t, 1, summary.Success["floors"])
	assert.Equal(t, 1, summary.Success["datacenters"])
	assert.False(t, summary.Aborted)
	require.Len(t, results, 3)

	var dc model.Datacenter
	require.NoError(t, db.Where("name = ?", "DC1").First(&dc).Error)
	assert.NotZero(t, dc.FloorID)
}

func TestProcessChainModeSkipsBlankLevels(t *testing.T) {
	db := testDB(t)
	loc := model.Location{Name: "L1"}
	require.NoError(t, db.Create(&loc).Error)
	require.NoError(t, db.Create(&model.Building{Name: "B1", LocationID: loc.ID}).Error)
	p := testPipeline()

	table := loadTable(t,
		"location name,building name,wing name,floor name,datacenter name\nL1,B1,W1,,\n")
	summary, results := p.Process(db, table, model.UploadModeWFD, true, "tester")

	assert.Equal(t, 1, summary.Success["wings"])
	assert.Equal(t, 1, summary.Skipped["floors"])
	assert.Equal(t, 1, summary.Skipped["datacenters"])
	require.Len(t, results, 3)
	assert.Equal(t, model.RowSkipped, results[1].Status)
	assert.Contains(t, results[1].Error, "Missing required fields")
}

func TestProcessStopsOnFirstErrorWhenNotSkipping(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&model.Location{Name: "L1"}).Error)
	p := testPipeline()

	// L1 conflicts, L2 must never be attempted
	table := loadTable(t, "name\nL1\nL2\n")
	summary, results := p.Process(db, table, string(model.EntityLocations), false, "tester")

	assert.True(t, summary.Aborted)
	assert.Equal(t, 1, summary.Errors["locations"])
	assert.Equal(t, 0, summary.Success["locations"])
	require.Len(t, results, 1)
	assert.Equal(t, "Location with name 'L1' already exists", results[0].Error)

	var count int64
	require.NoError(t, db.Model(&model.Location{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestProcessContinuesWhenSkippingErrors(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&model.Location{Name: "L1"}).Error)
	p := testPipeline()

	table := loadTable(t, "name\nL1\nL2\n")
	summary, results := p.Process(db, table, string(model.EntityLocations), true, "tester")

	assert.False(t, summary.Aborted)
	assert.Equal(t, 1, summary.Errors["locations"])
	assert.Equal(t, 1, summary.Success["locations"])
	require.Len(t, results, 2)
}

func TestProcessFailingRowLeavesNothingBehind(t *testing.T) {
	db := testDB(t)
	seedHierarchy(t, db)
	p := testPipeline()

	// rack row without a height fails validation before any write
	table := loadTable(t,
		"name,location name,building name,wing name,floor name,datacenter name\nA1,L1,B1,W1,F1,DC1\n")
	summary, _ := p.Process(db, table, string(model.EntityRacks), true, "tester")

	assert.Equal(t, 1, summary.Errors["racks"])
	var count int64
	require.NoError(t, db.Model(&model.Rack{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.ChangeLog{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestClassifyRowError(t *testing.T) {
	assert.Equal(t, "Duplicate data", classifyRowError(gorm.ErrDuplicatedKey))
	assert.Equal(t, "boom", classifyRowError(errors.New("boom")))
}

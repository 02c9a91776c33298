package bulk

import (
	"testing"

	"dcim/dao/model"
	"dcim/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRackFields(t *testing.T) {
	raw := tabular.RawRow{
		"name": "A1", "location name": "L1", "building name": "B1",
		"wing name": "W1", "floor name": "F1", "datacenter name": "DC1",
		"rack height": "42",
	}
	f := ExtractEntityFields(tabular.CleanRow(raw), raw, model.EntityRacks)

	assert.Equal(t, "A1", f.Name)
	assert.Equal(t, "L1", f.LocationName)
	assert.Equal(t, "DC1", f.DatacenterName)
	require.NotNil(t, f.Height)
	assert.Equal(t, 42, *f.Height)
}

func TestExtractNameFallback(t *testing.T) {
	raw := tabular.RawRow{"location name": "DC-East"}
	f := ExtractEntityFields(tabular.CleanRow(raw), raw, model.EntityLocations)
	assert.Equal(t, "DC-East", f.Name)
}

func TestExtractChainLevels(t *testing.T) {
	raw := tabular.RawRow{
		"location name": "L1", "building name": "B1",
		"wing name": "W1", "floor name": "F1", "datacenter name": "DC1",
	}
	cleaned := tabular.CleanRow(raw)

	wing := ExtractEntityFields(cleaned, raw, model.EntityWings)
	assert.Equal(t, "W1", wing.Name)
	assert.Equal(t, "B1", wing.BuildingName)

	floor := ExtractEntityFields(cleaned, raw, model.EntityFloors)
	assert.Equal(t, "F1", floor.Name)
	assert.Equal(t, "W1", floor.WingName)

	dc := ExtractEntityFields(cleaned, raw, model.EntityDatacenters)
	assert.Equal(t, "DC1", dc.Name)
	assert.Equal(t, "F1", dc.FloorName)
}

func TestExtractModelRawColumns(t *testing.T) {
	raw := tabular.RawRow{
		"model": "R740", "manufacturer": "Dell", "asset type": "Server",
		"model height": "2",
	}
	f := ExtractEntityFields(tabular.CleanRow(raw), raw, model.EntityModels)

	assert.Equal(t, "R740", f.Name)
	assert.Equal(t, "Dell", f.MakeName)
	assert.Equal(t, "Server", f.DeviceTypeName)
	require.NotNil(t, f.Height)
	assert.Equal(t, 2, *f.Height)
}

func TestExtractDeviceFields(t *testing.T) {
	raw := tabular.RawRow{
		"host name": "web-01", "location name": "L1", "building name": "B1",
		"wing name": "W1", "floor name": "F1", "datacenter name": "DC1",
		"rack name": "A1", "manufacturer": "Dell", "asset type": "Server",
		"model name": "R740", "position": "10", "size": "2",
		"face": "Rear", "ip address": "10.0.0.5", "serial": "SN1",
		"warranty start": "2025-01-01", "warranty end": "2028-01-01",
	}
	f := ExtractEntityFields(tabular.CleanRow(raw), raw, model.EntityDevices)

	assert.Equal(t, "web-01", f.Name)
	assert.Equal(t, "A1", f.RackName)
	assert.Equal(t, "Dell", f.MakeName)
	assert.Equal(t, "Server", f.DeviceTypeName)
	require.NotNil(t, f.Position)
	assert.Equal(t, 10, *f.Position)
	require.NotNil(t, f.SpaceRequired)
	assert.Equal(t, 2, *f.SpaceRequired)
	assert.Equal(t, "Rear", f.Face)
	assert.Equal(t, "10.0.0.5", f.IP)
	assert.Equal(t, "2025-01-01", f.WarrantyStartDate)
}

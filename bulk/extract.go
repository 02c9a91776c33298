// Package bulk implements the upload ingestion pipeline: extract entity
// fields from cleaned rows, check uniqueness, create records per row in
// their own transactions and report the outcome.
package bulk

import (
	"strconv"

	"dcim/dao/model"
	"dcim/entities"
	"dcim/tabular"
)

// ExtractorConfig tells the extractor which cleaned key names the entity
// itself, as opposed to its parents, under a given upload kind.
type ExtractorConfig struct {
	// NameKey is the cleaned key carrying this entity's own name.
	NameKey string
	// FallbackKey is consulted when NameKey is absent, for sheets that
	// label the column by the entity kind instead of "name".
	FallbackKey string
}

var extractorConfigs = map[model.EntityType]ExtractorConfig{
	model.EntityLocations:    {NameKey: "name", FallbackKey: "location_name"},
	model.EntityBuildings:    {NameKey: "name", FallbackKey: "building_name"},
	model.EntityWings:        {NameKey: "name", FallbackKey: "wing_name"},
	model.EntityFloors:       {NameKey: "name", FallbackKey: "floor_name"},
	model.EntityDatacenters:  {NameKey: "name", FallbackKey: "datacenter_name"},
	model.EntityRacks:        {NameKey: "name", FallbackKey: "rack_name"},
	model.EntityDevices:      {NameKey: "name"},
	model.EntityMakes:        {NameKey: "name", FallbackKey: "make_name"},
	model.EntityDeviceTypes:  {NameKey: "name", FallbackKey: "devicetype_name"},
	model.EntityModels:       {NameKey: "name", FallbackKey: "model_name"},
	model.EntityAssetOwners:  {NameKey: "name", FallbackKey: "asset_owner_name"},
	model.EntityApplications: {NameKey: "name", FallbackKey: "application_name"},
}

func stringField(cleaned map[string]any, key string) string {
	switch v := cleaned[key].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

func intField(cleaned map[string]any, key string) *int {
	if v, ok := cleaned[key].(int); ok {
		n := v
		return &n
	}
	return nil
}

// ExtractEntityFields builds the canonical field set for one entity kind
// from a cleaned row. The raw row backs format-specific columns the
// cleaner could not disambiguate; chain uploads pass the same cleaned row
// once per chain level.
func ExtractEntityFields(cleaned map[string]any, raw tabular.RawRow, kind model.EntityType) *entities.Fields {
	cfg := extractorConfigs[kind]
	f := &entities.Fields{Kind: kind}

	f.Name = stringField(cleaned, cfg.NameKey)
	if f.Name == "" && cfg.FallbackKey != "" {
		f.Name = stringField(cleaned, cfg.FallbackKey)
	}

	f.Description = stringField(cleaned, "description")
	f.Address = stringField(cleaned, "address")
	f.BuildImage = stringField(cleaned, "build_image")

	f.LocationName = stringField(cleaned, "location_name")
	f.BuildingName = stringField(cleaned, "building_name")
	f.WingName = stringField(cleaned, "wing_name")
	f.FloorName = stringField(cleaned, "floor_name")
	f.DatacenterName = stringField(cleaned, "datacenter_name")
	f.RackName = stringField(cleaned, "rack_name")

	f.MakeName = stringField(cleaned, "make_name")
	f.DeviceTypeName = stringField(cleaned, "devicetype_name")
	f.ModelName = stringField(cleaned, "model_name")
	f.AssetOwnerName = stringField(cleaned, "asset_owner_name")
	f.ApplicationName = stringField(cleaned, "application_name")

	f.Height = intField(cleaned, "height")
	f.Position = intField(cleaned, "position")
	f.SpaceRequired = intField(cleaned, "space_required")

	f.Face = stringField(cleaned, "face")
	f.Status = stringField(cleaned, "status")
	f.IP = stringField(cleaned, "ip")
	f.SerialNumber = stringField(cleaned, "serial_number")
	f.WarrantyStartDate = stringField(cleaned, "warranty_start_date")
	f.WarrantyEndDate = stringField(cleaned, "warranty_end_date")

	// Model sheets historically label the make and device type columns
	// "manufacturer" and "asset type". The cleaner folds those aliases in,
	// but some exports carry both the alias and a same-named canonical
	// column, so the raw cells win when the cleaned value is empty.
	if kind == model.EntityModels {
		if f.MakeName == "" {
			f.MakeName = raw["manufacturer"]
		}
		if f.DeviceTypeName == "" {
			f.DeviceTypeName = raw["asset type"]
		}
		if f.Height == nil {
			f.Height = intField(cleaned, "model_height")
		}
	}

	// Chain levels name themselves through their dedicated column, never
	// through a generic "name" column that would belong to another level.
	switch kind {
	case model.EntityWings:
		if wing := stringField(cleaned, "wing_name"); wing != "" {
			f.Name = wing
		}
	case model.EntityFloors:
		if floor := stringField(cleaned, "floor_name"); floor != "" {
			f.Name = floor
		}
	case model.EntityDatacenters:
		if dc := stringField(cleaned, "datacenter_name"); dc != "" {
			f.Name = dc
		}
	}

	return f
}

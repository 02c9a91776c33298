package bulk

import (
	"errors"
	"fmt"

	"dcim/dao/model"
	"dcim/dao/query"
	"dcim/entities"

	"gorm.io/gorm"
)

// CheckRowUniqueness reports whether an entity with the same name already
// exists inside its parent scope. A missing parent anywhere along the
// chain means there is nothing to conflict with, so it returns no
// conflict and leaves the referential error to the creation handler.
// The returned string is the user-facing conflict message, empty when
// the row is unique.
func CheckRowUniqueness(db *gorm.DB, f *entities.Fields) (string, error) {
	exists, scope, err := lookupExisting(db, f)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	if !exists {
		return "", nil
	}
	label := conflictLabels[f.Kind]
	if scope != "" {
		return fmt.Sprintf("%s with name '%s' already exists in %s", label, f.Name, scope), nil
	}
	return fmt.Sprintf("%s with name '%s' already exists", label, f.Name), nil
}

var conflictLabels = map[model.EntityType]string{
	model.EntityLocations:    "Location",
	model.EntityBuildings:    "Building",
	model.EntityWings:        "Wing",
	model.EntityFloors:       "Floor",
	model.EntityDatacenters:  "Datacenter",
	model.EntityRacks:        "Rack",
	model.EntityDevices:      "Device",
	model.EntityMakes:        "Make",
	model.EntityDeviceTypes:  "Device type",
	model.EntityModels:       "Model",
	model.EntityAssetOwners:  "Asset owner",
	model.EntityApplications: "Application",
}

// lookupExisting resolves the parent chain step by step and probes for a
// same-named sibling at the end. Parent resolution failures propagate as
// gorm.ErrRecordNotFound.
func lookupExisting(db *gorm.DB, f *entities.Fields) (bool, string, error) {
	switch f.Kind {
	case model.EntityLocations:
		_, err := query.LocationByName(db, f.Name)
		return err == nil, "", err

	case model.EntityBuildings:
		loc, err := query.LocationByName(db, f.LocationName)
		if err != nil {
			return false, "", err
		}
		_, err = query.BuildingByName(db, f.Name, loc.ID)
		return err == nil, fmt.Sprintf("location '%s'", loc.Name), err

	case model.EntityWings:
		loc, err := query.LocationByName(db, f.LocationName)
		if err != nil {
			return false, "", err
		}
		bld, err := query.BuildingByName(db, f.BuildingName, loc.ID)
		if err != nil {
			return false, "", err
		}
		_, err = query.WingByName(db, f.Name, loc.ID, bld.ID)
		return err == nil, fmt.Sprintf("building '%s'", bld.Name), err

	case model.EntityFloors:
		loc, err := query.LocationByName(db, f.LocationName)
		if err != nil {
			return false, "", err
		}
		bld, err := query.BuildingByName(db, f.BuildingName, loc.ID)
		if err != nil {
			return false, "", err
		}
		wing, err := query.WingByName(db, f.WingName, loc.ID, bld.ID)
		if err != nil {
			return false, "", err
		}
		_, err = query.FloorByName(db, f.Name, loc.ID, bld.ID, wing.ID)
		return err == nil, fmt.Sprintf("wing '%s'", wing.Name), err

	case model.EntityDatacenters:
		loc, err := query.LocationByName(db, f.LocationName)
		if err != nil {
			return false, "", err
		}
		bld, err := query.BuildingByName(db, f.BuildingName, loc.ID)
		if err != nil {
			return false, "", err
		}
		wing, err := query.WingByName(db, f.WingName, loc.ID, bld.ID)
		if err != nil {
			return false, "", err
		}
		floor, err := query.FloorByName(db, f.FloorName, loc.ID, bld.ID, wing.ID)
		if err != nil {
			return false, "", err
		}
		_, err = query.DatacenterByName(db, f.Name, loc.ID, bld.ID, wing.ID, floor.ID)
		return err == nil, fmt.Sprintf("floor '%s'", floor.Name), err

	case model.EntityRacks:
		dc, err := resolveDatacenter(db, f)
		if err != nil {
			return false, "", err
		}
		_, err = query.RackByName(db, f.Name, dc.ID)
		return err == nil, fmt.Sprintf("datacenter '%s'", dc.Name), err

	case model.EntityDevices:
		dc, err := resolveDatacenter(db, f)
		if err != nil {
			return false, "", err
		}
		rack, err := query.RackByName(db, f.RackName, dc.ID)
		if err != nil {
			return false, "", err
		}
		var dev model.Device
		err = db.Where("name = ? AND rack_id = ?", f.Name, rack.ID).First(&dev).Error
		return err == nil, fmt.Sprintf("rack '%s'", rack.Name), err

	case model.EntityMakes:
		_, err := query.MakeByName(db, f.Name)
		return err == nil, "", err

	case model.EntityDeviceTypes:
		mk, err := query.MakeByName(db, f.MakeName)
		if err != nil {
			return false, "", err
		}
		_, err = query.DeviceTypeByName(db, f.Name, mk.ID)
		return err == nil, fmt.Sprintf("make '%s'", mk.Name), err

	case model.EntityModels:
		mk, err := query.MakeByName(db, f.MakeName)
		if err != nil {
			return false, "", err
		}
		dt, err := query.DeviceTypeByName(db, f.DeviceTypeName, mk.ID)
		if err != nil {
			return false, "", err
		}
		_, err = query.ModelByName(db, f.Name, mk.ID, dt.ID)
		return err == nil, fmt.Sprintf("make '%s', device type '%s'", mk.Name, dt.Name), err

	case model.EntityAssetOwners:
		_, err := query.AssetOwnerByName(db, f.Name)
		return err == nil, "", err

	case model.EntityApplications:
		owner, err := query.AssetOwnerByName(db, f.AssetOwnerName)
		if err != nil {
			return false, "", err
		}
		_, err = query.ApplicationByName(db, f.Name, owner.ID)
		return err == nil, fmt.Sprintf("owner '%s'", owner.Name), err
	}
	return false, "", nil
}

func resolveDatacenter(db *gorm.DB, f *entities.Fields) (*model.Datacenter, error) {
	loc, err := query.LocationByName(db, f.LocationName)
	if err != nil {
		return nil, err
	}
	bld, err := query.BuildingByName(db, f.BuildingName, loc.ID)
	if err != nil {
		return nil, err
	}
	wing, err := query.WingByName(db, f.WingName, loc.ID, bld.ID)
	if err != nil {
		return nil, err
	}
	floor, err := query.FloorByName(db, f.FloorName, loc.ID, bld.ID, wing.ID)
	if err != nil {
		return nil, err
	}
	return query.DatacenterByName(db, f.DatacenterName, loc.ID, bld.ID, wing.ID, floor.ID)
}

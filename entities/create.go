// Package entities holds the per-kind creation and deletion handlers and
// the registry the ingestion pipeline and API endpoints resolve them from.
package entities

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dcim/dao/model"
	"dcim/dao/query"
	"dcim/rackspace"

	"gorm.io/gorm"
)

// CreateFunc creates one entity from canonical fields inside the given
// session and returns a snapshot of the created record.
type CreateFunc func(db *gorm.DB, f *Fields) (Record, error)

// Registry maps entity kinds to their creation handlers. It is immutable
// after construction; the pipeline receives it by injection.
type Registry struct {
	create map[model.EntityType]CreateFunc
}

func NewRegistry(handlers map[model.EntityType]CreateFunc) *Registry {
	create := make(map[model.EntityType]CreateFunc, len(handlers))
	for kind, h := range handlers {
		create[kind] = h
	}
	return &Registry{create: create}
}

// DefaultRegistry wires every entity kind to its real creation handler.
func DefaultRegistry() *Registry {
	return NewRegistry(map[model.EntityType]CreateFunc{
		model.EntityLocations:    CreateLocation,
		model.EntityBuildings:    CreateBuilding,
		model.EntityWings:        CreateWing,
		model.EntityFloors:       CreateFloor,
		model.EntityDatacenters:  CreateDatacenter,
		model.EntityRacks:        CreateRack,
		model.EntityDevices:      CreateDevice,
		model.EntityMakes:        CreateMake,
		model.EntityDeviceTypes:  CreateDeviceType,
		model.EntityModels:       CreateModel,
		model.EntityAssetOwners:  CreateAssetOwner,
		model.EntityApplications: CreateApplication,
	})
}

// Create looks up the handler for a kind.
func (r *Registry) Create(kind model.EntityType) (CreateFunc, bool) {
	h, ok := r.create[kind]
	return h, ok
}

// notFound rewrites gorm's record-not-found into a user-facing message.
func notFound(err error, kind, name string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NotFoundError{Message: fmt.Sprintf("%s '%s' not found", kind, name)}
	}
	return err
}

// parentChain is the resolved ancestry shared by rack and device creation.
type parentChain struct {
	loc   *model.Location
	bld   *model.Building
	wing  *model.Wing
	floor *model.Floor
	dc    *model.Datacenter
}

func resolveDatacenterChain(db *gorm.DB, f *Fields) (*parentChain, error) {
	loc, err := query.LocationByName(db, f.LocationName)
	if err != nil {
		return nil, notFound(err, "Location", f.LocationName)
	}
	bld, err := query.BuildingByName(db, f.BuildingName, loc.ID)
	if err != nil {
		return nil, notFound(err, "Building", f.BuildingName)
	}
	wing, err := query.WingByName(db, f.WingName, loc.ID, bld.ID)
	if err != nil {
		return nil, notFound(err, "Wing", f.WingName)
	}
	floor, err := query.FloorByName(db, f.FloorName, loc.ID, bld.ID, wing.ID)
	if err != nil {
		return nil, notFound(err, "Floor", f.FloorName)
	}
	dc, err := query.DatacenterByName(db, f.DatacenterName, loc.ID, bld.ID, wing.ID, floor.ID)
	if err != nil {
		return nil, notFound(err, "Datacenter", f.DatacenterName)
	}
	return &parentChain{loc: loc, bld: bld, wing: wing, floor: floor, dc: dc}, nil
}

func CreateLocation(db *gorm.DB, f *Fields) (Record, error) {
	var existing model.Location
	err := db.Where("name = ?", f.Name).First(&existing).Error
	if err == nil {
		return nil, &ConflictError{fmt.Sprintf("Location with name '%s' already exists", f.Name)}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	loc := model.Location{Name: f.Name, Description: f.Description, BuildImage: f.BuildImage}
	if err := db.Create(&loc).Error; err != nil {
		return nil, err
	}
	return Record{"id": loc.ID, "name": loc.Name, "description": loc.Description}, nil
}

func CreateBuilding(db *gorm.DB, f *Fields) (Record, error) {
	loc, err := query.LocationByName(db, f.LocationName)
	if err != nil {
		return nil, notFound(err, "Location", f.LocationName)
	}
	if _, err := query.BuildingByName(db, f.Name, loc.ID); err == nil {
		return nil, &ConflictError{fmt.Sprintf("Building with name '%s' already exists in location '%s'", f.Name, loc.Name)}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	bld := model.Building{
		Name:        f.Name,
		LocationID:  loc.ID,
		Address:     f.Address,
		Description: f.Description,
	}
	if err := db.Create(&bld).Error; err != nil {
		return nil, err
	}
	return Record{
		"id": bld.ID, "name": bld.Name,
		"location_id": bld.LocationID, "location_name": loc.Name,
	}, nil
}

func CreateWing(db *gorm.DB, f *Fields) (Record, error) {
	loc, err := query.LocationByName(db, f.LocationName)
	if err != nil {
		return nil, notFound(err, "Location", f.LocationName)
	}
	bld, err := query.BuildingByName(db, f.BuildingName, loc.ID)
	if err != nil {
		return nil, notFound(err, "Building", f.BuildingName)
	}
	wing, err := query.GetOrCreateWing(db, f.Name, loc.ID, bld.ID)
	if err != nil {
		return nil, err
	}
	if f.Description != "" && wing.Description == "" {
		wing.Description = f.Description
		if err := db.Save(wing).Error; err != nil {
			return nil, err
		}
	}
	return Record{
		"id": wing.ID, "name": wing.Name,
		"location_name": loc.Name, "building_name": bld.Name,
	}, nil
}

func CreateFloor(db *gorm.DB, f *Fields) (Record, error) {
	loc, err := query.LocationByName(db, f.LocationName)
	if err != nil {
		return nil, notFound(err, "Location", f.LocationName)
	}
	bld, err := query.BuildingByName(db, f.BuildingName, loc.ID)
	if err != nil {
		return nil, notFound(err, "Building", f.BuildingName)
	}
	wing, err := query.GetOrCreateWing(db, f.WingName, loc.ID, bld.ID)
	if err != nil {
		return nil, err
	}
	floor, err := query.GetOrCreateFloor(db, f.Name, loc.ID, bld.ID, wing.ID)
	if err != nil {
		return nil, err
	}
	return Record{
		"id": floor.ID, "name": floor.Name,
		"location_name": loc.Name, "building_name": bld.Name, "wing_name": wing.Name,
	}, nil
}

func CreateDatacenter(db *gorm.DB, f *Fields) (Record, error) {
	loc, err := query.LocationByName(db, f.LocationName)
	if err != nil {
		return nil, notFound(err, "Location", f.LocationName)
	}
	bld, err := query.BuildingByName(db, f.BuildingName, loc.ID)
	if err != nil {
		return nil, notFound(err, "Building", f.BuildingName)
	}
	wing, err := query.GetOrCreateWing(db, f.WingName, loc.ID, bld.ID)
	if err != nil {
		return nil, err
	}
	floor, err := query.GetOrCreateFloor(db, f.FloorName, loc.ID, bld.ID, wing.ID)
	if err != nil {
		return nil, err
	}
	dc := model.Datacenter{
		Name:        f.Name,
		LocationID:  loc.ID,
		BuildingID:  bld.ID,
		WingID:      wing.ID,
		FloorID:     floor.ID,
		Description: f.Description,
	}
	if err := db.Create(&dc).Error; err != nil {
		return nil, err
	}
	return Record{
		"id": dc.ID, "name": dc.Name,
		"location_name": loc.Name, "building_name": bld.Name,
		"wing_name": wing.Name, "floor_name": floor.Name,
	}, nil
}

func CreateRack(db *gorm.DB, f *Fields) (Record, error) {
	chain, err := resolveDatacenterChain(db, f)
	if err != nil {
		return nil, err
	}
	if f.Height == nil || *f.Height <= 0 {
		return nil, fmt.Errorf("Height is required to create a rack")
	}
	height := *f.Height
	available := height
	rack := model.Rack{
		Name:           f.Name,
		LocationID:     chain.loc.ID,
		BuildingID:     chain.bld.ID,
		WingID:         chain.wing.ID,
		FloorID:        chain.floor.ID,
		DatacenterID:   chain.dc.ID,
		Description:    f.Description,
		Height:         height,
		SpaceUsed:      0,
		SpaceAvailable: &available,
	}
	if err := db.Create(&rack).Error; err != nil {
		return nil, err
	}
	return Record{
		"id": rack.ID, "name": rack.Name,
		"datacenter_name": chain.dc.Name,
		"height":          rack.Height,
		"space_used":      rack.SpaceUsed,
		"space_available": *rack.SpaceAvailable,
	}, nil
}

func parseWarrantyDate(value, which string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("Invalid warranty %s date '%s'", which, value)
	}
	return &t, nil
}

func CreateDevice(db *gorm.DB, f *Fields) (Record, error) {
	chain, err := resolveDatacenterChain(db, f)
	if err != nil {
		return nil, err
	}
	rack, err := query.RackByName(db, f.RackName, chain.dc.ID)
	if err != nil {
		return nil, notFound(err, "Rack", f.RackName)
	}
	mk, err := query.MakeByName(db, f.MakeName)
	if err != nil {
		return nil, notFound(err, "Make", f.MakeName)
	}
	dt, err := query.DeviceTypeByName(db, f.DeviceTypeName, mk.ID)
	if err != nil {
		return nil, notFound(err, "Device type", f.DeviceTypeName)
	}
	var mdl model.Model
	if err := db.Where("name = ?", f.ModelName).First(&mdl).Error; err != nil {
		return nil, notFound(err, "Model", f.ModelName)
	}
	if mdl.MakeID != mk.ID {
		return nil, fmt.Errorf("Model '%s' belongs to a different make than '%s'", mdl.Name, mk.Name)
	}
	if mdl.DeviceTypeID != dt.ID {
		return nil, fmt.Errorf("Model '%s' is not linked to device type '%s'", mdl.Name, dt.Name)
	}

	var ownerID, appID *uint
	if f.AssetOwnerName != "" {
		owner, err := query.AssetOwnerByName(db, f.AssetOwnerName)
		if err != nil {
			return nil, notFound(err, "Asset owner", f.AssetOwnerName)
		}
		ownerID = &owner.ID
		if f.ApplicationName != "" {
			app, err := query.ApplicationByName(db, f.ApplicationName, owner.ID)
			if err != nil {
				return nil, notFound(err, "Application", f.ApplicationName)
			}
			appID = &app.ID
		}
	}

	start, err := parseWarrantyDate(f.WarrantyStartDate, "start")
	if err != nil {
		return nil, err
	}
	end, err := parseWarrantyDate(f.WarrantyEndDate, "end")
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, fmt.Errorf("Warranty end date cannot be before start date")
	}

	spaceRequired := mdl.Height
	if f.SpaceRequired != nil && *f.SpaceRequired > 0 {
		spaceRequired = *f.SpaceRequired
	}
	if spaceRequired <= 0 {
		spaceRequired = 1
	}

	if err := rackspace.SyncRackUsage(db, rack); err != nil {
		return nil, err
	}
	if err := rackspace.EnsureContinuousSpace(db, rack, f.Position, spaceRequired, 0); err != nil {
		return nil, err
	}
	if err := rackspace.EnsureRackCapacity(rack, spaceRequired); err != nil {
		return nil, err
	}

	faceFront := f.Face == "" || strings.EqualFold(f.Face, "front")
	device := model.Device{
		Name:              f.Name,
		LocationID:        chain.loc.ID,
		BuildingID:        chain.bld.ID,
		WingID:            chain.wing.ID,
		FloorID:           chain.floor.ID,
		DatacenterID:      chain.dc.ID,
		RackID:            rack.ID,
		MakeID:            mk.ID,
		DeviceTypeID:      dt.ID,
		ModelID:           mdl.ID,
		AssetOwnerID:      ownerID,
		ApplicationID:     appID,
		Position:          *f.Position,
		SpaceRequired:     spaceRequired,
		FaceFront:         &faceFront,
		Status:            f.Status,
		IP:                f.IP,
		SerialNumber:      f.SerialNumber,
		Description:       f.Description,
		WarrantyStartDate: start,
		WarrantyEndDate:   end,
	}
	if err := db.Create(&device).Error; err != nil {
		return nil, err
	}

	rackspace.ReserveRackCapacity(rack, spaceRequired)
	if err := db.Save(rack).Error; err != nil {
		return nil, err
	}

	return Record{
		"id": device.ID, "name": device.Name,
		"rack_name":      rack.Name,
		"position":       device.Position,
		"space_required": device.SpaceRequired,
		"face_front":     faceFront,
		"status":         device.Status,
	}, nil
}

func CreateMake(db *gorm.DB, f *Fields) (Record, error) {
	mk, err := query.GetOrCreateMake(db, f.Name)
	if err != nil {
		return nil, err
	}
	return Record{"id": mk.ID, "name": mk.Name}, nil
}

func CreateDeviceType(db *gorm.DB, f *Fields) (Record, error) {
	mk, err := query.GetOrCreateMake(db, f.MakeName)
	if err != nil {
		return nil, err
	}
	dt, err := query.GetOrCreateDeviceType(db, f.Name, mk.ID)
	if err != nil {
		return nil, err
	}
	return Record{"id": dt.ID, "name": dt.Name, "make_name": mk.Name}, nil
}

func CreateModel(db *gorm.DB, f *Fields) (Record, error) {
	mk, err := query.GetOrCreateMake(db, f.MakeName)
	if err != nil {
		return nil, err
	}
	dt, err := query.GetOrCreateDeviceType(db, f.DeviceTypeName, mk.ID)
	if err != nil {
		return nil, err
	}
	if _, err := query.ModelByName(db, f.Name, mk.ID, dt.ID); err == nil {
		return nil, &ConflictError{fmt.Sprintf("Model with name '%s' already exists for make '%s', device type '%s'", f.Name, mk.Name, dt.Name)}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	height := 1
	if f.Height != nil && *f.Height > 0 {
		height = *f.Height
	}
	mdl := model.Model{Name: f.Name, MakeID: mk.ID, DeviceTypeID: dt.ID, Height: height}
	if err := db.Create(&mdl).Error; err != nil {
		return nil, err
	}
	return Record{
		"id": mdl.ID, "name": mdl.Name,
		"make_name": mk.Name, "devicetype_name": dt.Name, "height": mdl.Height,
	}, nil
}

func CreateAssetOwner(db *gorm.DB, f *Fields) (Record, error) {
	var locationID *uint
	locationName := ""
	if f.LocationName != "" {
		loc, err := query.LocationByName(db, f.LocationName)
		if err != nil {
			return nil, notFound(err, "Location", f.LocationName)
		}
		locationID = &loc.ID
		locationName = loc.Name
	}
	owner, err := query.GetOrCreateAssetOwner(db, f.Name, locationID)
	if err != nil {
		return nil, err
	}
	return Record{"id": owner.ID, "name": owner.Name, "location_name": locationName}, nil
}

func CreateApplication(db *gorm.DB, f *Fields) (Record, error) {
	owner, err := query.AssetOwnerByName(db, f.AssetOwnerName)
	if err != nil {
		return nil, notFound(err, "Asset owner", f.AssetOwnerName)
	}
	if _, err := query.ApplicationByName(db, f.Name, owner.ID); err == nil {
		return nil, &ConflictError{fmt.Sprintf("Application with name '%s' already exists for owner '%s'", f.Name, owner.Name)}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	app := model.ApplicationMapped{Name: f.Name, AssetOwnerID: owner.ID, Description: f.Description}
	if err := db.Create(&app).Error; err != nil {
		return nil, err
	}
	return Record{"id": app.ID, "name": app.Name, "asset_owner_name": owner.Name}, nil
}

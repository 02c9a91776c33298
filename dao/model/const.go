package model

// User role in the platform
type Role uint8

const (
	_ Role = iota
	RoleGuest
	RoleUser
	RoleAdmin
)

// EntityType enumerates every hierarchy and catalog entity kind the
// inventory tracks. The values double as listing keys and bulk upload
// selectors, so they are stable API strings.
type EntityType string

const (
	EntityLocations    EntityType = "locations"
	EntityBuildings    EntityType = "buildings"
	EntityWings        EntityType = "wings"
	EntityFloors       EntityType = "floors"
	EntityDatacenters  EntityType = "datacenters"
	EntityRacks        EntityType = "racks"
	EntityDevices      EntityType = "devices"
	EntityMakes        EntityType = "makes"
	EntityDeviceTypes  EntityType = "devicetypes"
	EntityModels       EntityType = "models"
	EntityAssetOwners  EntityType = "assetowners"
	EntityApplications EntityType = "applications"
)

// AllEntityTypes lists every kind in hierarchy order (parents before
// children), then the catalog kinds.
var AllEntityTypes = []EntityType{
	EntityLocations, EntityBuildings, EntityWings, EntityFloors,
	EntityDatacenters, EntityRacks, EntityDevices,
	EntityMakes, EntityDeviceTypes, EntityModels,
	EntityAssetOwners, EntityApplications,
}

// UploadModeWFD is the multi-entity bulk upload mode that derives a Wing,
// a Floor and a Datacenter from every input row. All other upload modes
// are the EntityType values themselves.
const UploadModeWFD = "entity_wfd"

// WFDChain is the fixed entity order for the multi-entity upload mode.
var WFDChain = []EntityType{EntityWings, EntityFloors, EntityDatacenters}

// Per-row processing outcome in a bulk upload job
type RowStatus string

const (
	RowPending RowStatus = "pending"
	RowSuccess RowStatus = "success"
	RowError   RowStatus = "error"
	RowSkipped RowStatus = "skipped"
)

// Audit log actions
const (
	ActionCreate = "create"
	ActionDelete = "delete"
)

package entities

import "dcim/dao/model"

// Fields carries the canonical values extracted for one entity from one
// upload row (or one API request body). Kind tags which entity the values
// describe; fields that do not apply to that kind stay zero. Pointer fields
// distinguish "absent" from a literal zero.
type Fields struct {
	Kind model.EntityType

	Name        string
	Description string
	Address     string
	BuildImage  string

	LocationName   string
	BuildingName   string
	WingName       string
	FloorName      string
	DatacenterName string
	RackName       string

	MakeName        string
	DeviceTypeName  string
	ModelName       string
	AssetOwnerName  string
	ApplicationName string

	Height        *int
	Position      *int
	SpaceRequired *int

	Face              string
	Status            string
	IP                string
	SerialNumber      string
	WarrantyStartDate string
	WarrantyEndDate   string
}

// Record is a JSON-ready snapshot of a created entity, returned by the
// creation handlers and stored in the audit log.
type Record map[string]any

// ID returns the record's numeric id, or zero when absent.
func (r Record) ID() uint {
	if id, ok := r["id"].(uint); ok {
		return id
	}
	return 0
}

// ConflictError reports a name collision within the entity's parent scope.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

package model

import (
	"time"

	"gorm.io/gorm"
)

// The physical hierarchy forms a strict parent chain:
// Location <- Building <- Wing <- Floor <- Datacenter <- Rack <- Device.
// A child name is unique only within its direct parent scope, which the
// composite unique indexes below enforce as a last line of defense against
// concurrent writers.

type Location struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;type:varchar(255);not null;comment:location name"`
	Description string `gorm:"type:varchar(255);comment:free-form description"`
	BuildImage  string `gorm:"type:varchar(512);comment:site image path"`

	Buildings []Building
}

type Building struct {
	gorm.Model
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_building_in_location;comment:building name"`
	LocationID  uint   `gorm:"not null;uniqueIndex:uniq_building_in_location"`
	Address     string `gorm:"type:varchar(255);comment:street address"`
	Description string `gorm:"type:varchar(255)"`

	Wings []Wing
}

type Wing struct {
	gorm.Model
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_wing_in_building;comment:wing name"`
	LocationID  uint   `gorm:"not null;index"`
	BuildingID  uint   `gorm:"not null;uniqueIndex:uniq_wing_in_building"`
	Description string `gorm:"type:varchar(255)"`

	Floors []Floor
}

type Floor struct {
	gorm.Model
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_floor_in_wing;comment:floor name"`
	LocationID  uint   `gorm:"not null;index"`
	BuildingID  uint   `gorm:"not null;index"`
	WingID      uint   `gorm:"not null;uniqueIndex:uniq_floor_in_wing"`
	Description string `gorm:"type:varchar(255)"`

	Datacenters []Datacenter
}

type Datacenter struct {
	gorm.Model
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_dc_in_floor;comment:datacenter name"`
	LocationID  uint   `gorm:"not null;index"`
	BuildingID  uint   `gorm:"not null;index"`
	WingID      uint   `gorm:"not null;index"`
	FloorID     uint   `gorm:"not null;uniqueIndex:uniq_dc_in_floor"`
	Description string `gorm:"type:varchar(255)"`

	Racks []Rack
}

type Rack struct {
	gorm.Model
	Name         string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_rack_in_dc;comment:rack name"`
	LocationID   uint   `gorm:"not null;index"`
	BuildingID   uint   `gorm:"not null;index"`
	WingID       uint   `gorm:"not null;index"`
	FloorID      uint   `gorm:"not null;index"`
	DatacenterID uint   `gorm:"not null;uniqueIndex:uniq_rack_in_dc"`
	Description  string `gorm:"type:varchar(255)"`

	Height    int  `gorm:"type:int;not null;comment:total unit slots (U)"`
	SpaceUsed int  `gorm:"type:int;not null;default:0;comment:unit slots taken by devices"`
	// Derived column; recomputed from height-space_used after every
	// capacity mutation. Nil means not yet tracked.
	SpaceAvailable *int `gorm:"type:int;comment:unit slots still free"`

	Devices []Device
}

type Device struct {
	gorm.Model
	Name         string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_device_in_rack;comment:host name"`
	LocationID   uint   `gorm:"not null;index"`
	BuildingID   uint   `gorm:"not null;index"`
	WingID       uint   `gorm:"not null;index"`
	FloorID      uint   `gorm:"not null;index"`
	DatacenterID uint   `gorm:"not null;index"`
	RackID       uint   `gorm:"not null;uniqueIndex:uniq_device_in_rack"`

	MakeID        uint  `gorm:"not null;index"`
	DeviceTypeID  uint  `gorm:"not null;index"`
	ModelID       uint  `gorm:"not null;index"`
	AssetOwnerID  *uint `gorm:"index"`
	ApplicationID *uint `gorm:"index"`

	// Occupies rack units [position, position+space_required-1]
	Position      int `gorm:"type:int;not null;comment:first rack unit occupied"`
	SpaceRequired int `gorm:"type:int;not null;default:1;comment:unit slots occupied"`
	// Pointer so a rear-facing (false) value survives the insert; gorm
	// drops zero-value fields that carry a default tag.
	FaceFront *bool `gorm:"not null;default:true;comment:mounted on the front face"`

	Status            string     `gorm:"type:varchar(50);comment:operational status"`
	IP                string     `gorm:"type:varchar(64);comment:management IP"`
	SerialNumber      string     `gorm:"type:varchar(128);comment:vendor serial number"`
	Description       string     `gorm:"type:varchar(255)"`
	WarrantyStartDate *time.Time `gorm:"type:date"`
	WarrantyEndDate   *time.Time `gorm:"type:date"`
}

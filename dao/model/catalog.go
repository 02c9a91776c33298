package model

import "gorm.io/gorm"

// Catalog entities cut across the physical hierarchy. A Device references
// Make, DeviceType and Model, which must agree with each other:
// DeviceType.MakeID == Make.ID, Model.MakeID == Make.ID and
// Model.DeviceTypeID == DeviceType.ID.

type Make struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;type:varchar(255);not null;comment:manufacturer name"`

	DeviceTypes []DeviceType
	Models      []Model
}

type DeviceType struct {
	gorm.Model
	Name   string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_devicetype_in_make;comment:asset type (server, switch...)"`
	MakeID uint   `gorm:"not null;uniqueIndex:uniq_devicetype_in_make"`

	Models []Model
}

type Model struct {
	gorm.Model
	Name         string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_model_in_make_type;comment:model name"`
	MakeID       uint   `gorm:"not null;uniqueIndex:uniq_model_in_make_type"`
	DeviceTypeID uint   `gorm:"not null;uniqueIndex:uniq_model_in_make_type"`
	Height       int    `gorm:"type:int;not null;default:1;comment:default unit slots a device of this model occupies"`
}

type AssetOwner struct {
	gorm.Model
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_owner_in_location;comment:owning team or org"`
	LocationID  *uint  `gorm:"uniqueIndex:uniq_owner_in_location"`
	Description string `gorm:"type:varchar(255)"`

	Applications []ApplicationMapped
}

type ApplicationMapped struct {
	gorm.Model
	Name         string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_app_in_owner;comment:application name"`
	AssetOwnerID uint   `gorm:"not null;uniqueIndex:uniq_app_in_owner"`
	Description  string `gorm:"type:varchar(255)"`
}

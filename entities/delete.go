package entities

import (
	"fmt"

	"dcim/dao/model"
	"dcim/rackspace"

	"gorm.io/gorm"
)

// DeleteDevice removes a device and returns its units to the rack.
// The caller runs this inside a transaction.
func DeleteDevice(db *gorm.DB, deviceID uint) (Record, error) {
	var device model.Device
	if err := db.First(&device, deviceID).Error; err != nil {
		return nil, notFound(err, "Device", fmt.Sprintf("%d", deviceID))
	}
	var rack model.Rack
	if err := db.First(&rack, device.RackID).Error; err != nil {
		return nil, err
	}

	if err := db.Delete(&device).Error; err != nil {
		return nil, err
	}
	rackspace.ReleaseRackCapacity(&rack, device.SpaceRequired)
	if err := db.Save(&rack).Error; err != nil {
		return nil, err
	}
	return Record{
		"id": device.ID, "name": device.Name,
		"rack_name":      rack.Name,
		"space_released": device.SpaceRequired,
	}, nil
}

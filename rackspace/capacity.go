// Package rackspace tracks unit-slot usage inside racks and validates
// device placement. It only mutates the Rack fields in memory; persisting
// the rack row (and any device rows) is the caller's responsibility.
package rackspace

import (
	"fmt"

	"dcim/dao/model"

	"gorm.io/gorm"
)

// InsufficientSpaceError reports a reservation larger than the rack's
// remaining capacity.
type InsufficientSpaceError struct {
	Rack      string
	Available int
	Required  int
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("Rack '%s' only has %dU available, %dU required",
		e.Rack, e.Available, e.Required)
}

// OverlapError reports a placement that intersects another device's unit
// range.
type OverlapError struct {
	Device string
	From   int
	To     int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("Units %d-%d are already occupied by device '%s'",
		e.From, e.To, e.Device)
}

func recalcAvailable(rack *model.Rack) {
	avail := rack.Height - rack.SpaceUsed
	if avail < 0 {
		avail = 0
	}
	rack.SpaceAvailable = &avail
}

// EnsureRackCapacity verifies the rack can absorb spaceRequired more units.
// A stale SpaceAvailable is recomputed from height and usage first.
func EnsureRackCapacity(rack *model.Rack, spaceRequired int) error {
	if rack.SpaceAvailable == nil {
		recalcAvailable(rack)
	}
	if spaceRequired > *rack.SpaceAvailable {
		return &InsufficientSpaceError{
			Rack:      rack.Name,
			Available: *rack.SpaceAvailable,
			Required:  spaceRequired,
		}
	}
	return nil
}

// EnsureContinuousSpace verifies that the contiguous unit range
// [position, position+spaceRequired-1] fits inside the rack and does not
// intersect any existing device. excludeDeviceID skips the device being
// moved during an update (0 means none).
func EnsureContinuousSpace(db *gorm.DB, rack *model.Rack, position *int, spaceRequired int, excludeDeviceID uint) error {
	if position == nil {
		return fmt.Errorf("Position is required for rack placement")
	}
	if *position < 1 {
		return fmt.Errorf("Position must be >= 1")
	}
	if rack.Height <= 0 {
		return fmt.Errorf("Rack '%s' has no height defined", rack.Name)
	}
	start := *position
	end := start + spaceRequired - 1
	if end > rack.Height {
		return fmt.Errorf("Device placement exceeds rack height (units %d-%d, rack is %dU)",
			start, end, rack.Height)
	}

	tx := db.Model(&model.Device{}).Where("rack_id = ?", rack.ID)
	if excludeDeviceID != 0 {
		tx = tx.Where("id <> ?", excludeDeviceID)
	}
	var devices []model.Device
	if err := tx.Find(&devices).Error; err != nil {
		return err
	}
	for _, dev := range devices {
		devStart := dev.Position
		devEnd := dev.Position + dev.SpaceRequired - 1
		if start <= devEnd && devStart <= end {
			return &OverlapError{Device: dev.Name, From: devStart, To: devEnd}
		}
	}
	return nil
}

// ReserveRackCapacity accounts for a newly placed device. Non-positive
// amounts are ignored.
func ReserveRackCapacity(rack *model.Rack, spaceRequired int) {
	if spaceRequired <= 0 {
		return
	}
	rack.SpaceUsed += spaceRequired
	recalcAvailable(rack)
}

// ReleaseRackCapacity gives units back after a device is removed or moved
// away. Usage never drops below zero.
func ReleaseRackCapacity(rack *model.Rack, spaceReleased int) {
	if spaceReleased <= 0 {
		return
	}
	rack.SpaceUsed -= spaceReleased
	if rack.SpaceUsed < 0 {
		rack.SpaceUsed = 0
	}
	recalcAvailable(rack)
}

// SyncRackUsage repairs bookkeeping drift by recomputing usage from the
// devices actually stored in the rack.
func SyncRackUsage(db *gorm.DB, rack *model.Rack) error {
	var total *int
	err := db.Model(&model.Device{}).
		Where("rack_id = ?", rack.ID).
		Select("SUM(space_required)").
		Scan(&total).Error
	if err != nil {
		return err
	}
	if total == nil {
		rack.SpaceUsed = 0
	} else {
		rack.SpaceUsed = *total
	}
	recalcAvailable(rack)
	return nil
}

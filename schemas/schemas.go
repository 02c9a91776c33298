// Package schemas declares per-kind field rules and applies them through
// go-playground/validator. Validation is purely in-memory; referential
// checks against the database belong to the creation handlers.
package schemas

import (
	"fmt"
	"strings"

	"dcim/dao/model"
	"dcim/entities"

	"github.com/go-playground/validator/v10"
)

// Rule binds one canonical field name to a validator tag.
type Rule struct {
	Field string
	Tag   string
}

// Schema is the ordered rule list for one entity kind.
type Schema struct {
	Rules []Rule
}

// ValidationError reports the first rule a row's fields violate.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Registry holds one schema per entity kind. Immutable after construction.
type Registry struct {
	validate *validator.Validate
	schemas  map[model.EntityType]Schema
}

func NewRegistry(schemas map[model.EntityType]Schema) *Registry {
	return &Registry{
		validate: validator.New(),
		schemas:  schemas,
	}
}

// Default returns the registry covering all twelve entity kinds.
func Default() *Registry {
	name := Rule{Field: "name", Tag: "required,max=255"}
	return NewRegistry(map[model.EntityType]Schema{
		model.EntityLocations: {Rules: []Rule{name}},
		model.EntityBuildings: {Rules: []Rule{
			name,
			{Field: "location_name", Tag: "required,max=255"},
		}},
		model.EntityWings: {Rules: []Rule{
			name,
			{Field: "location_name", Tag: "required,max=255"},
			{Field: "building_name", Tag: "required,max=255"},
		}},
		model.EntityFloors: {Rules: []Rule{
			name,
			{Field: "location_name", Tag: "required,max=255"},
			{Field: "building_name", Tag: "required,max=255"},
			{Field: "wing_name", Tag: "required,max=255"},
		}},
		model.EntityDatacenters: {Rules: []Rule{
			name,
			{Field: "location_name", Tag: "required,max=255"},
			{Field: "building_name", Tag: "required,max=255"},
			{Field: "wing_name", Tag: "required,max=255"},
			{Field: "floor_name", Tag: "required,max=255"},
		}},
		model.EntityRacks: {Rules: []Rule{
			name,
			{Field: "location_name", Tag: "required,max=255"},
			{Field: "building_name", Tag: "required,max=255"},
			{Field: "wing_name", Tag: "required,max=255"},
			{Field: "floor_name", Tag: "required,max=255"},
			{Field: "datacenter_name", Tag: "required,max=255"},
			{Field: "height", Tag: "required,min=1"},
		}},
		model.EntityDevices: {Rules: []Rule{
			name,
			{Field: "location_name", Tag: "required,max=255"},
			{Field: "building_name", Tag: "required,max=255"},
			{Field: "wing_name", Tag: "required,max=255"},
			{Field: "floor_name", Tag: "required,max=255"},
			{Field: "datacenter_name", Tag: "required,max=255"},
			{Field: "rack_name", Tag: "required,max=255"},
			{Field: "make_name", Tag: "required,max=255"},
			{Field: "devicetype_name", Tag: "required,max=255"},
			{Field: "model_name", Tag: "required,max=255"},
			{Field: "position", Tag: "omitempty,min=1"},
			{Field: "ip", Tag: "omitempty,ip"},
			{Field: "warranty_start_date", Tag: "omitempty,datetime=2006-01-02"},
			{Field: "warranty_end_date", Tag: "omitempty,datetime=2006-01-02"},
		}},
		model.EntityMakes: {Rules: []Rule{name}},
		model.EntityDeviceTypes: {Rules: []Rule{
			name,
			{Field: "make_name", Tag: "required,max=255"},
		}},
		model.EntityModels: {Rules: []Rule{
			name,
			{Field: "make_name", Tag: "required,max=255"},
			{Field: "devicetype_name", Tag: "required,max=255"},
			{Field: "height", Tag: "omitempty,min=1"},
		}},
		model.EntityAssetOwners: {Rules: []Rule{name}},
		model.EntityApplications: {Rules: []Rule{
			name,
			{Field: "asset_owner_name", Tag: "required,max=255"},
		}},
	})
}

// Validate applies the kind's rules in order and returns the first
// violation. Unknown kinds validate vacuously.
func (r *Registry) Validate(f *entities.Fields) error {
	schema, ok := r.schemas[f.Kind]
	if !ok {
		return nil
	}
	for _, rule := range schema.Rules {
		value := fieldValue(f, rule.Field)
		if err := r.validate.Var(value, rule.Tag); err != nil {
			return &ValidationError{
				Field:   rule.Field,
				Message: violationMessage(rule, value),
			}
		}
	}
	return nil
}

// MissingRequired lists the required fields the row did not fill, used by
// chain uploads to skip incomplete levels instead of failing the row.
func (r *Registry) MissingRequired(f *entities.Fields) []string {
	schema, ok := r.schemas[f.Kind]
	if !ok {
		return nil
	}
	var missing []string
	for _, rule := range schema.Rules {
		if !strings.Contains(rule.Tag, "required") {
			continue
		}
		if err := r.validate.Var(fieldValue(f, rule.Field), "required"); err != nil {
			missing = append(missing, rule.Field)
		}
	}
	return missing
}

func violationMessage(rule Rule, value any) string {
	switch {
	case strings.Contains(rule.Tag, "required") && isZero(value):
		return fmt.Sprintf("Field '%s' is required", rule.Field)
	case strings.Contains(rule.Tag, "datetime"):
		return fmt.Sprintf("Field '%s' must be a date in YYYY-MM-DD format", rule.Field)
	case strings.Contains(rule.Tag, "ip"):
		return fmt.Sprintf("Field '%s' must be a valid IP address", rule.Field)
	case strings.Contains(rule.Tag, "min="):
		return fmt.Sprintf("Field '%s' is below the allowed minimum", rule.Field)
	case strings.Contains(rule.Tag, "max="):
		return fmt.Sprintf("Field '%s' exceeds the allowed length", rule.Field)
	}
	return fmt.Sprintf("Field '%s' is invalid", rule.Field)
}

func isZero(value any) bool {
	switch v := value.(type) {
	case string:
		return v == ""
	case int:
		return v == 0
	}
	return false
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// fieldValue maps a canonical field name to its value on Fields. Absent
// numeric fields surface as zero so "required" and "omitempty" behave.
func fieldValue(f *entities.Fields, field string) any {
	switch field {
	case "name":
		return f.Name
	case "description":
		return f.Description
	case "address":
		return f.Address
	case "location_name":
		return f.LocationName
	case "building_name":
		return f.BuildingName
	case "wing_name":
		return f.WingName
	case "floor_name":
		return f.FloorName
	case "datacenter_name":
		return f.DatacenterName
	case "rack_name":
		return f.RackName
	case "make_name":
		return f.MakeName
	case "devicetype_name":
		return f.DeviceTypeName
	case "model_name":
		return f.ModelName
	case "asset_owner_name":
		return f.AssetOwnerName
	case "application_name":
		return f.ApplicationName
	case "height":
		return intOrZero(f.Height)
	case "position":
		return intOrZero(f.Position)
	case "space_required":
		return intOrZero(f.SpaceRequired)
	case "face":
		return f.Face
	case "status":
		return f.Status
	case "ip":
		return f.IP
	case "serial_number":
		return f.SerialNumber
	case "warranty_start_date":
		return f.WarrantyStartDate
	case "warranty_end_date":
		return f.WarrantyEndDate
	}
	return nil
}

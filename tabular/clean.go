package tabular

import (
	"strconv"
	"strings"
)

// columnAliases maps normalized source column names to canonical field
// names. Unknown columns are kept under their normalized name (with spaces
// replaced by underscores) for format-specific extractors.
var columnAliases = map[string]string{
	"name":        "name",
	"host name":   "name",
	"device name": "name",

	"location":      "location_name",
	"location name": "location_name",
	"building":      "building_name",
	"building name": "building_name",
	"wing":          "wing_name",
	"wing name":     "wing_name",
	"floor":         "floor_name",
	"floor name":    "floor_name",
	"datacenter":      "datacenter_name",
	"datacenter name": "datacenter_name",
	"rack":          "rack_name",
	"rack name":     "rack_name",

	"make":         "make_name",
	"make name":    "make_name",
	"manufacturer": "make_name",
	"device type":  "devicetype_name",
	"devicetype name": "devicetype_name",
	"asset type":      "devicetype_name",
	"model":        "model_name",
	"model name":   "model_name",
	"model height": "model_height",
	"asset owner":      "asset_owner_name",
	"asset owner name": "asset_owner_name",
	"application":      "application_name",
	"application name": "application_name",

	"height":      "height",
	"rack height": "height",
	"position":    "position",
	"space required": "space_required",
	"size":           "space_required",
	"face":        "face",
	"status":      "status",
	"description": "description",
	"address":     "address",
	"build image": "build_image",
	"ip":          "ip",
	"ip address":  "ip",
	"serial":        "serial_number",
	"serial number": "serial_number",

	"warranty start":      "warranty_start_date",
	"warranty start date": "warranty_start_date",
	"warranty end":        "warranty_end_date",
	"warranty end date":   "warranty_end_date",
}

// CleanRow maps a raw row onto canonical field names, trims strings,
// coerces integer-looking values to int and drops empty cells. It is total:
// unparseable values pass through as strings for the schema layer to
// reject.
func CleanRow(raw RawRow) map[string]any {
	cleaned := make(map[string]any, len(raw))
	for col, value := range raw {
		value = strings.TrimSpace(value)
		if isEmptyCell(value) {
			continue
		}
		key, known := columnAliases[col]
		if !known {
			key = strings.ReplaceAll(col, " ", "_")
		}
		if n, ok := intValue(value); ok {
			cleaned[key] = n
		} else {
			cleaned[key] = value
		}
	}
	return cleaned
}

func isEmptyCell(value string) bool {
	switch strings.ToLower(value) {
	case "", "nan", "null", "none", "<nil>":
		return true
	}
	return false
}

// intValue converts "42", "42.0" and similar to an int. Non-integral
// numbers and everything else are left alone.
func intValue(value string) (int, bool) {
	if n, err := strconv.Atoi(value); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && f == float64(int(f)) {
		return int(f), true
	}
	return 0, false
}

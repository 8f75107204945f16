package entity

import "strings"

// Field identifies one input of the aquarium form.
type Field int

const (
	// FieldUnknown is returned when a name does not match any form input.
	FieldUnknown Field = iota
	FieldIdentifier
	FieldName
	FieldLocation
	FieldTankSize
	FieldWaterType
	FieldMaintenance
	FieldTemperature
	FieldFeeding
)

// Fields lists every form input in display order.
var Fields = []Field{
	FieldIdentifier,
	FieldName,
	FieldLocation,
	FieldTankSize,
	FieldWaterType,
	FieldMaintenance,
	FieldTemperature,
	FieldFeeding,
}

// Key returns the wire name used in request payloads and error maps.
func (f Field) Key() string {
	switch f {
	case FieldIdentifier:
		return "identifier"
	case FieldName:
		return "name"
	case FieldLocation:
		return "location"
	case FieldTankSize:
		return "tank_size"
	case FieldWaterType:
		return "water_type"
	case FieldMaintenance:
		return "maintenance"
	case FieldTemperature:
		return "temperature"
	case FieldFeeding:
		return "feeding"
	default:
		return "unknown"
	}
}

// Label returns the human readable name used in validation messages.
func (f Field) Label() string {
	switch f {
	case FieldIdentifier:
		return "Aquarium ID"
	case FieldName:
		return "Aquarium name"
	case FieldLocation:
		return "Location"
	case FieldTankSize:
		return "Tank size"
	case FieldWaterType:
		return "Water type"
	case FieldMaintenance:
		return "Maintenance"
	case FieldTemperature:
		return "Temperature"
	case FieldFeeding:
		return "Feeding"
	default:
		return "Field"
	}
}

func (f Field) String() string {
	return f.Key()
}

// ParseField maps a wire key ("tank_size") or its camelCase form ("tankSize")
// to a Field. Matching is case-insensitive.
func ParseField(s string) Field {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	switch norm {
	case "identifier", "id", "aquariumid":
		return FieldIdentifier
	case "name", "aquariumname":
		return FieldName
	case "location":
		return FieldLocation
	case "tanksize":
		return FieldTankSize
	case "watertype":
		return FieldWaterType
	case "maintenance":
		return FieldMaintenance
	case "temperature":
		return FieldTemperature
	case "feeding":
		return FieldFeeding
	default:
		return FieldUnknown
	}
}

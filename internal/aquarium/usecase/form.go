package usecase

import (
	"github.com/shandysiswandi/aquarium/internal/aquarium/entity"
	"github.com/shandysiswandi/aquarium/internal/aquarium/rule"
	"github.com/shandysiswandi/aquarium/internal/pkg/goerror"
)

// AquariumForm is the raw text of the aquarium form, one string per field.
// Values are checked exactly as typed.
type AquariumForm struct {
	ID          string `json:"identifier" validate:"aquarium=identifier"`
	Name        string `json:"name" validate:"aquarium=name"`
	Location    string `json:"location" validate:"aquarium=location"`
	TankSize    string `json:"tank_size" validate:"aquarium=tank_size"`
	WaterType   string `json:"water_type" validate:"aquarium=water_type"`
	Maintenance string `json:"maintenance" validate:"aquarium=maintenance"`
	Temperature string `json:"temperature" validate:"aquarium=temperature"`
	Feeding     string `json:"feeding" validate:"aquarium=feeding"`
}

// Value returns the raw text typed for f.
func (f AquariumForm) Value(field entity.Field) string {
	switch field {
	case entity.FieldIdentifier:
		return f.ID
	case entity.FieldName:
		return f.Name
	case entity.FieldLocation:
		return f.Location
	case entity.FieldTankSize:
		return f.TankSize
	case entity.FieldWaterType:
		return f.WaterType
	case entity.FieldMaintenance:
		return f.Maintenance
	case entity.FieldTemperature:
		return f.Temperature
	case entity.FieldFeeding:
		return f.Feeding
	default:
		return ""
	}
}

type aquariumIDInput struct {
	ID string `json:"identifier" validate:"aquarium=identifier"`
}

// toAquarium converts a form that already passed validation.
func (f AquariumForm) toAquarium() (*entity.Aquarium, error) {
	tankSize, err := rule.ParseTankSize(f.TankSize)
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	temperature, ok := rule.ParseTemperature(f.Temperature)
	if !ok {
		return nil, goerror.NewInvalidInput(nil, entity.FieldTemperature.Key(),
			rule.Temperature(f.Temperature).Message)
	}

	return entity.NewAquarium(f.ID, f.Name, f.Location, tankSize, f.WaterType, f.Maintenance, temperature, f.Feeding), nil
}

// applyField sets one already validated value on a.
func applyField(a *entity.Aquarium, field entity.Field, raw string) error {
	switch field {
	case entity.FieldName:
		a.SetName(raw)
	case entity.FieldLocation:
		a.SetLocation(raw)
	case entity.FieldWaterType:
		a.SetWaterType(raw)
	case entity.FieldMaintenance:
		a.SetMaintenance(raw)
	case entity.FieldFeeding:
		a.SetFeeding(raw)
	case entity.FieldTankSize:
		v, err := rule.ParseTankSize(raw)
		if err != nil {
			return err
		}
		a.SetTankSize(v)
	case entity.FieldTemperature:
		v, ok := rule.ParseTemperature(raw)
		if !ok {
			return rule.Temperature(raw).Err()
		}
		a.SetTemperature(v)
	case entity.FieldIdentifier:
		a.SetID(raw)
	}
	return nil
}

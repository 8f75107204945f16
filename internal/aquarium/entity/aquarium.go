package entity

import "time"

// Aquarium is one inventory record. It holds values that the caller has
// already validated; neither the constructor nor the setters check them.
type Aquarium struct {
	id          string
	name        string
	location    string
	tankSize    float64
	waterType   string
	maintenance string
	temperature float64
	feeding     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAquarium assembles a record from validated values.
func NewAquarium(
	id, name, location string,
	tankSize float64,
	waterType, maintenance string,
	temperature float64,
	feeding string,
) *Aquarium {
	return &Aquarium{
		id:          id,
		name:        name,
		location:    location,
		tankSize:    tankSize,
		waterType:   waterType,
		maintenance: maintenance,
		temperature: temperature,
		feeding:     feeding,
	}
}

func (a *Aquarium) ID() string           { return a.id }
func (a *Aquarium) Name() string         { return a.name }
func (a *Aquarium) Location() string     { return a.location }
func (a *Aquarium) TankSize() float64    { return a.tankSize }
func (a *Aquarium) WaterType() string    { return a.waterType }
func (a *Aquarium) Maintenance() string  { return a.maintenance }
func (a *Aquarium) Temperature() float64 { return a.temperature }
func (a *Aquarium) Feeding() string      { return a.feeding }

func (a *Aquarium) SetID(v string)           { a.id = v }
func (a *Aquarium) SetName(v string)         { a.name = v }
func (a *Aquarium) SetLocation(v string)     { a.location = v }
func (a *Aquarium) SetTankSize(v float64)    { a.tankSize = v }
func (a *Aquarium) SetWaterType(v string)    { a.waterType = v }
func (a *Aquarium) SetMaintenance(v string)  { a.maintenance = v }
func (a *Aquarium) SetTemperature(v float64) { a.temperature = v }
func (a *Aquarium) SetFeeding(v string)      { a.feeding = v }

// Clone returns an independent copy, used by stores that must not share
// records with their callers.
func (a *Aquarium) Clone() *Aquarium {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// AquariumListFilter narrows a listing.
type AquariumListFilter struct {
	Search    string // matched against name and location, case-insensitive
	WaterType string
	Offset    int32
	Limit     int32
}

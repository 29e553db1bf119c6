package persistence

import "time"

// FuelStationModel represents the fuel_stations table
type FuelStationModel struct {
	ID              int64      `gorm:"column:id;primaryKey;autoIncrement"`
	OPISTruckstopID int64      `gorm:"column:opis_truckstop_id;not null"`
	TruckstopName   string     `gorm:"column:truckstop_name;size:255;not null"`
	Address         string     `gorm:"column:address;size:255;not null"`
	City            string     `gorm:"column:city;size:100;not null"`
	State           string     `gorm:"column:state;size:2;not null;index"`
	RackID          *int64     `gorm:"column:rack_id"`
	RetailPrice     float64    `gorm:"column:retail_price;not null"`
	CanonicalKey    string     `gorm:"column:canonical_key;size:400;uniqueIndex;not null"`
	Latitude        *float64   `gorm:"column:latitude;index:idx_fuel_stations_lat_lon"`
	Longitude       *float64   `gorm:"column:longitude;index:idx_fuel_stations_lat_lon"`
	GeocodeAttempts int        `gorm:"column:geocode_attempts;not null;default:0"`
	IsGeocodeFailed bool       `gorm:"column:is_geocode_failed;not null;default:false"`
	LastGeocodedAt  *time.Time `gorm:"column:last_geocoded_at"`
	CreatedAt       time.Time  `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (FuelStationModel) TableName() string {
	return "fuel_stations"
}

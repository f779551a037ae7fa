package models

import (
	"time"

	"gorm.io/gorm"
)

// RawPosition is one row of an ingested AIS batch before validation.
// Upstream feeds deliver every column as text, so latitude/longitude stay
// strings until the validator coerces them. Descriptive fields vary by
// source and are all optional.
type RawPosition struct {
	MMSI      string     `json:"mmsi"`
	Timestamp *time.Time `json:"timestamp"`
	Lat       *string    `json:"lat"`
	Lon       *string    `json:"lon"`
	SOG       *float64   `json:"sog"`
	COG       *float64   `json:"cog"`
	Heading   *float64   `json:"heading"`

	VesselName  *string `json:"vessel_name"`
	IMO         *string `json:"imo"`
	CallSign    *string `json:"call_sign"`
	VesselType  *string `json:"vessel_type"`
	Length      *string `json:"length"`
	Width       *string `json:"width"`
	Draft       *string `json:"draft"`
	Cargo       *string `json:"cargo"`
	Destination *string `json:"destination"`
	ETA         *string `json:"eta"`
	NavStatus   *string `json:"nav_status"`
}

// Position is a validated AIS position record. Rows are written once per
// ingestion batch and never updated afterward.
type Position struct {
	gorm.Model
	MMSI      string     `json:"mmsi" gorm:"index:idx_mmsi_time,priority:1;size:9;not null"`
	Timestamp *time.Time `json:"timestamp" gorm:"index:idx_mmsi_time,priority:2;not null"`
	Lat       *float64   `json:"lat"`
	Lon       *float64   `json:"lon"`
	SOG       *float64   `json:"sog"`
	COG       *float64   `json:"cog"`
	Heading   *float64   `json:"heading"`

	VesselName  *string `json:"vessel_name"`
	IMO         *string `json:"imo"`
	CallSign    *string `json:"call_sign"`
	VesselType  *string `json:"vessel_type"`
	Length      *string `json:"length"`
	Width       *string `json:"width"`
	Draft       *string `json:"draft"`
	Cargo       *string `json:"cargo"`
	Destination *string `json:"destination"`
	ETA         *string `json:"eta"`
	NavStatus   *string `json:"nav_status"`

	Flags PositionFlag `json:"flags" gorm:"not null;default:0"`
}

func (Position) TableName() string {
	return "positions"
}

// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Enums
type ReservationStatus string

const (
	ReservationStatusReserved ReservationStatus = "reserved"
	ReservationStatusBought   ReservationStatus = "bought"
	ReservationStatusSold     ReservationStatus = "sold"
)

// Next returns the only status a reservation may move to from s.
func (s ReservationStatus) Next() (ReservationStatus, bool) {
	switch s {
	case ReservationStatusReserved:
		return ReservationStatusBought, true
	case ReservationStatusBought:
		return ReservationStatusSold, true
	default:
		return "", false
	}
}

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusReserved, ReservationStatusBought, ReservationStatusSold:
		return true
	}
	return false
}

type TeamType string

const (
	TeamTypeA TeamType = "A"
	TeamTypeB TeamType = "B"
	TeamTypeC TeamType = "C"
)

func (t TeamType) Valid() bool {
	switch t {
	case TeamTypeA, TeamTypeB, TeamTypeC:
		return true
	}
	return false
}

// internal/models/referral_profit_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReferralProfitLog is an append-only record of one commission paid to an
// upline user for a downline user's sold reservation.
type ReferralProfitLog struct {
	BaseModel
	UplineUser    uuid.UUID       `json:"uplineUser" gorm:"column:upline_user_id;type:uuid;not null;index"`
	DownlineUser  uuid.UUID       `json:"downlineUser" gorm:"column:downline_user_id;type:uuid;not null;index"`
	ReservationID uuid.UUID       `json:"reservationId" gorm:"type:uuid;not null;index"`
	Date          time.Time       `json:"date" gorm:"not null"`
	TeamType      TeamType        `json:"teamType" gorm:"type:varchar(1);not null"`
	Profit        decimal.Decimal `json:"profit" gorm:"type:decimal(20,2)"`
	Percentage    decimal.Decimal `json:"percentage" gorm:"type:decimal(5,2)"`
	Commission    decimal.Decimal `json:"commission" gorm:"type:decimal(20,2)"`
}

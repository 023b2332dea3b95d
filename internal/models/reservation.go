// internal/models/reservation.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Reservation struct {
	BaseModel
	NFTID                     uuid.UUID         `json:"nftId" gorm:"column:nft_id;type:uuid;index"`
	UserID                    uuid.UUID         `json:"userId" gorm:"type:uuid;index"`
	ReservationDate           time.Time         `json:"reservationDate" gorm:"not null"`
	ReservationTime           string            `json:"reservationTime" gorm:"size:64;not null"`
	Status                    ReservationStatus `json:"status" gorm:"type:varchar(20);default:'reserved';index"`
	ReferralProfitDistributed bool              `json:"referralProfitDistributed" gorm:"default:false"`
	NFTName                   string            `json:"nftName" gorm:"column:nft_name;size:255"`
	BuyAmount                 *decimal.Decimal  `json:"buyAmount" gorm:"type:decimal(20,2)"`
	BuyDate                   *time.Time        `json:"buyDate"`
	SellDate                  *time.Time        `json:"sellDate"`
	Profit                    *decimal.Decimal  `json:"profit" gorm:"type:decimal(20,2)"`
}

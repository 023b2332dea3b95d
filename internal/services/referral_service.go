// internal/services/referral_service.go
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/config"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/models"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/monitoring"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/repository"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/utils"
)

var hundred = decimal.NewFromInt(100)

type ReferralService struct {
	reservations repository.Store[models.Reservation]
	logs         repository.Store[models.ReferralProfitLog]
	tx           repository.Transactor
	percentages  map[models.TeamType]decimal.Decimal
	now          func() time.Time
}

type UplineShare struct {
	UserID   string `json:"userId" validate:"required,uuid"`
	TeamType string `json:"teamType" validate:"required,team_type"`
}

type DistributeProfitRequest struct {
	Uplines []UplineShare `json:"uplines" validate:"required,min=1,max=3,dive"`
	Date    *time.Time    `json:"date,omitempty"`
}

type ReferralProfitFilter struct {
	utils.PaginationParams
	UplineUser    string `json:"uplineUser" validate:"omitempty,uuid"`
	DownlineUser  string `json:"downlineUser" validate:"omitempty,uuid"`
	ReservationID string `json:"reservationId" validate:"omitempty,uuid"`
	TeamType      string `json:"teamType" validate:"omitempty,team_type"`
	Sort          string `json:"sort"`
}

func NewReferralService(
	reservations repository.Store[models.Reservation],
	logs repository.Store[models.ReferralProfitLog],
	tx repository.Transactor,
	cfg config.ReferralConfig,
) *ReferralService {
	return &ReferralService{
		reservations: reservations,
		logs:         logs,
		tx:           tx,
		percentages: map[models.TeamType]decimal.Decimal{
			models.TeamTypeA: decimal.NewFromFloat(cfg.TeamAPercent),
			models.TeamTypeB: decimal.NewFromFloat(cfg.TeamBPercent),
			models.TeamTypeC: decimal.NewFromFloat(cfg.TeamCPercent),
		},
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Commission is profit * percentage / 100 rounded to cents. A loss or a zero
// profit pays nothing.
func Commission(profit, percentage decimal.Decimal) decimal.Decimal {
	if !profit.IsPositive() {
		return decimal.Zero
	}
	return profit.Mul(percentage).Div(hundred).Round(2)
}

// DistributeProfit appends one log per upline for a sold reservation and marks
// the reservation as distributed. It succeeds at most once per reservation.
func (s *ReferralService) DistributeProfit(ctx context.Context, reservationID string, req *DistributeProfitRequest) ([]models.ReferralProfitLog, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	teams := make(map[string]bool, len(req.Uplines))
	users := make(map[uuid.UUID]bool, len(req.Uplines))
	for _, upline := range req.Uplines {
		if teams[upline.TeamType] {
			return nil, utils.NewValidationError("Each team type may appear only once", nil)
		}
		teams[upline.TeamType] = true

		// One row per (upline, downline, reservation).
		userID := uuid.MustParse(upline.UserID)
		if users[userID] {
			return nil, utils.NewValidationError("Each upline may appear only once", nil)
		}
		users[userID] = true
	}

	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, utils.NewNotFoundError(msgReservationNotFound)
	}

	date := s.now()
	if req.Date != nil {
		date = req.Date.UTC()
	}

	var created []models.ReferralProfitLog
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		reservation, err := s.reservations.FindByIDForUpdate(ctx, id)
		if err != nil {
			return lookupError(err, msgReservationNotFound)
		}

		if reservation.Status != models.ReservationStatusSold {
			return utils.NewConflictError("Referral profit can only be distributed for sold reservations")
		}
		if reservation.ReferralProfitDistributed {
			return utils.NewConflictError("Referral profit has already been distributed")
		}

		profit := decimal.Zero
		if reservation.Profit != nil {
			profit = *reservation.Profit
		}

		for _, upline := range req.Uplines {
			if uuid.MustParse(upline.UserID) == reservation.UserID {
				return utils.NewValidationError("An upline cannot be the reservation owner", nil)
			}
		}

		created = make([]models.ReferralProfitLog, 0, len(req.Uplines))
		for _, upline := range req.Uplines {
			uplineID := uuid.MustParse(upline.UserID)
			team := models.TeamType(upline.TeamType)
			percentage := s.percentages[team]

			entry := models.ReferralProfitLog{
				UplineUser:    uplineID,
				DownlineUser:  reservation.UserID,
				ReservationID: reservation.ID,
				Date:          date,
				TeamType:      team,
				Profit:        profit,
				Percentage:    percentage,
				Commission:    Commission(profit, percentage),
			}
			if err := s.logs.Create(ctx, &entry); err != nil {
				return utils.NewUpstreamError("Error recording referral profit", err)
			}
			created = append(created, entry)
		}

		reservation.ReferralProfitDistributed = true
		if err := s.reservations.Save(ctx, reservation); err != nil {
			return utils.NewUpstreamError("Error updating reservation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, entry := range created {
		monitoring.ReferralCommissionsTotal.WithLabelValues(string(entry.TeamType)).Inc()
	}
	logrus.WithFields(logrus.Fields{
		"reservation_id": id,
		"logs":           len(created),
	}).Info("Referral profit distributed")

	return created, nil
}

func (s *ReferralService) GetReferralProfit(ctx context.Context, id string) (*models.ReferralProfitLog, error) {
	logID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.NewNotFoundError("Referral profit log not found")
	}

	entry, err := s.logs.FindByID(ctx, logID)
	if err != nil {
		return nil, lookupError(err, "Referral profit log not found")
	}
	return entry, nil
}

func (s *ReferralService) ListReferralProfits(ctx context.Context, filter ReferralProfitFilter) ([]models.ReferralProfitLog, int64, error) {
	if err := utils.ValidateStruct(&filter); err != nil {
		return nil, 0, err
	}

	filters := map[string]interface{}{}
	if filter.UplineUser != "" {
		filters["upline_user_id"] = uuid.MustParse(filter.UplineUser)
	}
	if filter.DownlineUser != "" {
		filters["downline_user_id"] = uuid.MustParse(filter.DownlineUser)
	}
	if filter.ReservationID != "" {
		filters["reservation_id"] = uuid.MustParse(filter.ReservationID)
	}
	if filter.TeamType != "" {
		filters["team_type"] = models.TeamType(filter.TeamType)
	}

	entries, total, err := s.logs.List(ctx, repository.Query{
		Filters: filters,
		OrderBy: filter.OrderBy(filter.Sort, []string{"date", "created_at"}),
		Offset:  filter.Offset(),
		Limit:   filter.Limit,
	})
	if err != nil {
		return nil, 0, utils.NewUpstreamError("Error retrieving referral profits", err)
	}
	if entries == nil {
		entries = []models.ReferralProfitLog{}
	}

	return entries, total, nil
}

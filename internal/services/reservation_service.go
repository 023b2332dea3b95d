// internal/services/reservation_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/models"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/repository"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/utils"
)

const msgReservationNotFound = "Reservation not found"

type ReservationService struct {
	reservations repository.Store[models.Reservation]
	tx           repository.Transactor
	now          func() time.Time
}

type CreateReservationRequest struct {
	NFTID           string     `json:"nftId" validate:"required,uuid"`
	UserID          string     `json:"userId" validate:"required,uuid"`
	ReservationTime string     `json:"reservationTime" validate:"required,max=64"`
	ReservationDate *time.Time `json:"reservationDate,omitempty"`
	NFTName         string     `json:"nftName,omitempty" validate:"max=255"`
}

type BuyReservationRequest struct {
	BuyAmount decimal.Decimal `json:"buyAmount"`
	BuyDate   *time.Time      `json:"buyDate,omitempty"`
}

type SellReservationRequest struct {
	Profit   *decimal.Decimal `json:"profit"`
	SellDate *time.Time       `json:"sellDate,omitempty"`
}

type ReservationFilter struct {
	utils.PaginationParams
	Status string `json:"status" validate:"omitempty,reservation_status"`
	UserID string `json:"userId" validate:"omitempty,uuid"`
	NFTID  string `json:"nftId" validate:"omitempty,uuid"`
}

func NewReservationService(reservations repository.Store[models.Reservation], tx repository.Transactor) *ReservationService {
	return &ReservationService{
		reservations: reservations,
		tx:           tx,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (s *ReservationService) CreateReservation(ctx context.Context, req *CreateReservationRequest) (*models.Reservation, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		NFTID:           uuid.MustParse(req.NFTID),
		UserID:          uuid.MustParse(req.UserID),
		ReservationDate: s.now(),
		ReservationTime: req.ReservationTime,
		Status:          models.ReservationStatusReserved,
		NFTName:         req.NFTName,
	}
	if req.ReservationDate != nil {
		reservation.ReservationDate = req.ReservationDate.UTC()
	}

	if err := s.reservations.Create(ctx, reservation); err != nil {
		return nil, utils.NewUpstreamError("Error creating reservation", err)
	}

	return reservation, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.NewNotFoundError(msgReservationNotFound)
	}

	reservation, err := s.reservations.FindByID(ctx, reservationID)
	if err != nil {
		return nil, lookupError(err, msgReservationNotFound)
	}
	return reservation, nil
}

func (s *ReservationService) ListReservations(ctx context.Context, filter ReservationFilter) ([]models.Reservation, int64, error) {
	if err := utils.ValidateStruct(&filter); err != nil {
		return nil, 0, err
	}

	filters := map[string]interface{}{}
	if filter.Status != "" {
		filters["status"] = models.ReservationStatus(filter.Status)
	}
	if filter.UserID != "" {
		filters["user_id"] = uuid.MustParse(filter.UserID)
	}
	if filter.NFTID != "" {
		filters["nft_id"] = uuid.MustParse(filter.NFTID)
	}

	reservations, total, err := s.reservations.List(ctx, repository.Query{
		Filters: filters,
		OrderBy: filter.OrderBy("created_at", nil),
		Offset:  filter.Offset(),
		Limit:   filter.Limit,
	})
	if err != nil {
		return nil, 0, utils.NewUpstreamError("Error retrieving reservations", err)
	}
	if reservations == nil {
		reservations = []models.Reservation{}
	}

	return reservations, total, nil
}

// MarkBought moves a reserved reservation to bought.
func (s *ReservationService) MarkBought(ctx context.Context, id string, req *BuyReservationRequest) (*models.Reservation, error) {
	if !req.BuyAmount.IsPositive() {
		return nil, utils.NewValidationError("buyAmount must be greater than zero", nil)
	}

	return s.transition(ctx, id, models.ReservationStatusBought, func(r *models.Reservation) error {
		buyDate := s.now()
		if req.BuyDate != nil {
			buyDate = req.BuyDate.UTC()
		}

		amount := req.BuyAmount.Round(2)
		r.BuyAmount = &amount
		r.BuyDate = &buyDate
		return nil
	})
}

// MarkSold moves a bought reservation to sold and records its profit.
func (s *ReservationService) MarkSold(ctx context.Context, id string, req *SellReservationRequest) (*models.Reservation, error) {
	if req.Profit == nil {
		return nil, utils.NewValidationError("profit is required", nil)
	}

	return s.transition(ctx, id, models.ReservationStatusSold, func(r *models.Reservation) error {
		sellDate := s.now()
		if req.SellDate != nil {
			sellDate = req.SellDate.UTC()
		}
		if r.BuyDate != nil && sellDate.Before(*r.BuyDate) {
			return utils.NewValidationError("sellDate must not precede buyDate", nil)
		}

		profit := req.Profit.Round(2)
		r.Profit = &profit
		r.SellDate = &sellDate
		return nil
	})
}

func (s *ReservationService) DeleteReservation(ctx context.Context, id string) error {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return utils.NewNotFoundError(msgReservationNotFound)
	}

	if err := s.reservations.Delete(ctx, reservationID); err != nil {
		return lookupError(err, msgReservationNotFound)
	}
	return nil
}

// transition locks the reservation, checks that to is the next status and
// applies the changes in one transaction.
func (s *ReservationService) transition(ctx context.Context, id string, to models.ReservationStatus, apply func(r *models.Reservation) error) (*models.Reservation, error) {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return nil, utils.NewNotFoundError(msgReservationNotFound)
	}

	var updated *models.Reservation
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		reservation, err := s.reservations.FindByIDForUpdate(ctx, reservationID)
		if err != nil {
			return lookupError(err, msgReservationNotFound)
		}

		if next, ok := reservation.Status.Next(); !ok || next != to {
			return utils.NewConflictError(fmt.Sprintf("Reservation is %s and cannot be marked %s", reservation.Status, to))
		}

		if err := apply(reservation); err != nil {
			return err
		}
		reservation.Status = to

		if err := s.reservations.Save(ctx, reservation); err != nil {
			return utils.NewUpstreamError("Error updating reservation", err)
		}

		updated = reservation
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func lookupError(err error, notFoundMessage string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NewNotFoundError(notFoundMessage)
	}
	return utils.NewUpstreamError("Error retrieving record", err)
}

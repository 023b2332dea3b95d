// internal/handlers/reservation.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/services"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/utils"
)

type ReservationHandler struct {
	reservationService *services.ReservationService
	referralService    *services.ReferralService
	adminRole          string
}

func NewReservationHandler(reservationService *services.ReservationService, referralService *services.ReferralService, adminRole string) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
		referralService:    referralService,
		adminRole:          adminRole,
	}
}

// POST /reservations
func (h *ReservationHandler) CreateReservation(c *gin.Context) error {
	var req services.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidBody(err)
	}

	// Non-admin callers may only reserve for themselves.
	if userID, ok := utils.GetUserIDFromContext(c); ok {
		role, _ := utils.GetRoleFromContext(c)
		if role != h.adminRole && !strings.EqualFold(userID, req.UserID) {
			return utils.NewForbiddenError("Cannot create a reservation for another user")
		}
	}

	reservation, err := h.reservationService.CreateReservation(c.Request.Context(), &req)
	if err != nil {
		return err
	}

	utils.CreatedResponse(c, reservation, "Reservation created successfully")
	return nil
}

// GET /reservations
func (h *ReservationHandler) GetReservations(c *gin.Context) error {
	params := utils.GetPaginationParams(c)

	filter := services.ReservationFilter{
		PaginationParams: params,
		Status:           c.Query("status"),
		UserID:           c.Query("userId"),
		NFTID:            c.Query("nftId"),
	}

	reservations, total, err := h.reservationService.ListReservations(c.Request.Context(), filter)
	if err != nil {
		return err
	}

	result := utils.CreatePaginationResult(reservations, total, params)
	utils.PaginatedResponse(c, result, "Reservations retrieved successfully")
	return nil
}

// GET /reservations/:id
func (h *ReservationHandler) GetReservation(c *gin.Context) error {
	reservation, err := h.reservationService.GetReservation(c.Request.Context(), c.Param("id"))
	if err != nil {
		return err
	}

	utils.SuccessResponse(c, reservation, "Reservation retrieved successfully")
	return nil
}

// POST /reservations/:id/buy
func (h *ReservationHandler) MarkBought(c *gin.Context) error {
	var req services.BuyReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidBody(err)
	}

	reservation, err := h.reservationService.MarkBought(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		return err
	}

	utils.SuccessResponse(c, reservation, "Reservation marked as bought")
	return nil
}

// POST /reservations/:id/sell
func (h *ReservationHandler) MarkSold(c *gin.Context) error {
	var req services.SellReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidBody(err)
	}

	reservation, err := h.reservationService.MarkSold(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		return err
	}

	utils.SuccessResponse(c, reservation, "Reservation marked as sold")
	return nil
}

// POST /reservations/:id/distribute
func (h *ReservationHandler) DistributeProfit(c *gin.Context) error {
	var req services.DistributeProfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return invalidBody(err)
	}

	logs, err := h.referralService.DistributeProfit(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		return err
	}

	utils.CreatedResponse(c, logs, "Referral profit distributed successfully")
	return nil
}

// DELETE /reservations/:id
func (h *ReservationHandler) DeleteReservation(c *gin.Context) error {
	if err := h.reservationService.DeleteReservation(c.Request.Context(), c.Param("id")); err != nil {
		return err
	}

	utils.SuccessResponse(c, nil, "Reservation deleted successfully")
	return nil
}

func invalidBody(err error) error {
	return &utils.APIError{
		Kind:    utils.KindValidation,
		Message: "Invalid request body",
		Err:     err,
	}
}

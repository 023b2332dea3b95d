// internal/handlers/referral.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/services"
	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/utils"
)

type ReferralHandler struct {
	referralService *services.ReferralService
}

func NewReferralHandler(referralService *services.ReferralService) *ReferralHandler {
	return &ReferralHandler{
		referralService: referralService,
	}
}

// GET /referral-profits
func (h *ReferralHandler) GetReferralProfits(c *gin.Context) error {
	params := utils.GetPaginationParams(c)

	filter := services.ReferralProfitFilter{
		PaginationParams: params,
		UplineUser:       c.Query("uplineUser"),
		DownlineUser:     c.Query("downlineUser"),
		ReservationID:    c.Query("reservationId"),
		TeamType:         c.Query("teamType"),
		Sort:             c.Query("sort"),
	}

	logs, total, err := h.referralService.ListReferralProfits(c.Request.Context(), filter)
	if err != nil {
		return err
	}

	result := utils.CreatePaginationResult(logs, total, params)
	utils.PaginatedResponse(c, result, "Referral profits retrieved successfully")
	return nil
}

// GET /referral-profits/:id
func (h *ReferralHandler) GetReferralProfit(c *gin.Context) error {
	entry, err := h.referralService.GetReferralProfit(c.Request.Context(), c.Param("id"))
	if err != nil {
		return err
	}

	utils.SuccessResponse(c, entry, "Referral profit retrieved successfully")
	return nil
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/svitoratos/tangocrm-backend/internal/services"
)

type OpportunityHandler struct {
	oppService services.OpportunityService
}

func NewOpportunityHandler(oppService services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{oppService: oppService}
}

func (oh *OpportunityHandler) List(c *gin.Context) {
	opps, err := oh.oppService.List(c.Request.Context(), c.Query("niche"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "opportunity_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"opportunities": opps})
}

func (oh *OpportunityHandler) Board(c *gin.Context) {
	columns, err := oh.oppService.Board(c.Request.Context(), c.Query("niche"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "opportunity_board_failed", err)
		return
	}
	RespondOK(c, gin.H{"stages": columns})
}

func (oh *OpportunityHandler) Create(c *gin.Context) {
	var input services.OpportunityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := oh.oppService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "opportunity_create_failed", err)
		return
	}
	RespondCreated(c, gin.H{"opportunity": created})
}

func (oh *OpportunityHandler) Update(c *gin.Context) {
	var input struct {
		ID string `json:"id"`
		services.OpportunityInput
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	oppID, err := uuid.Parse(input.ID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	result, err := oh.oppService.Update(c.Request.Context(), oppID, input.OpportunityInput)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "opportunity_update_failed", err)
		return
	}
	RespondOK(c, result)
}

func (oh *OpportunityHandler) MoveStage(c *gin.Context) {
	var req struct {
		ID      string `json:"id"`
		StageID string `json:"stage_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	oppID, err := uuid.Parse(req.ID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	result, err := oh.oppService.MoveStage(c.Request.Context(), oppID, req.StageID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "opportunity_move_failed", err)
		return
	}
	RespondOK(c, result)
}

func (oh *OpportunityHandler) Delete(c *gin.Context) {
	oppID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := oh.oppService.Delete(c.Request.Context(), oppID); err != nil {
		RespondError(c, http.StatusBadRequest, "opportunity_delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": oppID})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/svitoratos/tangocrm-backend/internal/services"
)

type ClientHandler struct {
	clientService services.ClientService
}

func NewClientHandler(clientService services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

func (ch *ClientHandler) List(c *gin.Context) {
	clients, err := ch.clientService.List(c.Request.Context(), c.Query("niche"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "client_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"clients": clients})
}

func (ch *ClientHandler) Create(c *gin.Context) {
	var input services.ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := ch.clientService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "client_create_failed", err)
		return
	}
	RespondCreated(c, gin.H{"client": created})
}

func (ch *ClientHandler) Update(c *gin.Context) {
	var input struct {
		ID string `json:"id"`
		services.ClientInput
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	clientID, err := uuid.Parse(input.ID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	updated, err := ch.clientService.Update(c.Request.Context(), clientID, input.ClientInput)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "client_update_failed", err)
		return
	}
	RespondOK(c, gin.H{"client": updated})
}

func (ch *ClientHandler) Delete(c *gin.Context) {
	clientID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ch.clientService.Delete(c.Request.Context(), clientID); err != nil {
		RespondError(c, http.StatusBadRequest, "client_delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": clientID})
}

// Convert creates a client pre-filled from an opportunity. The UI calls
// this after the user accepts the conversion prompt that a stage move into
// a conversion stage raised.
func (ch *ClientHandler) Convert(c *gin.Context) {
	var req struct {
		OpportunityID string `json:"opportunity_id"`
		services.ClientInput
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	oppID, err := uuid.Parse(req.OpportunityID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	created, err := ch.clientService.ConvertFromOpportunity(c.Request.Context(), oppID, req.ClientInput)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "client_convert_failed", err)
		return
	}
	RespondCreated(c, gin.H{"client": created})
}

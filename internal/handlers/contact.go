package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svitoratos/tangocrm-backend/internal/services"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (ch *ContactHandler) Submit(c *gin.Context) {
	var input services.ContactFormInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	stored, err := ch.contactService.Submit(c.Request.Context(), input)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "contact_submit_failed", err)
		return
	}
	RespondCreated(c, gin.H{"message": stored})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/svitoratos/tangocrm-backend/internal/services"
)

type ContentItemHandler struct {
	itemService services.ContentItemService
}

func NewContentItemHandler(itemService services.ContentItemService) *ContentItemHandler {
	return &ContentItemHandler{itemService: itemService}
}

func (cih *ContentItemHandler) List(c *gin.Context) {
	items, err := cih.itemService.List(c.Request.Context(), c.Query("niche"), c.Query("content_type"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "content_item_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"content_items": items})
}

func (cih *ContentItemHandler) Get(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	item, err := cih.itemService.Get(c.Request.Context(), itemID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "content_item_not_found", err)
		return
	}
	RespondOK(c, gin.H{"content_item": item})
}

func (cih *ContentItemHandler) Create(c *gin.Context) {
	var input services.ContentItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := cih.itemService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "content_item_create_failed", err)
		return
	}
	RespondCreated(c, gin.H{"content_item": created})
}

func (cih *ContentItemHandler) Update(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var input services.ContentItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := cih.itemService.Update(c.Request.Context(), itemID, input)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "content_item_update_failed", err)
		return
	}
	RespondOK(c, gin.H{"content_item": updated})
}

func (cih *ContentItemHandler) Delete(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := cih.itemService.Delete(c.Request.Context(), itemID); err != nil {
		RespondError(c, http.StatusBadRequest, "content_item_delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": itemID})
}

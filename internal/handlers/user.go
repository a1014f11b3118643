package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/svitoratos/tangocrm-backend/internal/services"
)

type UserHandler struct {
	userService   services.UserService
	avatarService services.AvatarService
}

func NewUserHandler(userService services.UserService, avatarService services.AvatarService) *UserHandler {
	return &UserHandler{userService: userService, avatarService: avatarService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadRequest, "user_fetch_failed", err)
		return
	}
	RespondOK(c, gin.H{"me": me})
}

func (uh *UserHandler) GetTimezone(c *gin.Context) {
	timezone, err := uh.userService.GetTimezone(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadRequest, "timezone_fetch_failed", err)
		return
	}
	RespondOK(c, gin.H{"timezone": timezone})
}

func (uh *UserHandler) UpdateTimezone(c *gin.Context) {
	var req struct {
		Timezone string `json:"timezone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := uh.userService.UpdateTimezone(c.Request.Context(), req.Timezone)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "timezone_update_failed", err)
		return
	}
	RespondOK(c, gin.H{"timezone": updated.Timezone})
}

func (uh *UserHandler) UploadAvatar(c *gin.Context) {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "missing_avatar_file", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_avatar_file", err)
		return
	}
	defer file.Close()
	raw, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "unreadable_avatar_file", err)
		return
	}
	me, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusBadRequest, "user_fetch_failed", err)
		return
	}
	if err := uh.avatarService.StoreUploadedAvatar(c.Request.Context(), nil, me, raw); err != nil {
		RespondError(c, http.StatusBadRequest, "avatar_store_failed", err)
		return
	}
	RespondOK(c, gin.H{"avatar_url": me.AvatarURL})
}

func (uh *UserHandler) UpdatePrimaryNiche(c *gin.Context) {
	var req struct {
		Niche string `json:"niche"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := uh.userService.UpdatePrimaryNiche(c.Request.Context(), req.Niche)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "niche_update_failed", err)
		return
	}
	RespondOK(c, gin.H{"primary_niche": updated.PrimaryNiche})
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/svitoratos/tangocrm-backend/internal/requestdata"
	"github.com/svitoratos/tangocrm-backend/internal/services"
)

type CalendarHandler struct {
	calendarService services.CalendarService
}

func NewCalendarHandler(calendarService services.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

func (ch *CalendarHandler) List(c *gin.Context) {
	// ?date=2026-08-30 narrows to one calendar day in the user's timezone.
	if rawDate := c.Query("date"); rawDate != "" {
		day, err := time.Parse("2006-01-02", rawDate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_date", err)
			return
		}
		timezone := ""
		if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil {
			timezone = rd.Timezone
		}
		events, err := ch.calendarService.ListDay(c.Request.Context(), c.Query("niche"), day, timezone)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "calendar_list_failed", err)
			return
		}
		RespondOK(c, gin.H{"events": events})
		return
	}
	events, err := ch.calendarService.List(c.Request.Context(), c.Query("niche"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "calendar_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"events": events})
}

func (ch *CalendarHandler) Create(c *gin.Context) {
	var input services.CalendarEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := ch.calendarService.Create(c.Request.Context(), input)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "calendar_create_failed", err)
		return
	}
	RespondCreated(c, gin.H{"event": created})
}

func (ch *CalendarHandler) Update(c *gin.Context) {
	var input struct {
		ID string `json:"id"`
		services.CalendarEventInput
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	eventID, err := uuid.Parse(input.ID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	updated, err := ch.calendarService.Update(c.Request.Context(), eventID, input.CalendarEventInput)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "calendar_update_failed", err)
		return
	}
	RespondOK(c, gin.H{"event": updated})
}

func (ch *CalendarHandler) Delete(c *gin.Context) {
	eventID, err := uuid.Parse(c.Query("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := ch.calendarService.Delete(c.Request.Context(), eventID); err != nil {
		RespondError(c, http.StatusBadRequest, "calendar_delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"deleted": eventID})
}

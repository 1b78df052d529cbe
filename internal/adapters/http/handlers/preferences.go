package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotevault/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotevault/internal/app"
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/notify"
)

// PreferencesHandler handles settings, the resolved theme and the daily
// reminder schedule.
type PreferencesHandler struct {
	prefs     *app.PreferencesService
	scheduler *notify.Scheduler
}

// NewPreferencesHandler creates a new preferences handler.
func NewPreferencesHandler(prefs *app.PreferencesService, scheduler *notify.Scheduler) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs, scheduler: scheduler}
}

// UpdatePreferencesRequest is a partial edit; omitted fields keep their value.
type UpdatePreferencesRequest struct {
	Theme          *domain.ThemeName   `json:"theme"`
	DarkMode       *bool               `json:"darkMode"`
	FontScale      *domain.FontScale   `json:"fontScale"`
	WidgetTheme    *domain.WidgetTheme `json:"widgetTheme"`
	ReminderHour   *int                `json:"reminderHour"`
	ReminderMinute *int                `json:"reminderMinute"`
	PushEnabled    *bool               `json:"pushEnabled"`
}

// ReminderRequest schedules the daily reminder.
type ReminderRequest struct {
	Hour     *int   `json:"hour"     validate:"required,gte=0,lte=23"`
	Minute   *int   `json:"minute"   validate:"required,gte=0,lte=59"`
	Location string `json:"location"`
}

// ReminderResponse is the stored schedule.
type ReminderResponse struct {
	Hour     int       `json:"hour"`
	Minute   int       `json:"minute"`
	Time     string    `json:"time"`
	Location string    `json:"location"`
	Next     time.Time `json:"next"`
}

func toReminderResponse(s *notify.Schedule) ReminderResponse {
	return ReminderResponse{
		Hour:     s.Reminder.Hour,
		Minute:   s.Reminder.Minute,
		Time:     s.Reminder.String(),
		Location: s.Location,
		Next:     s.Next,
	}
}

// Get handles GET /api/v1/preferences.
func (h *PreferencesHandler) Get(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	p, err := h.prefs.Get(c.Request.Context(), uid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPreferencesResponse(p))
}

// Update handles PUT /api/v1/preferences.
func (h *PreferencesHandler) Update(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req UpdatePreferencesRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	p, err := h.prefs.Update(ctx, uid, app.PreferencesUpdate{
		Theme:          req.Theme,
		DarkMode:       req.DarkMode,
		FontScale:      req.FontScale,
		WidgetTheme:    req.WidgetTheme,
		ReminderHour:   req.ReminderHour,
		ReminderMinute: req.ReminderMinute,
		PushEnabled:    req.PushEnabled,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	// The dispatcher only reads the schedule, so it follows any change to
	// the opt-in or the reminder time.
	if req.PushEnabled != nil || req.ReminderHour != nil || req.ReminderMinute != nil {
		if _, err := h.scheduler.Follow(ctx, uid, p); err != nil {
			dto.HandleError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, toPreferencesResponse(p))
}

// Theme handles GET /api/v1/theme with the palette and font sizes resolved
// from the caller's preferences.
func (h *PreferencesHandler) Theme(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	cfg, err := h.prefs.Theme(c.Request.Context(), uid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, cfg.Resolve())
}

// GetReminder handles GET /api/v1/notifications/reminder.
func (h *PreferencesHandler) GetReminder(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	sched, err := h.scheduler.Get(c.Request.Context(), uid)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReminderResponse(sched))
}

// ScheduleReminder handles PUT /api/v1/notifications/reminder. It replaces
// any existing schedule and records the time and opt-in in the preferences.
//
// @Summary Schedule the daily reminder
// @Tags notifications
// @Accept json
// @Produce json
// @Success 200 {object} ReminderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/v1/notifications/reminder [put]
func (h *PreferencesHandler) ScheduleReminder(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req ReminderRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	r := domain.Reminder{Hour: *req.Hour, Minute: *req.Minute}

	sched, err := h.scheduler.Schedule(ctx, uid, r, req.Location)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	enabled := true
	if _, err := h.prefs.Update(ctx, uid, app.PreferencesUpdate{
		ReminderHour:   &r.Hour,
		ReminderMinute: &r.Minute,
		PushEnabled:    &enabled,
	}); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReminderResponse(sched))
}

// CancelReminder handles DELETE /api/v1/notifications/reminder.
func (h *PreferencesHandler) CancelReminder(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.scheduler.Cancel(ctx, uid); err != nil {
		dto.HandleError(c, err)
		return
	}

	disabled := false
	if _, err := h.prefs.Update(ctx, uid, app.PreferencesUpdate{PushEnabled: &disabled}); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers settings routes on the given router group.
func (h *PreferencesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/preferences", h.Get)
	rg.PUT("/preferences", h.Update)
	rg.GET("/theme", h.Theme)

	reminder := rg.Group("/notifications/reminder")
	reminder.GET("", h.GetReminder)
	reminder.PUT("", h.ScheduleReminder)
	reminder.DELETE("", h.CancelReminder)
}

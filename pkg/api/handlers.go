package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"workshop-registration/pkg/form"
	"workshop-registration/pkg/logger"
	"workshop-registration/pkg/models"
	"workshop-registration/pkg/services"
	"workshop-registration/pkg/session"
	"workshop-registration/pkg/web"
)

// SessionCookie names the cookie holding the form session ID
const SessionCookie = "registration_session"

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	sessions     *session.Store
	cookieMaxAge time.Duration
	secureCookie bool
}

// NewHandlers creates a new Handlers instance
func NewHandlers(sessions *session.Store, cookieMaxAge time.Duration, secureCookie bool) *Handlers {
	return &Handlers{
		sessions:     sessions,
		cookieMaxAge: cookieMaxAge,
		secureCookie: secureCookie,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// ShowForm renders the form, or the thank-you page once the session has submitted.
// Viewing alone does not start a session.
func (h *Handlers) ShowForm(c *gin.Context) {
	h.renderPage(c, http.StatusOK, h.snapshot(c))
}

// SubmitForm processes a full HTML form post: every field is replaced, then the form is submitted
func (h *Handlers) SubmitForm(c *gin.Context) {
	log := logger.FromContext(c.Request.Context())
	f := h.form(c)

	var posted registrationForm
	if err := c.ShouldBind(&posted); err != nil {
		log.Warn("invalid form post", slog.String("error", err.Error()))
		snap := f.Snapshot()
		snap.Record = withPostedText(c, snap.Record)
		snap.Error = "Some answers could not be read. Please check the form and try again."
		h.renderPage(c, http.StatusBadRequest, snap)
		return
	}

	if err := f.Apply(posted.updates()...); err != nil {
		snap := f.Snapshot()
		switch {
		case errors.Is(err, form.ErrSubmitted):
			h.renderPage(c, http.StatusOK, snap)
		case errors.Is(err, form.ErrSubmitting):
			snap.Error = "Your registration is being submitted. Please wait."
			h.renderPage(c, http.StatusConflict, snap)
		default:
			snap.Record = withPostedText(c, snap.Record)
			snap.Error = "Some answers could not be read. Please check the form and try again."
			h.renderPage(c, http.StatusBadRequest, snap)
		}
		return
	}

	snap, err := f.Submit(c.Request.Context())
	h.renderPage(c, submitStatus(err), snap)
}

// GetFormState returns the session's record and UI state
func (h *Handlers) GetFormState(c *gin.Context) {
	c.JSON(http.StatusOK, newFormStateResponse(h.snapshot(c)))
}

// UpdateForm applies field updates to the session's record
func (h *Handlers) UpdateForm(c *gin.Context) {
	f := h.form(c)

	var req updateFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updates, err := req.updates()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := f.Apply(updates...); err != nil {
		if errors.Is(err, models.ErrUnknownField) || errors.Is(err, models.ErrInvalidValue) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
			"state": newFormStateResponse(f.Snapshot()),
		})
		return
	}

	c.JSON(http.StatusOK, newFormStateResponse(f.Snapshot()))
}

// SubmitFormState validates and submits the session's record
func (h *Handlers) SubmitFormState(c *gin.Context) {
	f := h.form(c)

	snap, err := f.Submit(c.Request.Context())
	c.JSON(submitStatus(err), newFormStateResponse(snap))
}

// submitStatus maps a form.Submit result to an HTTP status
func submitStatus(err error) int {
	var validationErr *services.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, form.ErrSubmitting), errors.Is(err, form.ErrSubmitted):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// form resolves the session cookie, starting a new session when needed
func (h *Handlers) form(c *gin.Context) *form.Form {
	id, _ := c.Cookie(SessionCookie)

	id, f, created := h.sessions.GetOrCreate(id)
	if created {
		logger.FromContext(c.Request.Context()).Debug("session started")
	}
	h.setCookie(c, id)
	return f
}

// snapshot reads the session's state, or a blank form when there is no live session
func (h *Handlers) snapshot(c *gin.Context) form.Snapshot {
	id, err := c.Cookie(SessionCookie)
	if err != nil || id == "" {
		return form.Snapshot{Record: models.NewRegistrationRecord()}
	}

	f, err := h.sessions.Get(id)
	if err != nil {
		return form.Snapshot{Record: models.NewRegistrationRecord()}
	}
	h.setCookie(c, id)
	return f.Snapshot()
}

// setCookie is called on every use so the cookie outlives the session's sliding TTL
func (h *Handlers) setCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, int(h.cookieMaxAge.Seconds()), "/", "", h.secureCookie, true)
}

// withPostedText keeps the attendee's typed answers on a page re-rendered after a bad post
func withPostedText(c *gin.Context, record models.RegistrationRecord) models.RegistrationRecord {
	next, err := models.Apply(record,
		models.SetName(c.PostForm("name")),
		models.SetEmail(c.PostForm("email")),
		models.SetPainPointOtherText(c.PostForm("painPoints.otherText")),
		models.SetDietaryOtherText(c.PostForm("dietary.otherText")),
	)
	if err != nil {
		return record
	}
	return next
}

func (h *Handlers) renderPage(c *gin.Context, status int, snap form.Snapshot) {
	page := web.PageForm
	if snap.Submitted {
		page = web.PageSubmitted
	}
	c.HTML(status, page, snap)
}

package webserver

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/Wildboar1/IERP-Website-sub000/src/portal/departments"
	"github.com/Wildboar1/IERP-Website-sub000/src/portal/store"
	"github.com/Wildboar1/IERP-Website-sub000/src/portal/types"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
)

// Notifier is the lifecycle side-effect sink. Implementations are best-effort;
// handlers never see a notification failure.
type Notifier interface {
	Submitted(app *types.Application)
	Approved(app *types.Application)
	Rejected(app *types.Application)
}

type Applications struct {
	st        *store.Store
	notifier  Notifier
	sanitizer *bluemonday.Policy
}

func NewApplications(st *store.Store, notifier Notifier) Applications {
	return Applications{st: st, notifier: notifier, sanitizer: bluemonday.StrictPolicy()}
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRe.MatchString(email) && len(email) <= 255
}

func (h Applications) clean(s string) string {
	return strings.TrimSpace(h.sanitizer.Sanitize(s))
}

// Submit validates in a fixed order — structural field presence, then
// department supplemental completeness, then the uniqueness constraint — so
// the caller always gets the most specific applicable error.
func (h Applications) Submit(c *gin.Context) {
	var req struct {
		DisplayName   string            `json:"displayName"`
		Email         string            `json:"email"`
		ContactHandle string            `json:"contactHandle"`
		Phone         string            `json:"phone"`
		Department    string            `json:"department"`
		Motivation    string            `json:"motivation"`
		Supplemental  map[string]string `json:"supplemental"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	req.Department = strings.ToLower(strings.TrimSpace(req.Department))

	var missing []string
	if strings.TrimSpace(req.DisplayName) == "" {
		missing = append(missing, "displayName")
	}
	if !isValidEmail(strings.TrimSpace(req.Email)) {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(req.ContactHandle) == "" {
		missing = append(missing, "contactHandle")
	}
	if !departments.Valid(req.Department) {
		missing = append(missing, "department")
	}
	if strings.TrimSpace(req.Motivation) == "" {
		missing = append(missing, "motivation")
	}
	if len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"err": "missing required fields", "fields": missing})
		return
	}

	if incomplete := departments.MissingSupplemental(req.Department, req.Supplemental); len(incomplete) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"err": "incomplete supplemental responses", "fields": incomplete})
		return
	}

	ident := identityFrom(c)
	admin, err := h.st.IsAdmin(ident.DiscordID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "storage unavailable, try again"})
		return
	}

	app := &types.Application{
		DiscordID:     ident.DiscordID,
		DisplayName:   h.clean(req.DisplayName),
		Email:         strings.TrimSpace(req.Email),
		ContactHandle: h.clean(req.ContactHandle),
		Phone:         h.clean(req.Phone),
		Department:    req.Department,
		Motivation:    h.clean(req.Motivation),
	}
	if dept, _ := departments.Get(req.Department); len(dept.Supplemental) > 0 {
		app.Supplemental = make(map[string]string, len(dept.Supplemental))
		for _, q := range dept.Supplemental {
			app.Supplemental[q.Key] = h.clean(req.Supplemental[q.Key])
		}
	}

	if err := h.st.Create(app, admin); err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"err": "an application already exists for this Discord account"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "storage unavailable, try again"})
		return
	}

	h.notifier.Submitted(app)
	c.JSON(http.StatusCreated, gin.H{"id": app.ID})
}

func (h Applications) List(c *gin.Context) {
	apps, err := h.st.List()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "storage unavailable, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h Applications) Get(c *gin.Context) {
	app, err := h.st.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"err": "application not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "storage unavailable, try again"})
		return
	}
	c.JSON(http.StatusOK, app)
}

// Review applies an approve/reject decision. Re-reviewing an already-decided
// application is allowed; the new decision overwrites the previous stamp, the
// same way the reset path does.
func (h Applications) Review(c *gin.Context) {
	var req struct {
		Decision string `json:"decision" binding:"required,oneof=approved rejected"`
		Notes    string `json:"notes" binding:"max=1024"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	ident := identityFrom(c)
	app, err := h.st.SetStatus(c.Param("id"), req.Decision, ident.DiscordID, h.clean(req.Notes))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"err": "application not found"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "storage unavailable, try again"})
		return
	}

	switch app.Status {
	case types.StatusApproved:
		h.notifier.Approved(app)
	case types.StatusRejected:
		h.notifier.Rejected(app)
	}
	c.JSON(http.StatusOK, app)
}

// Reset is an administrative override, not a lifecycle step: matching records
// go back to pending with their review stamps cleared.
func (h Applications) Reset(c *gin.Context) {
	var req struct {
		IDs []string `json:"ids" binding:"required,min=1,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	n, err := h.st.Reset(req.IDs)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"err": "storage unavailable, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": n})
}

func (h Applications) Departments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"departments": departments.All()})
}

package applications

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/extract"
	"recruit-backend/internal/notify"
	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
	"recruit-backend/internal/shared/storage/object"
	"recruit-backend/internal/shared/telemetry"
)

const maxResumeBytes = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc      *Service
	Notifier notify.Notifier
	Store    object.ObjectStore
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, notifier notify.Notifier, store object.ObjectStore) *Handler {
	return &Handler{Svc: svc, Notifier: notifier, Store: store}
}

// RegisterRoutes attaches application and history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applications", h.submit)
	rg.GET("/applications", h.list)
	rg.GET("/applications/:id", h.get)
	rg.PATCH("/applications/:id/status", h.updateStatus)
	rg.PATCH("/applications/:id/status/override", h.overrideStatus)
	rg.PATCH("/applications/:id/archive", h.setArchived)
	rg.POST("/applications/bulk/status", h.bulkStatus)
	rg.GET("/applications/:id/resume/text", h.resumeText)
	rg.GET("/applications/:id/history", h.history)
	rg.PATCH("/applications/:id/history/:entryId", h.correctEntry)
	rg.DELETE("/applications/:id/history/:entryId", h.removeEntry)
}

// submit accepts multipart form data so a resume file can ride along with
// the application fields.
func (h *Handler) submit(c *gin.Context) {
	actorID := middleware.ActorIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxResumeBytes)

	candidateID := c.PostForm("candidateId")
	if candidateID == "" {
		candidateID = actorID
	}
	if candidateID != actorID && !middleware.IsAdmin(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "applications can only be submitted by the candidate", nil)
		return
	}

	in := SubmitInput{
		CandidateID: candidateID,
		OfferID:     c.PostForm("offerId"),
		CoverLetter: c.PostForm("coverLetter"),
		ActorID:     actorID,
	}

	if fileHeader, err := c.FormFile("resume"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
			return
		}
		defer file.Close()
		key, _, _, err := h.Store.Save(c.Request.Context(), candidateID, fileHeader.Filename, file)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store resume", nil)
			return
		}
		in.ResumeKey = key
	}

	app, err := h.Svc.Submit(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit application", nil)
		}
		return
	}
	respond.Created(c, toApplicationResponse(app))
}

func (h *Handler) list(c *gin.Context) {
	filter := ListFilter{
		CandidateID: c.Query("candidateId"),
		OfferID:     c.Query("offerId"),
		Status:      Status(c.Query("status")),
	}
	if c.Query("includeArchived") == "true" && middleware.IsAdmin(c) {
		filter.IncludeArchived = true
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset > 0 {
			filter.Offset = offset
		}
	}

	apps, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list applications", nil)
		return
	}
	respond.OK(c, gin.H{"applications": toApplicationResponses(apps)})
}

func (h *Handler) get(c *gin.Context) {
	app, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch application", nil)
		return
	}
	respond.OK(c, toApplicationResponse(app))
}

func (h *Handler) updateStatus(c *gin.Context) {
	role := middleware.ActorRoleFromContext(c)
	if role != middleware.RoleRecruiter && role != middleware.RoleAdmin {
		respond.Error(c, http.StatusForbidden, "forbidden", "only recruiters can change application status", nil)
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	actorID := middleware.ActorIDFromContext(c)
	id := c.Param("id")
	before, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondStatusError(c, err)
		return
	}

	app, entry, err := h.Svc.UpdateStatus(c.Request.Context(), id, req.Status, actorID, req.Note)
	if err != nil {
		h.respondStatusError(c, err)
		return
	}
	c.Set("applicationId", app.ID)
	c.Set("statusTransition", string(before.Status)+"->"+string(app.Status))

	h.publish(c, before, app, entry)
	respond.OK(c, gin.H{
		"application": toApplicationResponse(app),
		"entry":       toHistoryEntryResponse(entry),
	})
}

func (h *Handler) overrideStatus(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "status override is reserved for administrators", nil)
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	actorID := middleware.ActorIDFromContext(c)
	id := c.Param("id")
	before, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.respondStatusError(c, err)
		return
	}

	app, entry, err := h.Svc.OverrideStatus(c.Request.Context(), id, req.Status, actorID, req.Note)
	if err != nil {
		h.respondStatusError(c, err)
		return
	}
	c.Set("applicationId", app.ID)
	c.Set("statusTransition", string(before.Status)+"->"+string(app.Status))

	h.publish(c, before, app, entry)
	respond.OK(c, gin.H{
		"application": toApplicationResponse(app),
		"entry":       toHistoryEntryResponse(entry),
	})
}

func (h *Handler) setArchived(c *gin.Context) {
	role := middleware.ActorRoleFromContext(c)
	if role != middleware.RoleRecruiter && role != middleware.RoleAdmin {
		respond.Error(c, http.StatusForbidden, "forbidden", "only recruiters can archive applications", nil)
		return
	}

	var req archiveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Archived == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "archived is required", nil)
		return
	}

	app, err := h.Svc.SetArchived(c.Request.Context(), c.Param("id"), *req.Archived)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update archive flag", nil)
		return
	}
	respond.OK(c, toApplicationResponse(app))
}

func (h *Handler) bulkStatus(c *gin.Context) {
	role := middleware.ActorRoleFromContext(c)
	if role != middleware.RoleRecruiter && role != middleware.RoleAdmin {
		respond.Error(c, http.StatusForbidden, "forbidden", "only recruiters can change application status", nil)
		return
	}

	var req bulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	actorID := middleware.ActorIDFromContext(c)
	result, err := h.Svc.BulkUpdateStatus(c.Request.Context(), req.ApplicationIDs, req.Status, actorID, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "bulk status change failed", nil)
		}
		return
	}
	respond.OK(c, result)
}

// resumeText extracts plain text from the attached resume for recruiter
// preview and AI prompts.
func (h *Handler) resumeText(c *gin.Context) {
	role := middleware.ActorRoleFromContext(c)
	if role != middleware.RoleRecruiter && role != middleware.RoleAdmin {
		respond.Error(c, http.StatusForbidden, "forbidden", "resume preview is reserved for recruiters", nil)
		return
	}

	app, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch application", nil)
		return
	}
	if app.ResumeKey == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "application has no resume attached", nil)
		return
	}

	text, err := extract.ResumeText(c.Request.Context(), h.Store, app.ResumeKey, "", app.ResumeKey)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			respond.Error(c, http.StatusUnprocessableEntity, "unsupported_type", "resume file type is not supported", nil)
			return
		}
		telemetry.Warn("resume text extraction failed", map[string]any{
			"application_id": app.ID,
			"error":          err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to extract resume text", nil)
		return
	}
	respond.OK(c, gin.H{"applicationId": app.ID, "text": text})
}

func (h *Handler) history(c *gin.Context) {
	entries, err := h.Svc.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load history", nil)
		return
	}
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toHistoryEntryResponse(entry))
	}
	respond.OK(c, gin.H{"history": out})
}

func (h *Handler) correctEntry(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "history corrections are reserved for administrators", nil)
		return
	}

	var req correctEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Status == nil && req.Note == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "status or note is required", nil)
		return
	}

	entry, err := h.Svc.CorrectEntry(c.Request.Context(), c.Param("id"), c.Param("entryId"), req.Status, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "history entry not found", nil)
		case errors.Is(err, ErrInvalidStatus):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to correct history entry", nil)
		}
		return
	}
	respond.OK(c, toHistoryEntryResponse(entry))
}

func (h *Handler) removeEntry(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "history corrections are reserved for administrators", nil)
		return
	}

	err := h.Svc.RemoveEntry(c.Request.Context(), c.Param("id"), c.Param("entryId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "history entry not found", nil)
		case errors.Is(err, ErrLastEntry):
			respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to remove history entry", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) respondStatusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
	case errors.Is(err, ErrInvalidStatus):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to change status", nil)
	}
}

// publish sends the status event without blocking the response on queue
// failures.
func (h *Handler) publish(c *gin.Context, before, after Application, entry HistoryEntry) {
	if h.Notifier == nil {
		return
	}
	event := notify.StatusEvent{
		ApplicationID: after.ID,
		CandidateID:   after.CandidateID,
		OfferID:       after.OfferID,
		FromStatus:    string(before.Status),
		ToStatus:      string(after.Status),
		ActorID:       entry.ActorID,
		ChangedAt:     entry.ChangedAt.Format(time.RFC3339),
		Version:       1,
	}
	if err := h.Notifier.StatusChanged(c.Request.Context(), event); err != nil {
		telemetry.Warn("status event publish failed", map[string]any{
			"application_id": after.ID,
			"error":          err.Error(),
		})
	}
}

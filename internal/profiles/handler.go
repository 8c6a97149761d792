package profiles

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile and offer routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/candidates/:id/profile", h.getProfile)
	rg.PUT("/candidates/:id/profile", h.putProfile)
	rg.POST("/offers", h.createOffer)
	rg.GET("/offers", h.listOffers)
	rg.GET("/offers/:id", h.getOffer)
}

func (h *Handler) getProfile(c *gin.Context) {
	profile, err := h.Svc.CandidateProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		}
		return
	}
	respond.OK(c, toProfileResponse(profile))
}

func (h *Handler) putProfile(c *gin.Context) {
	candidateID := c.Param("id")
	actorID := middleware.ActorIDFromContext(c)
	if actorID != candidateID && !middleware.IsAdmin(c) {
		respond.Error(c, http.StatusForbidden, "forbidden", "profile is owned by the candidate", nil)
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	profile := CandidateProfile{
		ID:              candidateID,
		Location:        req.Location,
		Coords:          req.Coords,
		ExperienceYears: req.ExperienceYears,
	}
	for _, raw := range req.ContractTypes {
		ct, ok := ParseContractType(raw)
		if !ok {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown contract type: "+raw, nil)
			return
		}
		profile.ContractTypes = append(profile.ContractTypes, ct)
	}
	skills, ok := parseSkills(c, req.Skills)
	if !ok {
		return
	}
	profile.Skills = skills

	saved, err := h.Svc.SaveCandidateProfile(c.Request.Context(), profile)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		}
		return
	}
	respond.OK(c, toProfileResponse(saved))
}

func (h *Handler) createOffer(c *gin.Context) {
	role := middleware.ActorRoleFromContext(c)
	if role != middleware.RoleRecruiter && role != middleware.RoleAdmin {
		respond.Error(c, http.StatusForbidden, "forbidden", "only recruiters can publish offers", nil)
		return
	}

	var req offerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ct, ok := ParseContractType(req.ContractType)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown contract type: "+req.ContractType, nil)
		return
	}
	skills, ok := parseSkills(c, req.RequiredSkills)
	if !ok {
		return
	}

	offer := JobOffer{
		Title:          req.Title,
		Location:       req.Location,
		Coords:         req.Coords,
		ContractType:   ct,
		RequiredSkills: skills,
		ExpectedYears:  req.ExpectedYears,
	}

	created, err := h.Svc.CreateJobOffer(c.Request.Context(), offer, middleware.ActorIDFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create offer", nil)
		}
		return
	}
	respond.Created(c, toOfferResponse(created))
}

func (h *Handler) getOffer(c *gin.Context) {
	offer, err := h.Svc.JobOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "offer not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch offer", nil)
		}
		return
	}
	respond.OK(c, toOfferResponse(offer))
}

func (h *Handler) listOffers(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	offers, err := h.Svc.ListJobOffers(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list offers", nil)
		return
	}

	resp := make([]OfferResponse, 0, len(offers))
	for _, offer := range offers {
		resp = append(resp, toOfferResponse(offer))
	}
	respond.OK(c, resp)
}

func parseSkills(c *gin.Context, payload []skillPayload) ([]Skill, bool) {
	skills := make([]Skill, 0, len(payload))
	for _, raw := range payload {
		level, ok := ParseSkillLevel(raw.Level)
		if !ok {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unknown skill level: "+raw.Level, nil)
			return nil, false
		}
		skills = append(skills, Skill{Name: raw.Name, Level: level})
	}
	return skills, true
}

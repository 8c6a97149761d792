package matching

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/server/respond"
)

const maxRankBatch = 500

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches matching routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/matches/compute", h.compute)
	rg.POST("/matches/rank", h.rank)
}

type computeRequest struct {
	CandidateID string `json:"candidateId"`
	OfferID     string `json:"offerId"`
	Annotate    bool   `json:"annotate"`
}

func (h *Handler) compute(c *gin.Context) {
	var req computeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.CandidateID) == "" || strings.TrimSpace(req.OfferID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "candidateId and offerId are required", nil)
		return
	}

	var (
		result AnnotatedResult
		err    error
	)
	if req.Annotate {
		result, err = h.Svc.ComputeAnnotated(c.Request.Context(), req.CandidateID, req.OfferID)
	} else {
		var plain MatchResult
		plain, err = h.Svc.ComputeByIDs(c.Request.Context(), req.CandidateID, req.OfferID)
		result = AnnotatedResult{MatchResult: plain}
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute match", nil)
		}
		return
	}
	respond.OK(c, result)
}

type rankRequest struct {
	OfferID      string   `json:"offerId"`
	CandidateIDs []string `json:"candidateIds"`
}

func (h *Handler) rank(c *gin.Context) {
	var req rankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.OfferID) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "offerId is required", nil)
		return
	}
	if len(req.CandidateIDs) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "candidateIds are required", nil)
		return
	}
	if len(req.CandidateIDs) > maxRankBatch {
		respond.Error(c, http.StatusBadRequest, "validation_error", "too many candidateIds", gin.H{"max": maxRankBatch})
		return
	}

	result, err := h.Svc.RankCandidates(c.Request.Context(), req.OfferID, req.CandidateIDs)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to rank candidates", nil)
		}
		return
	}
	respond.OK(c, result)
}

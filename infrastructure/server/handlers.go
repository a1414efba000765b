package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haldane/qcost/internal/application"
	"github.com/haldane/qcost/internal/domain"
)

// estimateRequest is the wire shape of an estimation request. The
// domain arrives as a string so typos can be answered with a
// suggestion instead of a bare enum failure.
type estimateRequest struct {
	Domain              string  `json:"domain"`
	SystemSize          int     `json:"system_size"`
	Precision           float64 `json:"precision"`
	PhysicalErrorRate   float64 `json:"physical_error_rate"`
	HoppingParameter    float64 `json:"hopping_parameter,omitempty"`
	InteractionStrength float64 `json:"interaction_strength,omitempty"`
	Hardware            string  `json:"hardware,omitempty"`
}

// validationResponse is the wire shape of a rejected request.
type validationResponse struct {
	Error      string `json:"error"`
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
}

// infeasibleResponse is the wire shape of an infeasible estimate.
type infeasibleResponse struct {
	Feasible bool   `json:"feasible"`
	Reason   string `json:"reason"`
}

// handleEstimate runs one estimation and renders one of the three
// response shapes: success, infeasible, or validation failure.
func (s *Server) handleEstimate(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validationResponse{
			Error:      "ValidationError",
			Field:      "body",
			Constraint: "must be a valid JSON estimation request",
		})
		return
	}

	d, err := domain.ParseDomain(req.Domain)
	if err != nil {
		c.JSON(http.StatusBadRequest, validationResponse{
			Error:      "ValidationError",
			Field:      "domain",
			Constraint: err.Error(),
		})
		return
	}

	params := domain.Parameters{
		Domain:              d,
		SystemSize:          req.SystemSize,
		Precision:           req.Precision,
		PhysicalErrorRate:   req.PhysicalErrorRate,
		HoppingParameter:    req.HoppingParameter,
		InteractionStrength: req.InteractionStrength,
		Hardware:            domain.HardwareProfile(req.Hardware),
	}

	est, err := s.pipeline.Run(c.Request.Context(), params)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, validationResponse{
				Error:      "ValidationError",
				Field:      verr.Field,
				Constraint: verr.Constraint,
			})
			return
		}
		s.logger.Error("estimation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if !est.Feasible {
		c.JSON(http.StatusOK, infeasibleResponse{Feasible: false, Reason: est.Reason})
		return
	}
	c.JSON(http.StatusOK, est)
}

// handleDomains lists the supported application domains with their
// descriptive metadata.
func (s *Server) handleDomains(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"domains": domain.DomainCatalog()})
}

// handlePrimitives lists the algorithmic primitive catalog.
func (s *Server) handlePrimitives(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"primitives": application.PrimitiveCatalog()})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

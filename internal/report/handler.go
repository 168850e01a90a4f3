package report

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aevon-lab/xapi-connect/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	msgMissingSection = "Missing parameter (section)."
	msgNoPermissions  = "No permissions."
	msgUnknownSection = "Unknown section."
	msgLRSFailed      = "Could not query the LRS."
	msgInternal       = "Failed to build the report."
)

// RegisterRoutes registers the report routes. guards run before the handlers,
// typically the auth middleware.
func (s *Service) RegisterRoutes(r gin.IRouter, guards ...gin.HandlerFunc) {
	g := r.Group("/v1/reports", guards...)
	g.GET("/sections", s.HandleSectionReport)
	g.GET("/sections/:section", s.HandleSectionReport)
}

// HandleSectionReport handles GET /v1/reports/sections/:section
// Query parameters: verb, project_id. The section may also come as ?section=.
func (s *Service) HandleSectionReport(c *gin.Context) {
	if s.requiredRole != "" && !auth.FromContext(c).HasRole(s.requiredRole) {
		c.JSON(http.StatusForbidden, Response{Message: msgNoPermissions})
		return
	}

	var req SectionReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Message: err.Error()})
		return
	}
	if section := c.Param("section"); section != "" {
		req.Section = section
	}

	resp, err := s.SectionReport(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingSection):
			c.JSON(http.StatusBadRequest, Response{Message: msgMissingSection})
		case errors.Is(err, ErrUnknownSection):
			c.JSON(http.StatusNotFound, Response{Message: msgUnknownSection})
		case errors.Is(err, ErrLRSQuery):
			slog.Error("[Report] LRS aggregate query failed", "section", req.Section, "error", err)
			c.JSON(http.StatusBadGateway, Response{Message: msgLRSFailed})
		default:
			slog.Error("[Report] Failed to build section report", "section", req.Section, "error", err)
			c.JSON(http.StatusInternalServerError, Response{Message: msgInternal})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

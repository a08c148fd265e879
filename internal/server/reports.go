package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	reportdomain "github.com/warungkit/warungpos/internal/report/domain"
)

// GetDailySummary returns an all-zero summary for days with no sales
// instead of a 404; dashboards treat "no sales yet" as a normal state.
func (s *Server) GetDailySummary(c *gin.Context) {
	date, err := parseDateParam(c.Param("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	summary, err := s.reportSvc.GetSummary(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, reportdomain.ErrNotFound) {
			c.JSON(http.StatusOK, reportdomain.SummaryResponse{SummaryDate: date})
			return
		}
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) RecomputeDailySummary(c *gin.Context) {
	date, err := parseDateParam(c.Param("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.reportSvc.Recompute(c.Request.Context(), date); err != nil {
		AbortWithError(c, err)
		return
	}

	summary, err := s.reportSvc.GetSummary(c.Request.Context(), date)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) GetTopSellingItems(c *gin.Context) {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	limit := 0
	if raw := c.Query("count"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
	}

	items, err := s.reportSvc.TopSellingItems(c.Request.Context(), from, to, limit)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

func (s *Server) ListTransactions(c *gin.Context) {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	details, err := s.paymentSvc.ListByDateRange(c.Request.Context(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": details})
}

func (s *Server) CountTransactions(c *gin.Context) {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	count, err := s.paymentSvc.Count(c.Request.Context(), from, to)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (s *Server) GetTransaction(c *gin.Context) {
	resp, err := s.paymentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) DeleteTransaction(c *gin.Context) {
	if err := s.paymentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseDateParam(value string) (time.Time, error) {
	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidRequest
	}
	return date, nil
}

// parseRangeQuery reads start and end dates; end is inclusive.
func parseRangeQuery(c *gin.Context) (time.Time, time.Time, error) {
	from, err := parseDateParam(c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDateParam(c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to := end.Add(24 * time.Hour)
	if !to.After(from) {
		return time.Time{}, time.Time{}, ErrInvalidRequest
	}
	return from, to, nil
}

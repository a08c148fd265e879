package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/warungkit/warungpos/internal/payment/domain"
)

func (s *Server) ProcessPayment(c *gin.Context) {
	var req paymentdomain.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.paymentSvc.Process(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) GetPayment(c *gin.Context) {
	resp, err := s.paymentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) ConfirmQRISPayment(c *gin.Context) {
	var req paymentdomain.ConfirmQRISRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.paymentSvc.ConfirmQRIS(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetDailyTransactions(c *gin.Context) {
	date, err := parseDateParam(c.Param("date"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	details, err := s.paymentSvc.GetDailyTransactions(c.Request.Context(), date)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": details})
}

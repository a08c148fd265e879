package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetStoreInfo(c *gin.Context) {
	cfg := s.storeCfg.Get()
	c.JSON(http.StatusOK, gin.H{
		"store_name":     cfg.StoreName,
		"currency":       cfg.Currency,
		"receipt_footer": cfg.ReceiptFooter,
	})
}

func (s *Server) ListMenuCategories(c *gin.Context) {
	categories, err := s.catalogSvc.ListCategories(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (s *Server) ListMenuItems(c *gin.Context) {
	items, err := s.catalogSvc.ListItemsByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (s *Server) GetMenuItem(c *gin.Context) {
	item, err := s.catalogSvc.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (s *Server) GetTaxSettings(c *gin.Context) {
	settings, err := s.catalogSvc.GetTaxSettings(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

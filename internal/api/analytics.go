package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listCategories handles GET /api/categories
func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.analytics.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// dashboardStats handles GET /api/dashboard/stats
func (h *Handler) dashboardStats(c *gin.Context) {
	stats, err := h.analytics.DashboardStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

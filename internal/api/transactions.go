package api

import (
	"net/http"
	"strconv"

	"pos-service/internal/models"

	"github.com/gin-gonic/gin"
)

// listTransactions handles GET /api/transactions
func (h *Handler) listTransactions(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit value"})
		return
	}

	skip, err := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid skip value"})
		return
	}

	txns, err := h.transactions.List(c.Request.Context(), limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, txns)
}

// getTransaction handles GET /api/transactions/:id
func (h *Handler) getTransaction(c *gin.Context) {
	txn, err := h.transactions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}

// createTransaction handles POST /api/transactions
func (h *Handler) createTransaction(c *gin.Context) {
	var req models.TransactionCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.GetHeader("Idempotency-Key")
	}

	txn, err := h.transactions.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dorm-backend/middleware"
	"dorm-backend/services"
	"dorm-backend/utils"
)

type TransactionController struct {
	Transactions *services.TransactionService
}

func NewTransactionController(transactions *services.TransactionService) *TransactionController {
	return &TransactionController{Transactions: transactions}
}

func (tc *TransactionController) GetTransactions(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	txns, err := tc.Transactions.List(user)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// CreateTransaction opens a pending transaction for one of the caller's
// bookings; the amount comes from the booked room's price.
func (tc *TransactionController) CreateTransaction(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var in services.CreateTransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	txn, err := tc.Transactions.Create(user, in)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func (tc *TransactionController) GetTransaction(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	txn, err := tc.Transactions.GetByID(user, id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// DeleteTransaction removes one of the caller's pending transactions.
func (tc *TransactionController) DeleteTransaction(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := tc.Transactions.Delete(user, id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Transaction deleted successfully"})
}

type payPayload struct {
	RefID string `json:"ref_id" binding:"required"`
}

// PayTransaction marks a transaction as paid with its gateway reference.
func (tc *TransactionController) PayTransaction(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var payload payPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "ref_id is required")
		return
	}

	txn, err := tc.Transactions.MarkPaid(id, payload.RefID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// FinancialReport aggregates transaction totals by status and paid
// revenue per dorm.
func (tc *TransactionController) FinancialReport(c *gin.Context) {
	report, err := tc.Transactions.Financial()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

package handler

import (
	"github.com/bizbooks/bizbooks-api/internal/application/service"
	"github.com/bizbooks/bizbooks-api/internal/domain/enum"
	"github.com/bizbooks/bizbooks-api/internal/presentation/http/dto/request"
	"github.com/bizbooks/bizbooks-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// List returns all transactions ordered by date descending.
func (h *TransactionHandler) List(c *gin.Context) {
	transactions, err := h.transactionService.ListTransactions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, transactions)
}

// Create records a new sale or purchase.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	date, err := request.ParseDate(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), &service.CreateTransactionInput{
		Type:     enum.TransactionType(req.Type),
		Date:     date,
		Party:    req.Party,
		Items:    req.Items,
		Amount:   req.Amount,
		BillDate: req.BillDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, transaction)
}

// Update applies a partial update to a transaction.
func (h *TransactionHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req request.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateTransactionInput{
		Party:    req.Party,
		Items:    req.Items,
		Amount:   req.Amount,
		BillDate: req.BillDate,
	}
	if req.Type != nil {
		t := enum.TransactionType(*req.Type)
		input.Type = &t
	}
	if req.Date != nil {
		date, err := request.ParseDate(*req.Date)
		if err != nil {
			response.Error(c, err)
			return
		}
		input.Date = &date
	}
	transaction, err := h.transactionService.UpdateTransaction(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, transaction)
}

// Delete removes a transaction; an unknown id answers 404.
func (h *TransactionHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "Transaction deleted")
}

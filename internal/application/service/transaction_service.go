package service

import (
	"context"
	"time"

	"github.com/bizbooks/bizbooks-api/internal/domain/entity"
	"github.com/bizbooks/bizbooks-api/internal/domain/enum"
	"github.com/bizbooks/bizbooks-api/internal/domain/repository"
	"github.com/bizbooks/bizbooks-api/pkg/apperror"
	"github.com/bizbooks/bizbooks-api/pkg/gst"
)

// TransactionService handles sale/purchase entry operations
type TransactionService struct {
	transactionRepo repository.TransactionRepository
	billing         *BillNumberService
}

// NewTransactionService creates a new transaction service
func NewTransactionService(transactionRepo repository.TransactionRepository, billing *BillNumberService) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		billing:         billing,
	}
}

// CreateTransactionInput represents the create transaction input
type CreateTransactionInput struct {
	Type     enum.TransactionType
	Date     time.Time
	Party    string
	Items    string
	Amount   float64
	BillDate string
}

// CreateTransaction persists a new entry. Month and the tax-inclusive
// amount are derived here; the bill number comes from the sequencer and a
// sequencer failure aborts the whole create.
func (s *TransactionService) CreateTransaction(ctx context.Context, input *CreateTransactionInput) (*entity.Transaction, error) {
	if !input.Type.Valid() {
		return nil, apperror.NewBadRequestError("Transaction type must be Sale or Purchase")
	}
	if input.Date.IsZero() || input.Party == "" || input.Items == "" || input.BillDate == "" {
		return nil, apperror.NewBadRequestError("Missing required fields")
	}
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Amount must be greater than zero")
	}

	billNumber, err := s.billing.NextBillNumber(ctx, input.Type, input.Date)
	if err != nil {
		return nil, err
	}

	transaction := &entity.Transaction{
		Type:          input.Type,
		Date:          input.Date,
		Party:         input.Party,
		Items:         input.Items,
		Amount:        input.Amount,
		BillDate:      input.BillDate,
		BillNumber:    billNumber,
		Month:         entity.MonthLabel(input.Date),
		AmountWithGST: gst.ToGross(input.Amount),
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// UpdateTransactionInput represents the partial update input; nil fields
// are left untouched.
type UpdateTransactionInput struct {
	Type     *enum.TransactionType
	Date     *time.Time
	Party    *string
	Items    *string
	Amount   *float64
	BillDate *string
}

// Empty reports whether no field was supplied.
func (i *UpdateTransactionInput) Empty() bool {
	return i.Type == nil && i.Date == nil && i.Party == nil &&
		i.Items == nil && i.Amount == nil && i.BillDate == nil
}

// UpdateTransaction applies a partial update. A new bill number is minted
// only when the type changes or the date moves to a different year; the old
// number is abandoned, not reclaimed. Month follows any date change and the
// tax-inclusive amount follows any amount change.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, input *UpdateTransactionInput) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	if input.Empty() {
		return transaction, nil
	}

	needsNewBillNumber := false

	if input.Type != nil && *input.Type != transaction.Type {
		if !input.Type.Valid() {
			return nil, apperror.NewBadRequestError("Transaction type must be Sale or Purchase")
		}
		transaction.Type = *input.Type
		needsNewBillNumber = true
	}

	if input.Date != nil {
		if input.Date.Year() != transaction.Year() {
			needsNewBillNumber = true
		}
		transaction.Date = *input.Date
		transaction.Month = entity.MonthLabel(*input.Date)
	}

	if input.Party != nil {
		transaction.Party = *input.Party
	}

	if input.Items != nil {
		transaction.Items = *input.Items
	}

	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, apperror.NewBadRequestError("Amount must be greater than zero")
		}
		transaction.Amount = *input.Amount
		transaction.AmountWithGST = gst.ToGross(*input.Amount)
	}

	if input.BillDate != nil {
		transaction.BillDate = *input.BillDate
	}

	if needsNewBillNumber {
		billNumber, err := s.billing.NextBillNumber(ctx, transaction.Type, transaction.Date)
		if err != nil {
			return nil, err
		}
		transaction.BillNumber = billNumber
	}

	if err := s.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return transaction, nil
}

// ListTransactions returns all transactions ordered by date descending
func (s *TransactionService) ListTransactions(ctx context.Context) ([]entity.Transaction, error) {
	return s.transactionRepo.GetAll(ctx)
}

// DeleteTransaction removes a transaction. Deleting an unknown id returns
// NotFound so the handler can answer 404.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	removed, err := s.transactionRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperror.NewNotFoundError("Transaction")
	}
	return nil
}

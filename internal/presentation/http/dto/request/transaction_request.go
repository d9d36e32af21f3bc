package request

import (
	"time"

	"github.com/bizbooks/bizbooks-api/pkg/apperror"
)

// CreateTransactionRequest represents a create transaction request. Field
// names follow the frontend wire contract (camelCase).
type CreateTransactionRequest struct {
	Type     string  `json:"type" binding:"required,oneof=Sale Purchase"`
	Date     string  `json:"date" binding:"required"`
	Party    string  `json:"party" binding:"required"`
	Items    string  `json:"items" binding:"required"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	BillDate string  `json:"billDate" binding:"required"`
}

// UpdateTransactionRequest represents a partial transaction update; absent
// fields are left untouched.
type UpdateTransactionRequest struct {
	Type     *string  `json:"type" binding:"omitempty,oneof=Sale Purchase"`
	Date     *string  `json:"date"`
	Party    *string  `json:"party"`
	Items    *string  `json:"items"`
	Amount   *float64 `json:"amount" binding:"omitempty,gt=0"`
	BillDate *string  `json:"billDate"`
}

// ParseDate accepts the two date shapes the frontend sends: a plain
// calendar date or a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, apperror.NewBadRequestError("Invalid date format")
}

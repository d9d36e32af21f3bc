package entity

import (
	"time"

	"github.com/bizbooks/bizbooks-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transaction represents one sale or purchase entry in the books.
//
// Amount is the tax-exclusive value entered by the user; AmountWithGST is
// persisted redundantly and always equals Amount * 1.18. Month is derived
// from Date ("Jan-2006") and is the grouping key for the monthly overview.
type Transaction struct {
	ID            string               `gorm:"size:64;primary_key" json:"id"`
	Type          enum.TransactionType `gorm:"size:20;not null;index" json:"type"`
	Date          time.Time            `gorm:"type:date;not null;index" json:"date"`
	Party         string               `gorm:"size:255;not null" json:"party"`
	Items         string               `gorm:"type:text;not null" json:"items"`
	Amount        float64              `gorm:"type:decimal(15,2);not null" json:"amount"`
	BillDate      string               `gorm:"size:20;not null" json:"billDate"`
	BillNumber    string               `gorm:"size:50;not null;uniqueIndex" json:"billNumber"`
	Month         string               `gorm:"size:20;not null" json:"month"`
	AmountWithGST float64              `gorm:"column:amount_with_gst;type:decimal(15,2);not null" json:"amountWithGST"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// BeforeCreate generates an opaque id before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// Year returns the calendar year of the transaction date, the partition
// key for bill numbering.
func (t *Transaction) Year() int {
	return t.Date.Year()
}

// MonthLabel derives the month grouping label from a date.
func MonthLabel(date time.Time) string {
	return date.Format("Jan-2006")
}

// BillNumberSequence holds the per-year monotonic counters used to mint
// bill numbers. One row per calendar year; counters only ever increment.
type BillNumberSequence struct {
	Year               int   `gorm:"primary_key;autoIncrement:false" json:"year"`
	LastPurchaseNumber int64 `gorm:"not null;default:0" json:"last_purchase_number"`
	LastSaleNumber     int64 `gorm:"not null;default:0" json:"last_sale_number"`
}

// TableName returns the table name for the BillNumberSequence model
func (BillNumberSequence) TableName() string {
	return "bill_number_sequences"
}

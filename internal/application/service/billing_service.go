package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bizbooks/bizbooks-api/internal/domain/enum"
	"github.com/bizbooks/bizbooks-api/internal/domain/repository"
)

// BillNumberService mints formatted bill numbers. Each (type, year) pair
// owns an independent monotonic counter; numbers look like S2024001 or
// P2024042, with the counter padded to three digits but never truncated.
type BillNumberService struct {
	sequenceRepo repository.SequenceRepository
}

// NewBillNumberService creates a new bill number service
func NewBillNumberService(sequenceRepo repository.SequenceRepository) *BillNumberService {
	return &BillNumberService{sequenceRepo: sequenceRepo}
}

// NextBillNumber returns the next bill number for the given type and date.
// A failure here must abort the surrounding create/update; a transaction is
// never persisted without a freshly minted number.
func (s *BillNumberService) NextBillNumber(ctx context.Context, t enum.TransactionType, date time.Time) (string, error) {
	year := date.Year()
	next, err := s.sequenceRepo.Increment(ctx, year, t)
	if err != nil {
		return "", fmt.Errorf("failed to advance bill number sequence: %w", err)
	}
	return FormatBillNumber(t, year, next), nil
}

// FormatBillNumber renders a bill number as {prefix}{year}{counter}.
func FormatBillNumber(t enum.TransactionType, year int, counter int64) string {
	return fmt.Sprintf("%s%d%03d", t.BillPrefix(), year, counter)
}

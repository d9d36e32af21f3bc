package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// store carries the shared GORM handle and the per-call query timeout.
type store struct {
	db      *gorm.DB
	timeout time.Duration
}

// bound derives a deadline-bearing context for one store call. A zero
// timeout leaves the caller's context untouched.
func (s *store) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

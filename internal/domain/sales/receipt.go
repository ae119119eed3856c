package sales

import (
	"fmt"
	"sync/atomic"
	"time"
)

// receiptSequenceMod keeps the suffix at six digits
const receiptSequenceMod = 1_000_000

// ReceiptSequence issues receipt numbers for one branch: a configurable
// prefix, the two-digit year/month/day, and a six-digit strictly
// increasing suffix. The suffix is a branch-scoped atomic counter rather
// than a wall-clock slice, so concurrent commits within the same
// millisecond cannot collide.
type ReceiptSequence struct {
	prefix  string
	counter atomic.Uint64
}

// NewReceiptSequence creates a sequence with the given prefix
func NewReceiptSequence(prefix string) *ReceiptSequence {
	return &ReceiptSequence{prefix: prefix}
}

// Next issues the next receipt number for the given time
func (s *ReceiptSequence) Next(now time.Time) string {
	n := s.counter.Add(1) % receiptSequenceMod
	return fmt.Sprintf("%s%s%06d", s.prefix, now.Format("060102"), n)
}

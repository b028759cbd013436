package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/model"
)

var baseTime = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := baseTime
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

// seqIDs returns an id generator yielding id-1, id-2, ...
func seqIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) model.Date {
	return model.NewDate(y, time.Month(m), d)
}

func draft(amount, desc string, d model.Date, cat model.Category, typ model.TransactionType) model.TransactionDraft {
	return model.TransactionDraft{
		Amount:      dec(amount),
		Description: desc,
		Date:        d,
		Category:    cat,
		Type:        typ,
	}
}

func newTestTransactionStore(b Backend) *TransactionStore {
	return NewTransactionStore(b, WithClock(stepClock()), WithIDGenerator(seqIDs()))
}

func newTestBudgetStore(b Backend) *BudgetStore {
	return NewBudgetStore(b, WithClock(stepClock()), WithIDGenerator(seqIDs()))
}

var errDisk = errors.New("disk on fire")

// faultyBackend wraps a MemoryBackend and fails reads or writes on demand.
type faultyBackend struct {
	*MemoryBackend
	failRead  bool
	failWrite bool
}

func newFaultyBackend() *faultyBackend {
	return &faultyBackend{MemoryBackend: NewMemoryBackend()}
}

func (f *faultyBackend) Read(key string) ([]byte, error) {
	if f.failRead {
		return nil, errDisk
	}
	return f.MemoryBackend.Read(key)
}

func (f *faultyBackend) Write(key string, data []byte) error {
	if f.failWrite {
		return errDisk
	}
	return f.MemoryBackend.Write(key, data)
}

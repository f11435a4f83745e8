package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"lickees/internal/domain"
)

// MemoryStore keeps sales in process memory. It backs the server when no
// database is configured and is the store used by tests.
type MemoryStore struct {
	mu    sync.RWMutex
	m     map[string]memoryEntry
	seq   int64
	clock func() time.Time
}

type memoryEntry struct {
	record domain.SaleRecord
	seq    int64
}

func NewMemoryStore(clock func() time.Time) *MemoryStore {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryStore{
		m:     map[string]memoryEntry{},
		clock: clock,
	}
}

func (s *MemoryStore) ListSales(_ context.Context) ([]domain.SaleRecord, error) {
	s.mu.RLock()
	entries := make([]memoryEntry, 0, len(s.m))
	for _, e := range s.m {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.record.CreatedAt.Equal(b.record.CreatedAt) {
			return a.record.CreatedAt.After(b.record.CreatedAt)
		}
		return a.seq > b.seq
	})

	sales := make([]domain.SaleRecord, 0, len(entries))
	for _, e := range entries {
		sales = append(sales, cloneRecord(e.record))
	}
	return sales, nil
}

func (s *MemoryStore) InsertSale(_ context.Context, input domain.SaleInput) (domain.SaleRecord, error) {
	record := domain.SaleRecord{
		ID:            uuid.NewString(),
		Date:          input.Date,
		Month:         input.Month,
		Time:          input.Time,
		Items:         append([]domain.LineItem(nil), input.Items...),
		Total:         input.Total,
		PaymentMethod: input.PaymentMethod,
		CreatedAt:     s.clock().UTC(),
	}

	s.mu.Lock()
	s.seq++
	s.m[record.ID] = memoryEntry{record: record, seq: s.seq}
	s.mu.Unlock()

	return cloneRecord(record), nil
}

func (s *MemoryStore) DeleteSale(_ context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return ErrNotFound
	}
	delete(s.m, id)
	return nil
}

func cloneRecord(r domain.SaleRecord) domain.SaleRecord {
	r.Items = append([]domain.LineItem(nil), r.Items...)
	return r
}

package inventory

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"

	"lickees/internal/domain"
)

var ErrUnknownItem = errors.New("item is not tracked by the inventory ledger")

const DefaultLowStockThreshold = 10

// Ledger is the per-item stock counter. It is deliberately independent of the
// sale history: manual adjustments are never reconciled against sales.
type Ledger struct {
	mu        sync.RWMutex
	levels    map[string]int
	order     []string
	threshold int
}

// NewLedger tracks names in the given order. Levels come from snapshot when
// present there, otherwise defaultLevel. A threshold <= 0 falls back to
// DefaultLowStockThreshold.
func NewLedger(names []string, snapshot map[string]int, defaultLevel, threshold int) *Ledger {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	l := &Ledger{
		levels:    make(map[string]int, len(names)),
		order:     make([]string, 0, len(names)),
		threshold: threshold,
	}
	for _, name := range names {
		level, ok := snapshot[name]
		if !ok {
			level = defaultLevel
		}
		l.track(name, level)
	}
	return l
}

func (l *Ledger) track(name string, level int) {
	if _, ok := l.levels[name]; !ok {
		l.order = append(l.order, name)
	}
	l.levels[name] = max(0, level)
}

func (l *Ledger) Level(name string) (int, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	level, ok := l.levels[name]
	return level, ok
}

// Levels returns every tracked level in tracking order.
func (l *Ledger) Levels() []domain.InventoryLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.InventoryLevel, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, domain.InventoryLevel{Name: name, Level: l.levels[name]})
	}
	return out
}

// Snapshot is the persisted form of the ledger.
func (l *Ledger) Snapshot() map[string]int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]int, len(l.levels))
	for name, level := range l.levels {
		out[name] = level
	}
	return out
}

// Set applies an operator-entered level. Input that does not parse as an
// integer counts as zero and negatives clamp to zero.
func (l *Ledger) Set(name, raw string) (int, error) {
	level := ParseLevel(raw)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.levels[name]; !ok {
		return 0, ErrUnknownItem
	}
	l.levels[name] = level
	return level, nil
}

func ParseLevel(raw string) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return max(0, parsed)
}

// Apply decrements stock for a confirmed sale, flooring at zero, and returns
// the alerts raised by the lines of that sale in cart order.
func (l *Ledger) Apply(lines []domain.LineItem) []domain.StockAlert {
	l.mu.Lock()
	defer l.mu.Unlock()

	alerts := make([]domain.StockAlert, 0)
	for _, line := range lines {
		current := l.levels[line.Name]
		l.track(line.Name, current-line.Quantity)
		next := l.levels[line.Name]
		switch {
		case next <= 0:
			alerts = append(alerts, domain.StockAlert{Name: line.Name, Level: next, Kind: domain.AlertOutOfStock})
		case next < l.threshold:
			alerts = append(alerts, domain.StockAlert{Name: line.Name, Level: next, Kind: domain.AlertLowStock})
		}
	}
	return alerts
}

// Replace overwrites levels for the given rows; names not tracked yet are
// added at the end.
func (l *Ledger) Replace(rows []domain.InventoryImportRow) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, row := range rows {
		l.track(row.Name, row.Quantity)
	}
	return len(rows)
}

// LowStock lists tracked items at or below zero or under the threshold,
// lowest level first.
func (l *Ledger) LowStock() []domain.StockAlert {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.StockAlert, 0)
	for _, name := range l.order {
		level := l.levels[name]
		switch {
		case level <= 0:
			out = append(out, domain.StockAlert{Name: name, Level: level, Kind: domain.AlertOutOfStock})
		case level < l.threshold:
			out = append(out, domain.StockAlert{Name: name, Level: level, Kind: domain.AlertLowStock})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

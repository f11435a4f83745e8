package analytics

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"lickees/internal/domain"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	TimeLayout  = "15:04"
)

var ErrInvalidPeriod = errors.New("period must be today or month")

type Period string

const (
	PeriodToday Period = "today"
	PeriodMonth Period = "month"
)

func ParsePeriod(raw string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PeriodToday:
		return PeriodToday, nil
	case PeriodMonth:
		return PeriodMonth, nil
	default:
		return "", ErrInvalidPeriod
	}
}

// Key identifies the concrete window of a period at now, e.g. "today:2026-10-16".
func (p Period) Key(now time.Time) string {
	if p == PeriodMonth {
		return string(p) + ":" + now.Format(MonthLayout)
	}
	return string(PeriodToday) + ":" + now.Format(DateLayout)
}

func (p Period) Label() string {
	if p == PeriodMonth {
		return "This Month"
	}
	return "Today"
}

func (p Period) Predicate(now time.Time) Predicate {
	if p == PeriodMonth {
		return ThisMonth(now)
	}
	return Today(now)
}

func OnDate(date string) Predicate {
	return func(r domain.SaleRecord) bool { return r.Date == date }
}

func InMonth(month string) Predicate {
	return func(r domain.SaleRecord) bool { return r.Month == month }
}

func Today(now time.Time) Predicate {
	return OnDate(now.Format(DateLayout))
}

func ThisMonth(now time.Time) Predicate {
	return InMonth(now.Format(MonthLayout))
}

func All() Predicate {
	return func(domain.SaleRecord) bool { return true }
}

// Fingerprint summarises a newest-first history well enough to tell when a
// sale was inserted or deleted since a result was computed.
func Fingerprint(records []domain.SaleRecord) string {
	if len(records) == 0 {
		return "0"
	}
	newest := records[0]
	return strconv.Itoa(len(records)) + "-" + newest.ID + "-" + strconv.FormatInt(newest.CreatedAt.UnixNano(), 36)
}

package service

import (
	"lickees/internal/analytics"
	"lickees/internal/cart"
	"lickees/internal/catalog"
	"lickees/internal/domain"
)

type Screen string

const (
	ScreenIntro     Screen = "intro"
	ScreenPOS       Screen = "pos"
	ScreenDashboard Screen = "dashboard"
)

func ParseScreen(raw string) (Screen, error) {
	switch s := Screen(raw); s {
	case ScreenIntro, ScreenPOS, ScreenDashboard:
		return s, nil
	default:
		return "", ErrInvalidScreen
	}
}

// session is the state of the single till. Service serialises access.
type session struct {
	screen   Screen
	cart     *cart.Cart
	payment  domain.PaymentMethod
	category string
	search   string
	tab      analytics.Period
}

func newSession() *session {
	return &session{
		screen:   ScreenIntro,
		cart:     cart.New(),
		payment:  domain.PaymentCash,
		category: catalog.AllCategories,
		tab:      analytics.PeriodToday,
	}
}

// SessionView is a read-only copy of the session handed to callers.
type SessionView struct {
	Screen        Screen               `json:"screen"`
	Lines         []domain.CartLine    `json:"lines"`
	Total         int                  `json:"total"`
	Units         int                  `json:"units"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Category      string               `json:"category"`
	Search        string               `json:"search"`
	DashboardTab  analytics.Period     `json:"dashboard_tab"`
}

func (s *session) view() SessionView {
	lines := s.cart.Lines()
	units := 0
	for _, line := range lines {
		units += line.Quantity
	}
	return SessionView{
		Screen:        s.screen,
		Lines:         lines,
		Total:         s.cart.Total(),
		Units:         units,
		PaymentMethod: s.payment,
		Category:      s.category,
		Search:        s.search,
		DashboardTab:  s.tab,
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"lickees/internal/analytics"
	"lickees/internal/cache"
	"lickees/internal/catalog"
	"lickees/internal/domain"
	"lickees/internal/excel"
	"lickees/internal/inventory"
	"lickees/internal/messaging"
	"lickees/internal/repository"
)

const ShopName = "Lickees"

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrOutOfStock           = errors.New("item is out of stock")
	ErrUnknownItem          = catalog.ErrUnknownItem
	ErrNotInCart            = errors.New("item is not in the cart")
	ErrInvalidScreen        = errors.New("screen must be intro, pos or dashboard")
	ErrInvalidPaymentMethod = errors.New("payment method must be cash or upi")
	ErrTillBusy             = errors.New("another checkout is in progress")
	ErrStoreUnavailable     = errors.New("sale store unavailable")
	ErrNoSettings           = errors.New("settings store is not configured")
)

// Settings is the local key-value store of the till.
type Settings interface {
	Phone() string
	SetPhone(raw string) (string, error)
	SaveInventory(levels map[string]int) error
}

type AnalyticsCache interface {
	Get(ctx context.Context, key string) (domain.AnalyticsResult, bool, error)
	Set(ctx context.Context, key string, result domain.AnalyticsResult) error
}

// TillLocker hands out the single-writer lock taken around checkout. Acquire
// reports a lock held elsewhere as cache.ErrLocked; any other error means the
// lock backend itself failed.
type TillLocker interface {
	Acquire(ctx context.Context) (func(context.Context) error, error)
}

type Deps struct {
	Store       repository.SalesStore
	Ledger      *inventory.Ledger
	Settings    Settings
	Cache       AnalyticsCache
	Lock        TillLocker
	Logger      *zap.Logger
	Location    *time.Location
	PhoneRegion string
	Clock       func() time.Time
}

type Service struct {
	store    repository.SalesStore
	ledger   *inventory.Ledger
	settings Settings
	cache    AnalyticsCache
	lock     TillLocker
	logger   *zap.Logger
	location *time.Location
	region   string
	clock    func() time.Time

	mu      sync.Mutex
	session *session
}

func New(deps Deps) *Service {
	s := &Service{
		store:    deps.Store,
		ledger:   deps.Ledger,
		settings: deps.Settings,
		cache:    deps.Cache,
		lock:     deps.Lock,
		logger:   deps.Logger,
		location: deps.Location,
		region:   deps.PhoneRegion,
		clock:    deps.Clock,
		session:  newSession(),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.location == nil {
		s.location = time.Local
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	return s
}

func (s *Service) now() time.Time {
	return s.clock().In(s.location)
}

func (s *Service) Session() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.view()
}

func (s *Service) Navigate(raw string) (SessionView, error) {
	screen, err := ParseScreen(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return SessionView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.screen = screen
	return s.session.view(), nil
}

// Catalog filters the menu without touching the session.
func (s *Service) Catalog(category, search string) []domain.CatalogItem {
	return catalog.Filter(category, search)
}

// SelectFilter remembers the menu filter on the session. An empty category
// selects every category.
func (s *Service) SelectFilter(category, search string) SessionView {
	category = strings.TrimSpace(category)
	if category == "" {
		category = catalog.AllCategories
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.category = category
	s.session.search = strings.TrimSpace(search)
	return s.session.view()
}

// AddToCart adds one unit of the named item. Items with no stock left are
// refused; items already in the cart are not checked against the level.
func (s *Service) AddToCart(name string) (SessionView, error) {
	item, err := catalog.Lookup(name)
	if err != nil {
		return SessionView{}, err
	}
	if level, ok := s.ledger.Level(item.Name); ok && level <= 0 {
		return SessionView{}, ErrOutOfStock
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.cart.Add(item)
	return s.session.view(), nil
}

func (s *Service) UpdateQuantity(name string, delta int) (SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.cart.SetQuantity(strings.TrimSpace(name), delta) {
		return SessionView{}, ErrNotInCart
	}
	return s.session.view(), nil
}

func (s *Service) RemoveFromCart(name string) SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.cart.Remove(strings.TrimSpace(name))
	return s.session.view()
}

func (s *Service) ClearCart() SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.cart.Clear()
	return s.session.view()
}

func (s *Service) SelectPaymentMethod(raw string) (SessionView, error) {
	method := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(raw)))
	if !method.Valid() {
		return SessionView{}, ErrInvalidPaymentMethod
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.payment = method
	return s.session.view(), nil
}

type Receipt struct {
	Sale    domain.SaleRecord   `json:"sale"`
	Alerts  []domain.StockAlert `json:"alerts"`
	Message string              `json:"message"`
}

// Checkout records the cart as one sale. Nothing in the session or the
// ledger changes unless the store accepted the sale.
func (s *Service) Checkout(ctx context.Context) (Receipt, error) {
	if s.lock != nil {
		release, err := s.lock.Acquire(ctx)
		if err != nil {
			if errors.Is(err, cache.ErrLocked) {
				s.logger.Warn("till lock held elsewhere", zap.Error(err))
				return Receipt{}, fmt.Errorf("%w: %v", ErrTillBusy, err)
			}
			s.logger.Error("acquire till lock", zap.Error(err))
			return Receipt{}, fmt.Errorf("%w: till lock: %w", ErrStoreUnavailable, err)
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				s.logger.Warn("release till lock", zap.Error(err))
			}
		}()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session.cart.Empty() {
		return Receipt{}, ErrEmptyCart
	}

	now := s.now()
	lines := s.session.cart.Lines()
	items := make([]domain.LineItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.LineItem{Name: line.Item.Name, Price: line.Item.Price, Quantity: line.Quantity})
	}
	input := domain.SaleInput{
		Date:          now.Format(analytics.DateLayout),
		Month:         now.Format(analytics.MonthLayout),
		Time:          now.Format(analytics.TimeLayout),
		Items:         items,
		Total:         s.session.cart.Total(),
		PaymentMethod: s.session.payment,
	}

	sale, err := s.store.InsertSale(ctx, input)
	if err != nil {
		s.logger.Error("insert sale",
			zap.Error(err),
			zap.String("payment_method", string(input.PaymentMethod)),
			zap.Int("total", input.Total),
		)
		return Receipt{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	alerts := s.ledger.Apply(items)
	s.persistInventory()
	s.session.cart.Clear()

	s.logger.Info("sale recorded",
		zap.String("sale_id", sale.ID),
		zap.String("payment_method", string(sale.PaymentMethod)),
		zap.Int("total", sale.Total),
		zap.Int("alerts", len(alerts)),
	)
	return Receipt{
		Sale:    sale,
		Alerts:  alerts,
		Message: fmt.Sprintf("Sale of %s recorded via %s!", messaging.FormatAmount(sale.Total), strings.ToUpper(string(sale.PaymentMethod))),
	}, nil
}

func (s *Service) ListSales(ctx context.Context) ([]domain.SaleRecord, error) {
	records, err := s.store.ListSales(ctx)
	if err != nil {
		s.logger.Error("list sales", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return records, nil
}

// DeleteSale removes a record from history. Stock levels are left alone.
func (s *Service) DeleteSale(ctx context.Context, id string) error {
	err := s.store.DeleteSale(ctx, strings.TrimSpace(id))
	switch {
	case err == nil:
		s.logger.Info("sale deleted", zap.String("sale_id", id))
		return nil
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrEmptyID):
		return err
	default:
		s.logger.Error("delete sale", zap.Error(err), zap.String("sale_id", id))
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}

type Dashboard struct {
	Period        analytics.Period        `json:"period"`
	Label         string                  `json:"label"`
	Result        domain.AnalyticsResult  `json:"result"`
	Shares        analytics.Shares        `json:"shares"`
	AverageTicket int                     `json:"average_ticket"`
	Inventory     []domain.InventoryLevel `json:"inventory"`
	LowStock      []domain.StockAlert     `json:"low_stock"`
}

func (s *Service) Dashboard(ctx context.Context, rawPeriod string) (Dashboard, error) {
	period, err := analytics.ParsePeriod(rawPeriod)
	if err != nil {
		return Dashboard{}, err
	}
	result, err := s.analyze(ctx, period)
	if err != nil {
		return Dashboard{}, err
	}

	s.mu.Lock()
	s.session.tab = period
	s.mu.Unlock()

	return Dashboard{
		Period:        period,
		Label:         period.Label(),
		Result:        result,
		Shares:        analytics.PaymentShares(result),
		AverageTicket: analytics.AverageTicket(result),
		Inventory:     s.ledger.Levels(),
		LowStock:      s.ledger.LowStock(),
	}, nil
}

func (s *Service) analyze(ctx context.Context, period analytics.Period) (domain.AnalyticsResult, error) {
	records, err := s.ListSales(ctx)
	if err != nil {
		return domain.AnalyticsResult{}, err
	}
	now := s.now()
	if s.cache == nil {
		return analytics.Compute(records, period.Predicate(now)), nil
	}

	key := period.Key(now) + ":" + analytics.Fingerprint(records)
	cached, hit, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("analytics cache read", zap.Error(err), zap.String("key", key))
	} else if hit {
		return cached, nil
	}

	result := analytics.Compute(records, period.Predicate(now))
	if err := s.cache.Set(ctx, key, result); err != nil {
		s.logger.Warn("analytics cache write", zap.Error(err), zap.String("key", key))
	}
	return result, nil
}

// ShareLink builds the WhatsApp hand-off for the period's summary.
func (s *Service) ShareLink(ctx context.Context, rawPeriod string) (string, error) {
	period, err := analytics.ParsePeriod(rawPeriod)
	if err != nil {
		return "", err
	}
	result, err := s.analyze(ctx, period)
	if err != nil {
		return "", err
	}
	phone := ""
	if s.settings != nil {
		phone = s.settings.Phone()
	}
	return messaging.WhatsAppLink(phone, s.region, messaging.Summary(ShopName, period.Label(), result))
}

// ExportReport writes the period's workbook to w and returns the suggested
// file name.
func (s *Service) ExportReport(ctx context.Context, rawPeriod string, w io.Writer) (string, error) {
	period, err := analytics.ParsePeriod(rawPeriod)
	if err != nil {
		return "", err
	}
	result, err := s.analyze(ctx, period)
	if err != nil {
		return "", err
	}
	title := fmt.Sprintf("%s Sales Report (%s)", ShopName, period.Label())
	if err := excel.WriteReport(w, title, result); err != nil {
		return "", err
	}
	return fmt.Sprintf("lickees-%s.xlsx", strings.ReplaceAll(period.Key(s.now()), ":", "-")), nil
}

func (s *Service) Inventory() []domain.InventoryLevel {
	return s.ledger.Levels()
}

func (s *Service) LowStock() []domain.StockAlert {
	return s.ledger.LowStock()
}

// SetInventoryLevel applies an operator-typed level for a catalog item.
func (s *Service) SetInventoryLevel(name, raw string) (domain.InventoryLevel, error) {
	name = strings.TrimSpace(name)
	level, err := s.ledger.Set(name, raw)
	if err != nil {
		if errors.Is(err, inventory.ErrUnknownItem) {
			return domain.InventoryLevel{}, ErrUnknownItem
		}
		return domain.InventoryLevel{}, err
	}
	s.persistInventory()
	return domain.InventoryLevel{Name: name, Level: level}, nil
}

type ImportResult struct {
	Updated   int      `json:"updated"`
	Unmatched []string `json:"unmatched"`
}

// ImportInventory overwrites levels for rows naming catalog items, allowing
// small spelling differences. Rows for other names are reported back and
// ignored.
func (s *Service) ImportInventory(rows []domain.InventoryImportRow) (ImportResult, error) {
	if len(rows) == 0 {
		return ImportResult{}, fmt.Errorf("import file has no data rows")
	}
	matched := make([]domain.InventoryImportRow, 0, len(rows))
	result := ImportResult{Unmatched: make([]string, 0)}
	for _, row := range rows {
		item, ok := catalog.Resolve(row.Name, catalog.DefaultMatchThreshold)
		if !ok {
			result.Unmatched = append(result.Unmatched, row.Name)
			continue
		}
		matched = append(matched, domain.InventoryImportRow{Name: item.Name, Quantity: row.Quantity})
	}
	result.Updated = s.ledger.Replace(matched)
	s.persistInventory()
	s.logger.Info("inventory imported", zap.Int("updated", result.Updated), zap.Int("unmatched", len(result.Unmatched)))
	return result, nil
}

func (s *Service) Phone() string {
	if s.settings == nil {
		return ""
	}
	return s.settings.Phone()
}

func (s *Service) SetPhone(raw string) (string, error) {
	if s.settings == nil {
		return "", ErrNoSettings
	}
	return s.settings.SetPhone(raw)
}

func (s *Service) persistInventory() {
	if s.settings == nil {
		return
	}
	if err := s.settings.SaveInventory(s.ledger.Snapshot()); err != nil {
		s.logger.Error("persist inventory", zap.Error(err))
	}
}

package domain

import "time"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	// PaymentDigital is stored as "upi", the wire value the shop has always used
	// for digital transfers.
	PaymentDigital PaymentMethod = "upi"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentDigital
}

type CatalogItem struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Category string `json:"category"`
	Glyph    string `json:"emoji"`
}

type CartLine struct {
	Item     CatalogItem `json:"item"`
	Quantity int         `json:"qty"`
}

func (l CartLine) LineTotal() int {
	return l.Item.Price * l.Quantity
}

type LineItem struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"qty"`
}

type SaleRecord struct {
	ID            string        `json:"id"`
	Date          string        `json:"date"`
	Month         string        `json:"month"`
	Time          string        `json:"time"`
	Items         []LineItem    `json:"items"`
	Total         int           `json:"total"`
	PaymentMethod PaymentMethod `json:"pay_mode"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (s SaleRecord) Units() int {
	units := 0
	for _, item := range s.Items {
		units += item.Quantity
	}
	return units
}

// SaleInput is what gets handed to the record store; the store assigns ID and
// CreatedAt.
type SaleInput struct {
	Date          string        `json:"date"`
	Month         string        `json:"month"`
	Time          string        `json:"time"`
	Items         []LineItem    `json:"items"`
	Total         int           `json:"total"`
	PaymentMethod PaymentMethod `json:"pay_mode"`
}

type ItemUnits struct {
	Name  string `json:"name"`
	Units int    `json:"units"`
}

type PaymentRevenue struct {
	Cash    int `json:"cash"`
	Digital int `json:"digital_transfer"`
}

type AnalyticsResult struct {
	TotalRevenue     int            `json:"total_revenue"`
	RevenueByPayment PaymentRevenue `json:"revenue_by_payment_method"`
	TotalUnitsSold   int            `json:"total_units_sold"`
	TransactionCount int            `json:"transaction_count"`
	TopItems         []ItemUnits    `json:"top_items"`
	MatchingRecords  []SaleRecord   `json:"matching_records"`
}

type InventoryLevel struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type StockAlertKind string

const (
	AlertLowStock   StockAlertKind = "low_stock"
	AlertOutOfStock StockAlertKind = "out_of_stock"
)

type StockAlert struct {
	Name  string         `json:"name"`
	Level int            `json:"level"`
	Kind  StockAlertKind `json:"kind"`
}

type InventoryImportRow struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"lickees/internal/domain"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf := &bytes.Buffer{}
	require.NoError(t, f.Write(buf))
	return buf
}

func TestParseInventoryRowsWithAliases(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Flavour", "Notes", "In_Stock"},
		{"Mango", "fresh", 12},
		{"", "blank rows are skipped", 3},
		{"Oreo", "", "1,000"},
	})

	rows, err := ParseInventoryRows(buf)
	require.NoError(t, err)
	assert.Equal(t, []domain.InventoryImportRow{
		{Name: "Mango", Quantity: 12},
		{Name: "Oreo", Quantity: 1000},
	}, rows)
}

func TestParseInventoryRowsErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
		want string
	}{
		{name: "missing quantity column", rows: [][]any{{"Name", "Price"}, {"Mango", 25}}, want: "missing required column: quantity"},
		{name: "fractional quantity", rows: [][]any{{"Name", "Qty"}, {"Mango", "2.5"}}, want: "row 2 invalid quantity"},
		{name: "no data", rows: [][]any{{"Name", "Qty"}}, want: "no valid data rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseInventoryRows(workbook(t, tt.rows))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteReport(t *testing.T) {
	result := domain.AnalyticsResult{
		TotalRevenue:     150,
		RevenueByPayment: domain.PaymentRevenue{Cash: 100, Digital: 50},
		TotalUnitsSold:   4,
		TransactionCount: 2,
		TopItems:         []domain.ItemUnits{{Name: "Oreo", Units: 3}, {Name: "Paan", Units: 1}},
		MatchingRecords: []domain.SaleRecord{
			{ID: "s2", Date: "2026-10-16", Time: "15:00", Total: 50, PaymentMethod: domain.PaymentDigital,
				Items: []domain.LineItem{{Name: "Paan", Price: 20, Quantity: 1}, {Name: "Oreo", Price: 30, Quantity: 1}}},
			{ID: "s1", Date: "2026-10-16", Time: "11:00", Total: 100, PaymentMethod: domain.PaymentCash,
				Items: []domain.LineItem{{Name: "Oreo", Price: 30, Quantity: 2}}},
		},
	}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteReport(buf, "Today", result))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, SalesSheet}, f.GetSheetList())

	title, err := f.GetCellValue(SummarySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Today", title)
	revenue, err := f.GetCellValue(SummarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "150", revenue)
	cashShare, err := f.GetCellValue(SummarySheet, "C4")
	require.NoError(t, err)
	assert.Equal(t, "67%", cashShare)
	topItem, err := f.GetCellValue(SummarySheet, "A11")
	require.NoError(t, err)
	assert.Equal(t, "Oreo", topItem)

	rows, err := f.GetRows(SalesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"s2", "2026-10-16", "15:00", "Paan", "1", "20", "20", "upi"}, rows[1])
	assert.Equal(t, []string{"s1", "2026-10-16", "11:00", "Oreo", "2", "30", "60", "cash"}, rows[3])
}

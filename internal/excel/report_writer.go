package excel

import (
	"fmt"
	"io"

	"lickees/internal/analytics"
	"lickees/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	SalesSheet   = "Sales"
)

// WriteReport renders result as a workbook with a summary sheet and one row
// per sold line item.
func WriteReport(w io.Writer, title string, result domain.AnalyticsResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	if _, err := f.NewSheet(SalesSheet); err != nil {
		return fmt.Errorf("create sales sheet: %w", err)
	}

	if err := writeSummary(f, title, result); err != nil {
		return err
	}
	if err := writeSales(f, result.MatchingRecords); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, title string, result domain.AnalyticsResult) error {
	shares := analytics.PaymentShares(result)
	rows := [][]any{
		{title},
		{},
		{"Total revenue", result.TotalRevenue},
		{"Cash", result.RevenueByPayment.Cash, fmt.Sprintf("%d%%", shares.Cash)},
		{"UPI", result.RevenueByPayment.Digital, fmt.Sprintf("%d%%", shares.Digital)},
		{"Units sold", result.TotalUnitsSold},
		{"Transactions", result.TransactionCount},
		{"Average ticket", analytics.AverageTicket(result)},
		{},
		{"Top items", "Units"},
	}
	for _, item := range result.TopItems {
		rows = append(rows, []any{item.Name, item.Units})
	}
	return setRows(f, SummarySheet, rows)
}

func writeSales(f *excelize.File, records []domain.SaleRecord) error {
	rows := [][]any{
		{"Sale ID", "Date", "Time", "Item", "Qty", "Unit price", "Line total", "Payment"},
	}
	for _, record := range records {
		for _, item := range record.Items {
			rows = append(rows, []any{
				record.ID,
				record.Date,
				record.Time,
				item.Name,
				item.Quantity,
				item.Price,
				item.Price * item.Quantity,
				string(record.PaymentMethod),
			})
		}
	}
	return setRows(f, SalesSheet, rows)
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cell for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

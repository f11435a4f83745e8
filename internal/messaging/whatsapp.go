// Package messaging hands dashboard summaries to the operator's phone.
package messaging

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"lickees/internal/domain"
	"lickees/internal/settings"
)

var ErrNoPhone = errors.New("no phone number configured")

var printer = message.NewPrinter(language.MustParse("en-IN"))

// FormatAmount renders whole rupees with en-IN digit grouping.
func FormatAmount(amount int) string {
	return printer.Sprintf("₹%d", amount)
}

// Summary is the plain-text report sent over WhatsApp.
func Summary(shop, periodLabel string, result domain.AnalyticsResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Sales Report (%s)\n", shop, periodLabel)
	fmt.Fprintf(&b, "Revenue: %s\n", FormatAmount(result.TotalRevenue))
	fmt.Fprintf(&b, "Cash: %s\n", FormatAmount(result.RevenueByPayment.Cash))
	fmt.Fprintf(&b, "UPI: %s\n", FormatAmount(result.RevenueByPayment.Digital))
	fmt.Fprintf(&b, "Scoops: %d\n", result.TotalUnitsSold)
	fmt.Fprintf(&b, "Transactions: %d", result.TransactionCount)
	if len(result.TopItems) > 0 {
		b.WriteString("\nTop flavours:")
		for i, item := range result.TopItems {
			fmt.Fprintf(&b, "\n%d. %s - %d", i+1, item.Name, item.Units)
		}
	}
	return b.String()
}

// WhatsAppLink builds a wa.me click-to-chat link carrying text.
func WhatsAppLink(phone, region, text string) (string, error) {
	if strings.TrimSpace(phone) == "" {
		return "", ErrNoPhone
	}
	normalized, err := settings.NormalizePhone(phone, region)
	if err != nil {
		return "", err
	}
	digits := strings.TrimPrefix(normalized, "+")
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text), nil
}

package filter

import (
	"fmt"
	"io"
	"strings"

	"spendwise/internal/models"
)

// csvHeader is the fixed column order of the transaction export.
const csvHeader = "Date,Description,Category,Payment Method,Amount"

// WriteCSV exports expenses in the transaction history export format. The
// description column is always double-quoted and falls back to the category
// when empty; the amount is rendered with two decimal places regardless of
// currency.
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	if _, err := io.WriteString(w, csvHeader+"\n"); err != nil {
		return err
	}
	for _, e := range expenses {
		description := e.Description
		if description == "" {
			description = e.Category
		}
		line := fmt.Sprintf("%s,\"%s\",%s,%s,%.2f\n",
			e.Date,
			strings.ReplaceAll(description, `"`, `""`),
			e.Category,
			e.PaymentMethod,
			e.Amount,
		)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}

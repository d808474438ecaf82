// Package seed provides the demo data a fresh workspace starts with.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ssra-dev/revenue/internal/model"
)

// TaxType is an assessable tax category with its default rate in percent.
type TaxType struct {
	Name string
	Rate decimal.Decimal
}

// RevenueAuthorityAccount is the collection account shown for bank transfers.
func RevenueAuthorityAccount() model.BankDetails {
	return model.BankDetails{
		BankName:      "Bank of South Sudan",
		AccountNumber: "1234567890",
		AccountName:   "South Sudan Revenue Authority",
		SwiftCode:     "BOSSSSJU",
	}
}

// DefaultTaxTypes returns the categories offered by the assessment calculator.
func DefaultTaxTypes() []TaxType {
	return []TaxType{
		{Name: "Income Tax", Rate: decimal.NewFromInt(15)},
		{Name: "Business Tax", Rate: decimal.NewFromInt(10)},
		{Name: "Property Tax", Rate: decimal.NewFromInt(5)},
		{Name: "Sales Tax", Rate: decimal.NewFromInt(18)},
	}
}

// DefaultBills returns the demo bills: one pending, one paid, one overdue.
func DefaultBills() []model.Bill {
	bank := RevenueAuthorityAccount()
	return []model.Bill{
		{
			ID:          1,
			Type:        "Income Tax",
			Amount:      decimal.NewFromInt(125000),
			DueDate:     day(2024, time.March, 15),
			Status:      model.StatusPending,
			Description: "Annual Income Tax 2024",
			PRN:         "SSRA240315001",
			BankDetails: &bank,
		},
		{
			ID:          2,
			Type:        "Business Tax",
			Amount:      decimal.NewFromInt(75000),
			DueDate:     day(2024, time.April, 1),
			Status:      model.StatusPaid,
			Description: "Quarterly Business Tax Q1 2024",
			PRN:         "SSRA240401002",
		},
		{
			ID:          3,
			Type:        "Property Tax",
			Amount:      decimal.NewFromInt(50000),
			DueDate:     day(2024, time.February, 28),
			Status:      model.StatusOverdue,
			Description: "Annual Property Tax 2024",
			PRN:         "SSRA240228003",
		},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

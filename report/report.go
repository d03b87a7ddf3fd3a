// Package report renders deal metrics as a plain-text summary.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"deal-analyzer/domain"
)

// Money formats a whole-unit dollar amount with thousands separators,
// e.g. -16974 -> "-$16,974".
func Money(v float64) string {
	d := decimal.NewFromFloat(v).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "$" + groupThousands(d.StringFixed(0))
}

// Percent formats a rate already expressed in percent, e.g. 23.85 -> "23.85%".
func Percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "%"
}

func ratio(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2) + "x"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

type line struct {
	label string
	value string
}

// Write renders m to w. Sections without data are skipped.
func Write(w io.Writer, m domain.DealMetrics) error {
	var sections [][]line

	if m.HasFlipData {
		sections = append(sections, []line{
			{"FLIP", ""},
			{"Purchase price", Money(m.PurchasePrice)},
			{"Repair cost", Money(m.RepairCost)},
			{"Closing costs", Money(m.ClosingCosts)},
			{"Holding costs", Money(m.HoldingCosts)},
			{"Total investment", Money(m.TotalInvestment)},
			{"ARV", Money(m.ARV)},
			{"Gross profit", Money(m.GrossProfit)},
			{"Net profit", Money(m.NetProfit)},
			{"ROI", Percent(m.ROI)},
			{"Max allowable offer", Money(m.MAO)},
		})
	}
	if m.HasRentalData {
		sections = append(sections, []line{
			{"RENTAL", ""},
			{"Monthly rent", Money(m.MonthlyRent)},
			{"Monthly expenses", Money(m.MonthlyExpenses)},
			{"Monthly mortgage", Money(m.MonthlyMortgage)},
			{"Monthly cash flow", Money(m.MonthlyCashFlow)},
			{"Annual cash flow", Money(m.AnnualCashFlow)},
			{"Cash-on-cash return", Percent(m.CashOnCashReturn)},
			{"Cap rate", Percent(m.CapRate)},
			{"Gross rent multiplier", ratio(m.GrossRentMultiplier)},
		})
	}
	if len(sections) == 0 {
		_, err := fmt.Fprintln(w, "No deal data: set a purchase price, ARV or monthly rent.")
		return err
	}

	for i, section := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		for _, l := range section {
			var err error
			if l.value == "" {
				_, err = fmt.Fprintln(w, l.label)
			} else {
				_, err = fmt.Fprintf(w, "  %-22s %14s\n", l.label, l.value)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

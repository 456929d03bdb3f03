// Package output provides utilities for formatting and displaying appraisal results.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/project-appraisal/internal/appraisal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(result *appraisal.Appraisal) {
	p := message.NewPrinter(language.English)

	name := result.Name
	if name == "" {
		name = "(unnamed project)"
	}
	fmt.Printf("--- Results for project %s ---\n", name)

	if len(result.Preoperative) > 0 {
		fmt.Printf("Pre-operative phase:\n")
		fmt.Printf("Month | Allocated     | Costs         | Net           | Cumulative    | Amortized\n")
		fmt.Printf("_____ | _____________ | _____________ | _____________ | _____________ | _________\n")
		for _, record := range result.Preoperative {
			_, _ = p.Printf("%5d | $%.2f | $%.2f | $%.2f | $%.2f | %.2f%%\n",
				record.Month, record.AllocatedInvestment, record.OperatingCost,
				record.NetAvailable, record.CumulativeBalance, record.PercentAmortized)
		}
		_, _ = p.Printf("Carry-over into first operating month: $%.2f\n\n", result.CarryOver)
	}

	fmt.Printf("Month | Revenue       | Expenses      | Cash flow\n")
	fmt.Printf("_____ | _____________ | _____________ | _____________\n")
	for i := range result.CashFlowSeries {
		_, _ = p.Printf("%5d | $%.2f | $%.2f | $%.2f\n",
			i+1, result.RevenueSeries[i], result.ExpenseSeries[i], result.CashFlowSeries[i])
	}

	fmt.Printf("\nIndicators:\n")
	if result.Indicators.IRRComputable {
		_, _ = p.Printf("IRR (monthly):    %.4f%%\n", result.Indicators.IRRPeriodic*100)
		_, _ = p.Printf("IRR (annualized): %.4f%%\n", result.Indicators.IRRAnnualized*100)
	} else {
		fmt.Printf("IRR:              not computable\n")
	}
	_, _ = p.Printf("NPV:              $%.2f (discount rate %.2f%%)\n",
		result.Indicators.NPV, result.Indicators.DiscountRate*100)
	_, _ = p.Printf("ROI:              %.2f%%\n", result.Indicators.ROI)
	if result.Indicators.Payback.Recovered {
		_, _ = p.Printf("Payback:          %.2f months (%.2f years)\n",
			result.Indicators.Payback.Months, result.Indicators.Payback.Years)
	} else {
		_, _ = p.Printf("Payback:          not recovered, shortfall $%.2f\n",
			result.Indicators.Payback.Shortfall)
	}

	if result.Sensitivity != nil && len(result.Sensitivity.IRR) > 0 {
		fmt.Printf("\nSensitivity (IRR, rows = expense variation, columns = revenue variation):\n")
		header := make([]string, 0, len(result.Sensitivity.RevenueVariations))
		for _, pct := range result.Sensitivity.RevenueVariations {
			header = append(header, fmt.Sprintf("%+.0f%%", pct))
		}
		fmt.Printf("        | %s\n", strings.Join(header, " | "))
		for i, row := range result.Sensitivity.IRR {
			cells := make([]string, 0, len(row))
			for _, rate := range row {
				cells = append(cells, fmt.Sprintf("%.4f", rate))
			}
			fmt.Printf("%+6.0f%% | %s\n", result.Sensitivity.ExpenseVariations[i], strings.Join(cells, " | "))
		}
	}
}

// CsvFormat outputs the monthly series in comma-separated value format.
func CsvFormat(result *appraisal.Appraisal) {
	fmt.Print(CsvString(result))
}

// CsvString renders the monthly series as CSV, one row per operating month.
func CsvString(result *appraisal.Appraisal) string {
	var b strings.Builder
	b.WriteString(`"month","revenue","expenses","cash flow"` + "\n")
	for i := range result.CashFlowSeries {
		fmt.Fprintf(&b, `"%d","%.2f","%.2f","%.2f"`+"\n",
			i+1, result.RevenueSeries[i], result.ExpenseSeries[i], result.CashFlowSeries[i])
	}
	return b.String()
}

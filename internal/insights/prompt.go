package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Line is one expense as seen by the user: their share of it.
type Line struct {
	Description string
	Category    string
	Date        int64
	Share       decimal.Decimal
}

// Report is the aggregated spending data sent to the model.
type Report struct {
	Lines      []Line
	Total      decimal.Decimal
	Categories map[string]decimal.Decimal
}

// SortedCategories returns the category names, largest total first.
func (r Report) SortedCategories() []string {
	names := make([]string, 0, len(r.Categories))
	for name := range r.Categories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if c := r.Categories[names[i]].Cmp(r.Categories[names[j]]); c != 0 {
			return c > 0
		}
		return names[i] < names[j]
	})
	return names
}

// FormatRupees formats d as ₹12,345.67.
func FormatRupees(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + "₹" + b.String() + "." + frac
}

// BuildPrompt writes the analyst prompt for r.
func BuildPrompt(r Report) string {
	var b strings.Builder
	b.WriteString(`As a financial analyst, review this user's spending data for the past month and provide insightful observations and suggestions.
Focus on spending patterns, category breakdowns, and actionable advice for better financial management.
Use a friendly, encouraging tone. Format your response in HTML for a dashboard widget.

IMPORTANT: All monetary amounts should be shown in Indian Rupees (₹) and use the ₹ symbol. Do NOT use the dollar sign ($) or any other currency. Format all currency values as ₹12,345.67 (with comma separators and two decimal places).

User spending data:
`)
	fmt.Fprintf(&b, "Total spent: %s\n", FormatRupees(r.Total))

	b.WriteString("Categories:\n")
	for _, name := range r.SortedCategories() {
		fmt.Fprintf(&b, "- %s: %s\n", name, FormatRupees(r.Categories[name]))
	}

	b.WriteString("Expenses:\n")
	for _, l := range r.Lines {
		fmt.Fprintf(&b, "- %s | %s | %s | %s\n",
			time.UnixMilli(l.Date).UTC().Format(time.DateOnly), l.Description, l.Category, FormatRupees(l.Share))
	}

	b.WriteString(`
Provide your analysis in these sections:
1. Monthly Overview
2. Top Spending Categories
3. Unusual Spending Patterns (if any)
4. Saving Opportunities
5. Recommendations for Next Month`)
	return b.String()
}

package http

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cashify/internal/core"
)

// Formatter renders amounts and dates for one display locale.
type Formatter struct {
	printer *message.Printer
	symbol  string
	point   string
	loc     *time.Location
}

// NewFormatter builds a formatter for a BCP 47 locale and an ISO 4217
// currency code.
func NewFormatter(locale, currencyCode string, loc *time.Location) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse display locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", currencyCode, err)
	}
	if loc == nil {
		loc = time.Local
	}
	p := message.NewPrinter(tag)
	return &Formatter{
		printer: p,
		symbol:  p.Sprint(currency.NarrowSymbol(unit)),
		point:   strings.TrimSuffix(strings.TrimPrefix(p.Sprintf("%.1f", 1.5), "1"), "5"),
		loc:     loc,
	}, nil
}

// Money formats an amount with two decimals, locale grouping and the
// currency symbol. Negative amounts get a leading minus. The digits come
// from the decimal itself; only the grouping is left to the printer.
func (f *Formatter) Money(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	if n, err := strconv.ParseInt(whole, 10, 64); err == nil {
		whole = f.printer.Sprintf("%d", n)
	}
	return sign + f.symbol + whole + f.point + frac
}

// Date formats a transaction timestamp as day/month/year hour:minute.
func (f *Formatter) Date(t time.Time) string {
	return t.In(f.loc).Format("02/01/2006 15:04")
}

// Count formats an integer with locale grouping.
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}

// FuncMap exposes the formatter and small view helpers to templates.
func (f *Formatter) FuncMap() template.FuncMap {
	return template.FuncMap{
		"money": f.Money,
		"date":  f.Date,
		"count": f.Count,
		"signed": func(tx core.Transaction) string {
			if tx.Kind == core.KindIncome {
				return "+" + f.Money(tx.Amount)
			}
			return "-" + f.Money(tx.Amount)
		},
		"kindLabel": func(k core.Kind) string { return k.Label() },
		"isIncome":  func(k core.Kind) bool { return k == core.KindIncome },
		"negative":  func(d decimal.Decimal) bool { return d.IsNegative() },
		"incomeShare": func(c core.CategoryStats) int64 {
			in, _ := core.Share(c)
			return in
		},
		"expenseShare": func(c core.CategoryStats) int64 {
			_, out := core.Share(c)
			return out
		},
		"pathEscape": url.PathEscape,
	}
}

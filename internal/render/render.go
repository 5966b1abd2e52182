package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"olistInsights/domain"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Write renders report in the named format.
func Write(w io.Writer, format string, report domain.Report) error {
	switch format {
	case "", FormatText:
		return Text(w, report)
	case FormatJSON:
		return JSON(w, report)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func JSON(w io.Writer, report domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// Text prints one aligned table per metric, grouped the same way as the
// report. Groups that were not computed are skipped.
func Text(w io.Writer, report domain.Report) error {
	p := &printer{w: w}

	p.line("Olist insights report")
	p.line("run %s  engine %s  generated %s", report.RunID, report.Engine, report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	rows := report.Rows
	p.line("rows: customers=%d orders=%d items=%d payments=%d reviews=%d products=%d",
		rows.Customers, rows.Orders, rows.OrderItems, rows.Payments, rows.Reviews, rows.Products)
	if !report.Integrity.Clean() {
		in := report.Integrity
		p.line("integrity: items without order=%d, without product=%d, without seller=%d; payments without order=%d; reviews without order=%d; orders without customer=%d",
			in.ItemsWithoutOrder, in.ItemsWithoutProduct, in.ItemsWithoutSeller,
			in.PaymentsWithoutOrder, in.ReviewsWithoutOrder, in.OrdersWithoutCustomer)
		if d := in.Duplicates; d.Total() > 0 {
			p.line("duplicates dropped: customers=%d orders=%d items=%d payments=%d reviews=%d products=%d sellers=%d translations=%d",
				d.Customers, d.Orders, d.OrderItems, d.Payments, d.Reviews, d.Products, d.Sellers, d.Translations)
		}
	}

	if r := report.Revenue; r != nil {
		p.section("REVENUE")
		p.table("Total revenue", []string{"orders", "product revenue", "freight", "total revenue"}, func(add func(...string)) {
			if s := r.Summary; s != nil {
				add(itoa(s.TotalOrders), money(s.ProductRevenue), money(s.Freight), money(s.TotalRevenue))
			}
		})
		p.table("Monthly revenue", []string{"month", "orders", "product revenue", "total revenue"}, func(add func(...string)) {
			for _, m := range r.Monthly {
				add(m.Month, itoa(m.Orders), money(m.ProductRevenue), money(m.TotalRevenue))
			}
		})
		p.table("Top categories by revenue", []string{"category", "items", "orders", "revenue"}, func(add func(...string)) {
			for _, c := range r.TopCategories {
				add(c.Category, itoa(c.Items), itoa(c.Orders), money(c.Revenue))
			}
		})
		p.table("Order value distribution", []string{"orders", "mean", "min", "median", "max"}, func(add func(...string)) {
			if v := r.OrderValue; v != nil {
				add(itoa(v.Orders), money(v.Mean), money(v.Min), money(v.Median), money(v.Max))
			}
		})
		p.table("Revenue by weekday", []string{"weekday", "day", "orders", "revenue"}, func(add func(...string)) {
			for _, d := range r.ByWeekday {
				add(itoa(d.Weekday), d.DayName, itoa(d.Orders), money(d.Revenue))
			}
		})
	}

	if r := report.Customer; r != nil {
		p.section("CUSTOMERS")
		p.table("Top states by revenue", []string{"state", "customers", "orders", "revenue"}, func(add func(...string)) {
			for _, s := range r.TopStates {
				add(s.State, itoa(s.Customers), itoa(s.Orders), money(s.Revenue))
			}
		})
		p.table("Top cities by revenue", []string{"city", "state", "customers", "orders", "revenue"}, func(add func(...string)) {
			for _, c := range r.TopCities {
				add(c.City, c.State, itoa(c.Customers), itoa(c.Orders), money(c.Revenue))
			}
		})
		p.table("Repeat customer rate", []string{"customers", "repeat", "repeat %"}, func(add func(...string)) {
			if rr := r.Repeat; rr != nil {
				add(itoa(rr.TotalCustomers), itoa(rr.RepeatCustomers), money(rr.RepeatPct))
			}
		})
		p.table("Spend segmentation", []string{"tier", "customers", "avg spend"}, func(add func(...string)) {
			for _, s := range r.Segments {
				add(s.Tier, itoa(s.Customers), money(s.AvgSpend))
			}
		})
	}

	if r := report.Delivery; r != nil {
		p.section("DELIVERY AND REVIEWS")
		p.table("Delivery performance", []string{"orders", "avg days", "min days", "max days", "late", "late %"}, func(add func(...string)) {
			if d := r.Performance; d != nil {
				add(itoa(d.Orders), money(d.AvgDays), itoa(d.MinDays), itoa(d.MaxDays), itoa(d.LateOrders), money(d.LatePct))
			}
		})
		p.table("Review score distribution", []string{"score", "reviews", "%"}, func(add func(...string)) {
			for _, s := range r.ScoreDistribution {
				add(itoa(s.Score), itoa(s.Reviews), money(s.Pct))
			}
		})
		p.table("Delivery timeliness vs satisfaction", []string{"status", "orders", "avg score"}, func(add func(...string)) {
			for _, t := range r.Timeliness {
				add(t.Status, itoa(t.Orders), money(t.AvgScore))
			}
		})
		p.table("Worst rated categories", []string{"category", "reviews", "avg score"}, func(add func(...string)) {
			for _, c := range r.WorstCategories {
				add(c.Category, itoa(c.Reviews), money(c.AvgScore))
			}
		})
	}

	if r := report.Payment; r != nil {
		p.section("PAYMENTS")
		p.table("Payment methods", []string{"type", "transactions", "total value", "avg value", "%"}, func(add func(...string)) {
			for _, m := range r.Methods {
				add(m.PaymentType, itoa(m.Transactions), money(m.TotalValue), money(m.AvgValue), money(m.Pct))
			}
		})
	}

	return p.err
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(format string, args ...interface{}) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *printer) section(title string) {
	p.line("")
	p.line("== %s ==", title)
}

func (p *printer) table(title string, header []string, fill func(add func(...string))) {
	if p.err != nil {
		return
	}

	p.line("")
	p.line("%s", title)

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	n := 0
	write := func(cols ...string) {
		if p.err == nil {
			_, p.err = fmt.Fprintln(tw, strings.Join(cols, "\t")+"\t")
		}
	}
	write(header...)
	fill(func(cols ...string) {
		n++
		write(cols...)
	})
	if p.err == nil {
		p.err = tw.Flush()
	}
	if n == 0 {
		p.line("  (no rows)")
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func money(m domain.Money) string {
	return m.String()
}

package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

type analyticsRepo struct {
	s  *Store
	at access
}

var _ repository.AnalyticsRepository = (*analyticsRepo)(nil)

func (r *analyticsRepo) StatusCounts(_ context.Context) ([]repository.StatusCount, error) {
	if err := r.s.failure("analytics.StatusCounts"); err != nil {
		return nil, err
	}
	var out []repository.StatusCount
	err := r.at(func(st *state) error {
		counts := map[entity.InvoiceStatus]int64{}
		for _, inv := range st.invoices {
			counts[inv.Status]++
		}
		for s, n := range counts {
			out = append(out, repository.StatusCount{Status: s, Count: n})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out, err
}

func (r *analyticsRepo) MaterialsByStatus(_ context.Context) ([]repository.MaterialStatusTotal, error) {
	var out []repository.MaterialStatusTotal
	err := r.at(func(st *state) error {
		type key struct {
			material string
			status   entity.InvoiceStatus
		}
		totals := map[key]decimal.Decimal{}
		for _, it := range st.items {
			inv := st.invoices[it.InvoiceID]
			if inv == nil || it.Material == "" {
				continue
			}
			k := key{it.Material, inv.Status}
			totals[k] = totals[k].Add(it.Quantity)
		}
		for k, v := range totals {
			out = append(out, repository.MaterialStatusTotal{Material: k.material, Status: k.status, Total: v})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Material != out[j].Material {
			return out[i].Material < out[j].Material
		}
		return out[i].Status < out[j].Status
	})
	return out, err
}

func (r *analyticsRepo) AvailableYears(_ context.Context) ([]int, error) {
	var out []int
	err := r.at(func(st *state) error {
		seen := map[int]bool{}
		for _, inv := range st.invoices {
			y := inv.IssuedAt.Year()
			if !seen[y] {
				seen[y] = true
				out = append(out, y)
			}
		}
		return nil
	})
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out, err
}

func (r *analyticsRepo) InvoiceLinesByCustomer(_ context.Context, name string, year *int) ([]repository.InvoiceLine, error) {
	needle := strings.ToLower(name)
	return r.lines(func(inv *entity.Invoice) bool {
		if year != nil && inv.IssuedAt.Year() != *year {
			return false
		}
		return strings.Contains(strings.ToLower(inv.IssuerName), needle) ||
			strings.Contains(strings.ToLower(inv.RecipientName), needle)
	})
}

func (r *analyticsRepo) InvoiceLinesByNumbers(_ context.Context, numbers []string) ([]repository.InvoiceLine, error) {
	wanted := map[string]bool{}
	for _, n := range numbers {
		wanted[n] = true
	}
	return r.lines(func(inv *entity.Invoice) bool { return wanted[inv.Number] })
}

func (r *analyticsRepo) InvoiceLinesByPurchaseOrder(_ context.Context, purchaseOrder string) ([]repository.InvoiceLine, error) {
	return r.lines(func(inv *entity.Invoice) bool {
		return inv.PurchaseOrder != nil && *inv.PurchaseOrder == purchaseOrder && inv.Status != entity.StatusSold
	})
}

func (r *analyticsRepo) InvoiceLinesForSale(_ context.Context, number string, status *entity.InvoiceStatus) ([]repository.InvoiceLine, error) {
	return r.lines(func(inv *entity.Invoice) bool {
		if inv.Status != entity.StatusAvailable && inv.Status != entity.StatusOffered {
			return false
		}
		if number != "" && !strings.Contains(strings.ToLower(inv.Number), strings.ToLower(number)) {
			return false
		}
		return status == nil || inv.Status == *status
	})
}

// lines reproduce el LEFT JOIN nota/ítem, más recientes primero.
func (r *analyticsRepo) lines(keep func(inv *entity.Invoice) bool) ([]repository.InvoiceLine, error) {
	var out []repository.InvoiceLine
	err := r.at(func(st *state) error {
		invoices := sortedInvoices(st)
		sort.SliceStable(invoices, func(i, j int) bool { return invoices[i].IssuedAt.After(invoices[j].IssuedAt) })
		items := sortedItems(st)
		for _, inv := range invoices {
			if !keep(inv) {
				continue
			}
			base := repository.InvoiceLine{
				InvoiceID:     inv.ID,
				Number:        inv.Number,
				IssuedAt:      inv.IssuedAt,
				IssuerName:    inv.IssuerName,
				RecipientName: inv.RecipientName,
				Status:        inv.Status,
				BusinessUnit:  inv.BusinessUnit,
				PurchaseOrder: cloneString(inv.PurchaseOrder),
			}
			found := false
			for _, it := range items {
				if it.InvoiceID != inv.ID {
					continue
				}
				found = true
				line := base
				id, ncm, desc, mat, unit, qty := it.ID, it.NCM, it.Description, it.Material, it.Unit, it.Quantity
				line.ItemID, line.NCM, line.Description, line.Material, line.Unit, line.Quantity = &id, &ncm, &desc, &mat, &unit, &qty
				out = append(out, line)
			}
			if !found {
				out = append(out, base)
			}
		}
		return nil
	})
	return out, err
}

func (r *analyticsRepo) SoldInvoices(_ context.Context) ([]repository.SoldInvoice, error) {
	var out []repository.SoldInvoice
	err := r.at(func(st *state) error {
		for _, inv := range sortedInvoices(st) {
			if inv.Status == entity.StatusSold {
				out = append(out, repository.SoldInvoice{
					Number:        inv.Number,
					RecipientName: inv.RecipientName,
					IssuedAt:      inv.IssuedAt,
					PurchaseOrder: cloneString(inv.PurchaseOrder),
				})
			}
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return out, err
}

func (r *analyticsRepo) SoldMaterials(_ context.Context) ([]repository.MaterialQuantity, error) {
	var out []repository.MaterialQuantity
	err := r.at(func(st *state) error {
		totals := map[string]decimal.Decimal{}
		for _, it := range st.items {
			inv := st.invoices[it.InvoiceID]
			if inv != nil && inv.Status == entity.StatusSold && it.Material != "" {
				totals[it.Material] = totals[it.Material].Add(it.Quantity)
			}
		}
		for m, q := range totals {
			out = append(out, repository.MaterialQuantity{Material: m, Quantity: q})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Material < out[j].Material })
	return out, err
}

func (r *analyticsRepo) SalesHistory(_ context.Context, filter repository.SaleFilter) ([]repository.SaleHistoryRow, error) {
	var out []repository.SaleHistoryRow
	err := r.at(func(st *state) error {
		for _, s := range st.sales {
			if filter.Buyer != "" && !containsFold(s.BuyerName, filter.Buyer) {
				continue
			}
			if filter.PurchaseOrder != "" && !containsFold(s.PurchaseOrder, filter.PurchaseOrder) {
				continue
			}
			if filter.Date != nil && !sameDay(s.SaleDate, *filter.Date) {
				continue
			}
			kg := decimal.Zero
			for _, it := range st.items {
				if it.SaleID != nil && *it.SaleID == s.ID {
					kg = kg.Add(it.Quantity)
				}
			}
			out = append(out, repository.SaleHistoryRow{
				ID:            s.ID,
				BuyerName:     s.BuyerName,
				PurchaseOrder: s.PurchaseOrder,
				SaleDate:      s.SaleDate,
				TotalValue:    s.TotalValue,
				BusinessUnit:  s.BusinessUnit,
				Tons:          kg.Div(decimal.NewFromInt(1000)),
			})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, err
}

func (r *analyticsRepo) SalesMetrics(_ context.Context, from, to *time.Time) (repository.SalesMetrics, error) {
	var m repository.SalesMetrics
	err := r.at(func(st *state) error {
		customers := map[string]bool{}
		for _, s := range st.sales {
			if !inRange(s.SaleDate, from, to) {
				continue
			}
			m.TotalSales++
			m.TotalValue = m.TotalValue.Add(s.TotalValue)
			customers[s.BuyerName] = true
		}
		m.Customers = int64(len(customers))
		if m.TotalSales > 0 {
			m.AverageTicket = m.TotalValue.Div(decimal.NewFromInt(m.TotalSales))
		}
		return nil
	})
	return m, err
}

func (r *analyticsRepo) SalesChart(_ context.Context, kind repository.ChartKind, from, to *time.Time) ([]repository.ChartPoint, error) {
	var out []repository.ChartPoint
	err := r.at(func(st *state) error {
		totals := map[string]decimal.Decimal{}
		switch kind {
		case repository.ChartSalesByPeriod, repository.ChartTopCustomers:
			for _, s := range st.sales {
				if !inRange(s.SaleDate, from, to) {
					continue
				}
				label := s.BuyerName
				if kind == repository.ChartSalesByPeriod {
					label = s.SaleDate.Format("2006-01-02")
				}
				totals[label] = totals[label].Add(s.TotalValue)
			}
			for l, v := range totals {
				out = append(out, repository.ChartPoint{Label: l, Value: v})
			}
		case repository.ChartSalesByMaterial:
			for _, it := range st.items {
				if it.SaleID == nil || it.Material == "" {
					continue
				}
				s, ok := st.sales[*it.SaleID]
				if !ok || !inRange(s.SaleDate, from, to) {
					continue
				}
				totals[it.Material] = totals[it.Material].Add(it.Quantity)
			}
			for l, q := range totals {
				qty := q
				out = append(out, repository.ChartPoint{Label: l, Quantity: &qty, Value: decimal.Zero})
			}
		default:
			return fmt.Errorf("analytics.SalesChart: tipo desconhecido %q", kind)
		}
		return nil
	})
	switch kind {
	case repository.ChartSalesByPeriod:
		sort.Slice(out, func(i, j int) bool { return out[i].Label > out[j].Label })
		if len(out) > 30 {
			out = out[:30]
		}
	case repository.ChartTopCustomers:
		sort.Slice(out, func(i, j int) bool { return out[i].Value.GreaterThan(out[j].Value) })
		if len(out) > 10 {
			out = out[:10]
		}
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	}
	return out, err
}

func (r *analyticsRepo) ManagingUnits(_ context.Context) ([]string, error) {
	var out []string
	err := r.at(func(st *state) error {
		seen := map[string]bool{}
		for _, s := range st.sales {
			if s.BusinessUnit != "" && !seen[s.BusinessUnit] {
				seen[s.BusinessUnit] = true
				out = append(out, s.BusinessUnit)
			}
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}

func (r *analyticsRepo) DistinctMaterials(_ context.Context) ([]string, error) {
	var out []string
	err := r.at(func(st *state) error {
		seen := map[string]bool{}
		for _, it := range st.items {
			if it.Material != "" && !seen[it.Material] {
				seen[it.Material] = true
				out = append(out, it.Material)
			}
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}

func (r *analyticsRepo) SaleItems(_ context.Context, saleID int64) ([]repository.SaleItemRow, error) {
	var out []repository.SaleItemRow
	err := r.at(func(st *state) error {
		for _, it := range sortedItems(st) {
			if it.SaleID == nil || *it.SaleID != saleID {
				continue
			}
			row := repository.SaleItemRow{
				ItemID:      it.ID,
				Material:    it.Material,
				Quantity:    it.Quantity,
				Unit:        it.Unit,
				Description: it.Description,
			}
			if inv := st.invoices[it.InvoiceID]; inv != nil {
				row.InvoiceNumber = inv.Number
				row.IssuerName = inv.IssuerName
				row.IssuerTaxID = inv.IssuerTaxID
				row.IssuedAt = inv.IssuedAt
			}
			out = append(out, row)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Material != out[j].Material {
			return out[i].Material < out[j].Material
		}
		return out[i].Description < out[j].Description
	})
	return out, err
}

func (r *analyticsRepo) ValidationStats(_ context.Context, since time.Time) (repository.ValidationStats, error) {
	var s repository.ValidationStats
	err := r.at(func(st *state) error {
		customers := map[string]bool{}
		for _, sale := range st.sales {
			s.TotalSales++
			if !sale.SaleDate.Before(since) {
				s.SalesLast30Days++
			}
			s.TotalValue = s.TotalValue.Add(sale.TotalValue)
			customers[sale.BuyerName] = true
		}
		s.DistinctCustomers = int64(len(customers))
		for _, it := range st.items {
			inv := st.invoices[it.InvoiceID]
			if inv == nil {
				continue
			}
			s.TotalItems++
			if inv.Status != entity.StatusAvailable && inv.Status != entity.StatusInLot {
				s.ItemsInvalidStatus++
			}
			if it.SaleID != nil {
				s.ItemsAlreadySold++
			}
		}
		return nil
	})
	return s, err
}

func (r *analyticsRepo) LotCustomers(_ context.Context, material string, year *int) ([]repository.LotCustomer, error) {
	var out []repository.LotCustomer
	err := r.at(func(st *state) error {
		seen := map[string]bool{}
		for _, it := range sortedItems(st) {
			inv := st.invoices[it.InvoiceID]
			if inv == nil || inv.Status != entity.StatusAvailable || !strings.EqualFold(it.Material, material) {
				continue
			}
			if year != nil && inv.IssuedAt.Year() != *year {
				continue
			}
			key := fmt.Sprintf("%v|%s", derefID(inv.CustomerID), inv.IssuerName)
			if seen[key] {
				continue
			}
			seen[key] = true
			lc := repository.LotCustomer{IssuerName: inv.IssuerName}
			if inv.CustomerID != nil {
				id := *inv.CustomerID
				lc.CustomerID = &id
			}
			out = append(out, lc)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].IssuerName < out[j].IssuerName })
	return out, err
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

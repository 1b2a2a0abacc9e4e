package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/maizepoint-api/internal/application/dto"
	"github.com/jhoicas/maizepoint-api/internal/domain/repository"
)

// productNames resuelve nombres de producto con una cache por ejecución.
type productNames struct {
	ctx   context.Context
	repo  repository.ProductRepository
	cache map[string]string
}

func newProductNames(ctx context.Context, repo repository.ProductRepository) *productNames {
	return &productNames{ctx: ctx, repo: repo, cache: map[string]string{}}
}

func (n *productNames) lookup(id string) string {
	if name, ok := n.cache[id]; ok {
		return name
	}
	name := id
	if p, err := n.repo.GetByID(n.ctx, id); err == nil && p != nil {
		name = p.Name
	}
	n.cache[id] = name
	return name
}

func writeReport(w io.Writer, r *dto.StockReport, productName func(string) string) {
	p := message.NewPrinter(language.English)
	today := time.Date(r.GeneratedAt.Year(), r.GeneratedAt.Month(), r.GeneratedAt.Day(), 0, 0, 0, 0, r.GeneratedAt.Location())

	fmt.Fprintln(w, "Checking stock alerts...")
	fmt.Fprintln(w)

	if len(r.LowStock) == 0 {
		fmt.Fprintln(w, "OK   no low stock items")
	} else {
		fmt.Fprintln(w, "LOW STOCK ALERTS:")
		for _, l := range r.LowStock {
			p.Fprintf(w, "  !  %s - %d bags remaining at %s\n", productName(l.ProductID), l.QuantityBags, l.WarehouseLocation)
		}
	}

	fmt.Fprintln(w)
	if len(r.ExpiringSoon) == 0 {
		fmt.Fprintln(w, "OK   no items expiring soon")
	} else {
		fmt.Fprintln(w, "EXPIRY ALERTS:")
		for _, l := range r.ExpiringSoon {
			days := int(l.ExpiryAlertDate.Sub(today).Hours() / 24)
			p.Fprintf(w, "  ~  %s expires in %d days (%d bags at %s)\n", productName(l.ProductID), days, l.QuantityBags, l.WarehouseLocation)
		}
	}

	fmt.Fprintln(w)
	if len(r.Expired) == 0 {
		fmt.Fprintln(w, "OK   no expired items")
	} else {
		fmt.Fprintln(w, "EXPIRED ITEMS:")
		for _, l := range r.Expired {
			p.Fprintf(w, "  x  %s - EXPIRED on %s (%d bags at %s)\n", productName(l.ProductID),
				l.ExpiryAlertDate.Format(time.DateOnly), l.QuantityBags, l.WarehouseLocation)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	p.Fprintf(w, "Total stock items checked: %d (%d bags, %s t)\n", r.LotsChecked, r.TotalBags, r.TotalTons.StringFixed(3))
}

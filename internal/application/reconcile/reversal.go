// Package reconcile deshace la vinculación entre ventas y notas fiscales.
// Todas las funciones trabajan dentro de la transacción del llamador.
package reconcile

import (
	"context"
	"fmt"

	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
)

// Reversal resume lo que se deshizo.
type Reversal struct {
	Sale          *entity.Sale
	ItemsUnlinked int64
	// Invoices notas que tenían ítems vinculados a la venta borrada.
	Invoices []int64
}

// LocateSale busca la venta de una nota: primero por ítems vinculados, luego por
// el pedido de compra. (nil, nil) si no hay ninguna.
func LocateSale(ctx context.Context, uow repository.UnitOfWork, inv *entity.Invoice) (*entity.Sale, error) {
	sale, err := uow.Sales().FindLinkedToInvoice(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("reconcile: venda vinculada: %w", err)
	}
	if sale != nil || !inv.HasPurchaseOrder() {
		return sale, nil
	}
	sale, err = uow.Sales().FindByPurchaseOrder(ctx, *inv.PurchaseOrder)
	if err != nil {
		return nil, fmt.Errorf("reconcile: venda por pedido: %w", err)
	}
	return sale, nil
}

// UndoSale desvincula todos los ítems de la venta y la borra.
func UndoSale(ctx context.Context, uow repository.UnitOfWork, sale *entity.Sale) (*Reversal, error) {
	invoices, err := uow.Items().InvoiceIDsBySale(ctx, sale.ID)
	if err != nil {
		return nil, fmt.Errorf("reconcile: notas da venda %d: %w", sale.ID, err)
	}
	n, err := uow.Items().UnlinkSale(ctx, sale.ID)
	if err != nil {
		return nil, fmt.Errorf("reconcile: desvincular itens da venda %d: %w", sale.ID, err)
	}
	if err := uow.Sales().Delete(ctx, sale.ID); err != nil {
		return nil, fmt.Errorf("reconcile: excluir venda %d: %w", sale.ID, err)
	}
	return &Reversal{Sale: sale, ItemsUnlinked: n, Invoices: invoices}, nil
}

// ReverseInvoice deshace la venta de una nota que sale de vendida: localiza la venta,
// la deshace si existe, suelta ítems residuales de la nota y limpia su pedido de compra.
// Sale es nil en el resultado si no había venta.
func ReverseInvoice(ctx context.Context, uow repository.UnitOfWork, inv *entity.Invoice) (*Reversal, error) {
	out := &Reversal{}
	sale, err := LocateSale(ctx, uow, inv)
	if err != nil {
		return nil, err
	}
	if sale != nil {
		if out, err = UndoSale(ctx, uow, sale); err != nil {
			return nil, err
		}
	}
	residual, err := uow.Items().UnlinkInvoice(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("reconcile: desvincular itens da nota %d: %w", inv.ID, err)
	}
	out.ItemsUnlinked += residual
	if err := uow.Invoices().ClearPurchaseOrder(ctx, inv.ID); err != nil {
		return nil, fmt.Errorf("reconcile: limpar pedido da nota %d: %w", inv.ID, err)
	}
	return out, nil
}

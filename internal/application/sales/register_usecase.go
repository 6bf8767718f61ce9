// Package sales registra, valida y deshace ventas de material, y arma sus reportes.
package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/application/reconcile"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/inventory"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

// RegisterUseCase registra ventas y las deshace.
type RegisterUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewRegisterUseCase construye el caso de uso.
func NewRegisterUseCase(txRunner TxRunner, log *logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{txRunner: txRunner, log: log}
}

// Register inserta la venta, pasa a vendida las notas de los ítems con el pedido de
// compra y vincula los ítems. Todo o nada.
func (uc *RegisterUseCase) Register(ctx context.Context, in dto.RegisterSaleRequest) (*dto.RegisterSaleResponse, error) {
	sale, err := buildSale(in)
	if err != nil {
		return nil, err
	}
	ids := uniqueIDs(in.ItemIDs)

	var updated int64
	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		candidates, err := uow.Items().GetSaleCandidates(ctx, ids)
		if err != nil {
			return fmt.Errorf("venda: itens: %w", err)
		}
		if len(candidates) != len(ids) {
			return fmt.Errorf("%w: %d de %d itens encontrados", domain.ErrNotFound, len(candidates), len(ids))
		}
		tons := decimal.Zero
		for _, c := range candidates {
			if c.SaleID != nil {
				return fmt.Errorf("%w: item %d já vinculado à venda #%d", domain.ErrConflict, c.ItemID, *c.SaleID)
			}
			tons = tons.Add(inventory.KgToTons(c.Quantity))
		}
		if sale.PricePerTon.IsZero() && tons.IsPositive() {
			sale.PricePerTon = sale.TotalValue.Div(tons).Round(2)
		}

		if err := uow.Sales().Create(ctx, sale); err != nil {
			return fmt.Errorf("venda: inserir: %w", err)
		}
		updated, err = uow.Invoices().MarkSoldByItems(ctx, ids, sale.PurchaseOrder)
		if err != nil {
			return fmt.Errorf("venda: marcar notas como vendidas: %w", err)
		}
		linked, err := uow.Items().LinkToSale(ctx, sale.ID, ids)
		if err != nil {
			return fmt.Errorf("venda: vincular itens: %w", err)
		}
		if linked != int64(len(ids)) {
			return fmt.Errorf("%w: %d de %d itens vinculados, outro registro chegou antes", domain.ErrConflict, linked, len(ids))
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("numero_pedido_compra", sale.PurchaseOrder).Msg("registro de venda revertido")
		return nil, err
	}

	uc.log.Info().Int64("venda_id", sale.ID).Int64("notas_atualizadas", updated).Int("itens", len(ids)).Msg("venda registrada")
	return &dto.RegisterSaleResponse{
		Success: true,
		Message: fmt.Sprintf("Venda registrada com sucesso! %d nota(s) fiscal(is) marcada(s) como vendida(s).", updated),
		Sale: dto.RegisteredSale{
			SaleID:          sale.ID,
			BuyerName:       sale.BuyerName,
			TotalValue:      sale.TotalValue,
			ItemsSold:       len(ids),
			InvoicesUpdated: updated,
		},
	}, nil
}

// Reverse deshace la venta: libera sus ítems, la borra y reabre como disponivel cada
// nota vinculada, limpiando el pedido de compra.
func (uc *RegisterUseCase) Reverse(ctx context.Context, saleID int64, ip string) (*dto.SaleReversalResponse, error) {
	var rev *reconcile.Reversal
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		sale, err := uow.Sales().GetByID(ctx, saleID)
		if err != nil {
			return fmt.Errorf("reversão: venda %d: %w", saleID, err)
		}
		if sale == nil {
			return fmt.Errorf("%w: venda %d não encontrada", domain.ErrNotFound, saleID)
		}
		if rev, err = reconcile.UndoSale(ctx, uow, sale); err != nil {
			return err
		}

		available := entity.StatusAvailable
		for _, id := range rev.Invoices {
			if _, err := uow.Invoices().GetForUpdate(ctx, id); err != nil {
				return fmt.Errorf("reversão: bloquear nota %d: %w", id, err)
			}
			inv, previous, err := uow.Invoices().ApplyPatch(ctx, id, repository.InvoicePatch{
				Status:             &available,
				ClearPurchaseOrder: true,
			})
			if err != nil {
				return fmt.Errorf("reversão: reabrir nota %d: %w", id, err)
			}
			if inv == nil || previous == available {
				continue
			}
			entry := &entity.AuditLogEntry{
				InvoiceID: id,
				Field:     "status",
				OldValue:  string(previous),
				NewValue:  string(available),
				IP:        ip,
			}
			if err := uow.Savepoint(ctx, func(sp repository.UnitOfWork) error {
				return sp.Audit().Append(ctx, entry)
			}); err != nil {
				uc.log.Warn().Err(err).Int64("nota_id", id).Msg("falha ao registrar auditoria da reversão")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Int64("venda_id", saleID).Int64("itens_desvinculados", rev.ItemsUnlinked).Msg("venda desfeita")
	return &dto.SaleReversalResponse{
		Success:          true,
		Message:          fmt.Sprintf("Venda #%d desfeita: %d nota(s) reaberta(s).", saleID, len(rev.Invoices)),
		SaleID:           saleID,
		ItemsUnlinked:    rev.ItemsUnlinked,
		InvoicesReopened: rev.Invoices,
	}, nil
}

func buildSale(in dto.RegisterSaleRequest) (*entity.Sale, error) {
	var missing []string
	if len(in.ItemIDs) == 0 {
		missing = append(missing, "itens_vendidos_ids")
	}
	if strings.TrimSpace(in.BuyerName) == "" {
		missing = append(missing, "cliente_nome")
	}
	if in.TotalValue == nil {
		missing = append(missing, "valor_total")
	}
	if strings.TrimSpace(in.PurchaseOrder) == "" {
		missing = append(missing, "numero_pedido_compra")
	}
	if strings.TrimSpace(in.BusinessUnit) == "" {
		missing = append(missing, "unidade_gestora")
	}
	if strings.TrimSpace(in.SaleDate) == "" {
		missing = append(missing, "data_venda")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}
	if !in.TotalValue.IsPositive() {
		return nil, domain.NewValidationError("valor_total", "deve ser maior que zero")
	}
	date, err := parseDate("data_venda", in.SaleDate)
	if err != nil {
		return nil, err
	}

	sale := &entity.Sale{
		BuyerName:      strings.TrimSpace(in.BuyerName),
		BuyerTaxID:     in.BuyerTaxID,
		TotalValue:     *in.TotalValue,
		PurchaseOrder:  strings.TrimSpace(in.PurchaseOrder),
		BusinessUnit:   strings.TrimSpace(in.BusinessUnit),
		SaleDate:       date,
		Notes:          in.Notes,
		ServiceInvoice: in.ServiceInvoice,
		FinalCustomer:  in.FinalCustomer,
	}
	if in.PricePerTon != nil {
		sale.PricePerTon = *in.PricePerTon
	}
	return sale, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

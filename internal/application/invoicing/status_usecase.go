package invoicing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/application/reconcile"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/lifecycle"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

const auditWarning = "Atenção: não foi possível registrar a auditoria desta alteração."

// mode distingue las dos entradas al motor de status.
type mode int

const (
	// modeBatch: lote y PUT individual. Verifica vínculo con venta salvo forzado; la
	// reversión forzada tolera errores.
	modeBatch mode = iota
	// modeReprocess: sin verificación de vínculo; toda salida de vendida revierte la venta
	// y un error en la reversión aborta.
	modeReprocess
)

// change alteración pedida sobre una nota.
type change struct {
	status        *entity.InvoiceStatus
	businessUnit  *string
	purchaseOrder string
	forced        bool
	ip            string
	operationID   string
}

// StatusUseCase aplica cambios de status y unidad gestora respetando el ciclo de vida.
type StatusUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewStatusUseCase construye el caso de uso.
func NewStatusUseCase(txRunner TxRunner, log *logger.Logger) *StatusUseCase {
	return &StatusUseCase{txRunner: txRunner, log: log}
}

// Batch aplica el cambio a cada nota en una única transacción. Los fallos de negocio
// quedan en el resultado de la nota; cualquier otro error revierte el lote entero.
func (uc *StatusUseCase) Batch(ctx context.Context, in dto.BatchStatusRequest, ip string) (*dto.BatchStatusResponse, error) {
	status := strings.TrimSpace(in.Status)
	unit := strings.TrimSpace(in.BusinessUnit)
	if len(in.InvoiceIDs) == 0 || (status == "" && unit == "") {
		return nil, domain.NewValidationError("", "É necessário informar pelo menos um status ou unidade gestora para atualização e pelo menos uma nota.")
	}
	ch, err := newChange(status, unit, in.PurchaseOrder, in.Forced, ip)
	if err != nil {
		return nil, err
	}

	log := uc.log.Zerolog().With().Str("operacao_id", ch.operationID).Bool("forcado", in.Forced).Logger()
	results := make([]dto.StatusChangeResult, 0, len(in.InvoiceIDs))
	successes := 0

	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		results = results[:0]
		successes = 0
		for _, id := range in.InvoiceIDs {
			res, err := uc.apply(ctx, uow, id, ch, modeBatch)
			if err != nil {
				if !domain.IsBusiness(err) {
					return fmt.Errorf("lote: nota %d: %w", id, err)
				}
				log.Warn().Int64("nota_id", id).Err(err).Msg("nota não atualizada")
				results = append(results, dto.StatusChangeResult{
					ID:      id,
					Success: false,
					Message: err.Error(),
					Forced:  in.Forced,
				})
				continue
			}
			successes++
			results = append(results, *res)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("atualização em lote revertida")
		return nil, err
	}

	failures := len(results) - successes
	suffix := ""
	if in.Forced {
		suffix = " (Alteração forçada)"
	}
	log.Info().Int("sucessos", successes).Int("falhas", failures).Msg("atualização em lote concluída")
	return &dto.BatchStatusResponse{
		Success:     true,
		Message:     fmt.Sprintf("Atualização em lote concluída: %d nota(s) atualizada(s) com sucesso, %d falha(s).%s", successes, failures, suffix),
		OperationID: ch.operationID,
		Total:       len(results),
		Successes:   successes,
		Failures:    failures,
		Results:     results,
		Forced:      in.Forced,
	}, nil
}

// Update aplica el cambio a una sola nota con las reglas del lote; cualquier error aborta.
func (uc *StatusUseCase) Update(ctx context.Context, id int64, in dto.UpdateStatusRequest, ip string) (*dto.StatusChangeResult, error) {
	status := strings.TrimSpace(in.Status)
	unit := strings.TrimSpace(in.BusinessUnit)
	if status == "" && unit == "" {
		return nil, domain.MissingFields("status")
	}
	ch, err := newChange(status, unit, in.PurchaseOrder, in.Forced, ip)
	if err != nil {
		return nil, err
	}

	var res *dto.StatusChangeResult
	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		res, err = uc.apply(ctx, uow, id, ch, modeBatch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Reprocess corrige el status de una nota. Si la nota sale de vendida la venta se deshace
// en la misma transacción, sin verificación previa de vínculo.
func (uc *StatusUseCase) Reprocess(ctx context.Context, in dto.ReprocessStatusRequest, ip string) (*dto.ReprocessStatusResponse, error) {
	var missing []string
	if in.InvoiceID <= 0 {
		missing = append(missing, "notaId")
	}
	if strings.TrimSpace(in.Status) == "" {
		missing = append(missing, "novoStatus")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}
	ch, err := newChange(strings.TrimSpace(in.Status), strings.TrimSpace(in.BusinessUnit), in.PurchaseOrder, in.Forced, ip)
	if err != nil {
		return nil, err
	}

	var res *dto.StatusChangeResult
	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		res, err = uc.apply(ctx, uow, in.InvoiceID, ch, modeReprocess)
		return err
	})
	if err != nil {
		uc.log.Warn().Err(err).Int64("nota_id", in.InvoiceID).Str("operacao_id", ch.operationID).Msg("reprocessamento revertido")
		return nil, err
	}

	msg := "Status da nota reprocessado com sucesso."
	if in.Forced {
		msg += " (Alteração forçada)"
	}
	return &dto.ReprocessStatusResponse{
		Success:        true,
		Message:        msg,
		ReversedSaleID: res.ReversedSaleID,
		Forced:         in.Forced,
	}, nil
}

func newChange(status, unit, purchaseOrder string, forced bool, ip string) (change, error) {
	ch := change{
		purchaseOrder: strings.TrimSpace(purchaseOrder),
		forced:        forced,
		ip:            ip,
		operationID:   uuid.NewString(),
	}
	if status != "" {
		s, err := lifecycle.ParseWritable(status)
		if err != nil {
			return change{}, err
		}
		ch.status = &s
	}
	if unit != "" {
		ch.businessUnit = &unit
	}
	return ch, nil
}

// apply ejecuta el cambio sobre una nota dentro de la transacción de uow.
func (uc *StatusUseCase) apply(ctx context.Context, uow repository.UnitOfWork, id int64, ch change, m mode) (*dto.StatusChangeResult, error) {
	inv, err := uow.Invoices().GetForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("bloquear nota %d: %w", id, err)
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: nota fiscal %d não encontrada", domain.ErrNotFound, id)
	}

	log := uc.log.Zerolog().With().
		Int64("nota_id", id).
		Str("operacao_id", ch.operationID).
		Bool("forcado", ch.forced).
		Str("status_anterior", string(inv.Status)).
		Logger()

	var (
		patch    repository.InvoicePatch
		reversed *int64
	)
	if ch.status != nil {
		current, target := inv.Status, *ch.status
		if target != current {
			if err := lifecycle.ValidateTransition(current, target, ch.forced); err != nil {
				return nil, err
			}
		}
		if m == modeBatch && lifecycle.RequiresLinkageCheck(current, target, ch.forced) {
			sale, err := uow.Sales().FindLinkedToInvoice(ctx, inv.ID)
			if err != nil {
				return nil, fmt.Errorf("verificar vínculo da nota %d: %w", id, err)
			}
			if sale != nil {
				date := sale.SaleDate
				return nil, &domain.LinkageConflictError{
					InvoiceID:     inv.ID,
					InvoiceNumber: inv.Number,
					SaleID:        sale.ID,
					Buyer:         sale.BuyerName,
					SaleDate:      &date,
					ServiceNF:     sale.ServiceInvoice,
				}
			}
		}
		if lifecycle.LeavesSold(current, target) {
			rev, err := uc.reverse(ctx, uow, inv, ch, m)
			if err != nil {
				return nil, err
			}
			if rev != nil && rev.Sale != nil {
				saleID := rev.Sale.ID
				reversed = &saleID
				log.Info().Int64("venda_id", saleID).Int64("itens_desvinculados", rev.ItemsUnlinked).Msg("venda revertida")
			}
			patch.ClearPurchaseOrder = true
		}
		if current == entity.StatusInLot && target != entity.StatusInLot {
			patch.ClearLot = true
		}
		if target == entity.StatusSold {
			po := ch.purchaseOrder
			if po == "" && inv.HasPurchaseOrder() {
				po = *inv.PurchaseOrder
			}
			if po == "" {
				return nil, domain.NewValidationError("numero_pedido_compra", "número do pedido de compra é obrigatório para o status 'vendida'")
			}
			patch.PurchaseOrder = &po
		}
		patch.Status = &target
	}
	if ch.businessUnit != nil && *ch.businessUnit != inv.BusinessUnit {
		unit := *ch.businessUnit
		patch.BusinessUnit = &unit
	}
	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: Nenhuma alteração necessária para a nota %s", domain.ErrNothingToUpdate, inv.Number)
	}

	updated, previous, err := uow.Invoices().ApplyPatch(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("atualizar nota %d: %w", id, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: nota fiscal %d não encontrada", domain.ErrNotFound, id)
	}

	res := &dto.StatusChangeResult{
		ID:             updated.ID,
		Number:         updated.Number,
		Success:        true,
		PreviousStatus: string(previous),
		Status:         string(updated.Status),
		BusinessUnit:   updated.BusinessUnit,
		Message:        "Nota atualizada com sucesso",
		ReversedSaleID: reversed,
		Forced:         ch.forced,
	}
	if ch.forced {
		res.Message += " (Alteração forçada)"
	}

	if entries := auditEntries(inv, updated, previous, ch); len(entries) > 0 {
		err := uow.Savepoint(ctx, func(sp repository.UnitOfWork) error {
			for i := range entries {
				if err := sp.Audit().Append(ctx, &entries[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Warn().Err(err).Msg("falha ao registrar auditoria")
			res.AuditWarning = auditWarning
		}
	}

	log.Info().Str("status_novo", res.Status).Msg("nota atualizada")
	return res, nil
}

// reverse deshace la venta de una nota que sale de vendida. En lote solo actúa con
// modo forzado y dentro de un savepoint: un error se registra y se ignora.
func (uc *StatusUseCase) reverse(ctx context.Context, uow repository.UnitOfWork, inv *entity.Invoice, ch change, m mode) (*reconcile.Reversal, error) {
	if m == modeReprocess {
		rev, err := reconcile.ReverseInvoice(ctx, uow, inv)
		if err != nil {
			return nil, fmt.Errorf("reverter venda da nota %d: %w", inv.ID, err)
		}
		return rev, nil
	}
	if !ch.forced {
		return nil, nil
	}

	var rev *reconcile.Reversal
	err := uow.Savepoint(ctx, func(sp repository.UnitOfWork) error {
		var err error
		rev, err = reconcile.ReverseInvoice(ctx, sp, inv)
		return err
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		uc.log.Warn().Err(err).Int64("nota_id", inv.ID).Str("operacao_id", ch.operationID).Msg("limpeza da venda falhou; seguindo com a alteração forçada")
		return nil, nil
	}
	return rev, nil
}

// auditEntries un registro por campo efectivamente alterado.
func auditEntries(before, after *entity.Invoice, previous entity.InvoiceStatus, ch change) []entity.AuditLogEntry {
	var out []entity.AuditLogEntry
	if previous != after.Status {
		out = append(out, entity.AuditLogEntry{
			InvoiceID:   after.ID,
			Field:       "status",
			OldValue:    string(previous),
			NewValue:    string(after.Status),
			IP:          ch.ip,
			OperationID: ch.operationID,
			Forced:      ch.forced,
		})
	}
	if before.BusinessUnit != after.BusinessUnit {
		out = append(out, entity.AuditLogEntry{
			InvoiceID:   after.ID,
			Field:       "unidade_gestora",
			OldValue:    before.BusinessUnit,
			NewValue:    after.BusinessUnit,
			IP:          ch.ip,
			OperationID: ch.operationID,
			Forced:      ch.forced,
		})
	}
	return out
}

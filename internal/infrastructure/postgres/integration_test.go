package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/application/invoicing"
	"github.com/jhoicas/reciclagem-api/internal/application/sales"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/nfe"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/postgres"
	"github.com/jhoicas/reciclagem-api/pkg/config"
	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

// setupTestDB usa TEST_DATABASE_URL (nunca la base de la aplicación), aplica las
// migraciones y vacía las tablas transaccionales.
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../../.env")

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL no definido: se omite la prueba de integración")
	}
	require.NoError(t, postgres.Migrate(dbURL))

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dbURL, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE auditoria_notas_fiscais, itens_notas_fiscais, vendas, notas_fiscais, clientes, documentos
		RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
	return pool
}

func importRequest(seq int, kg int64) dto.ImportInvoiceRequest {
	return dto.ImportInvoiceRequest{
		AccessKey:      fmt.Sprintf("%044d", seq),
		Number:         fmt.Sprintf("%d", 5000+seq),
		IssuedAt:       "2024-03-15",
		IssuerTaxID:    "12345678000190",
		IssuerName:     "Cooperativa Recicla",
		RecipientTaxID: "98765432000110",
		RecipientName:  "Aparas Brasil",
		BusinessUnit:   "UG Norte",
		Items: []dto.ImportInvoiceItemRequest{
			{NCM: "47079000", Description: "Aparas de papel", Quantity: decimal.NewFromInt(kg), Unit: "KG"},
		},
	}
}

// ─── Ciclo completo ─────────────────────────────────────────────────────────────

func TestIntegration_VentaYReversionForzada(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	log := logger.Nop()

	txRunner := postgres.NewTxRunner(pool)
	importUC := invoicing.NewImportUseCase(txRunner, nfe.NewParser(), log)
	statusUC := invoicing.NewStatusUseCase(txRunner, log)
	queryUC := invoicing.NewQueryUseCase(
		postgres.NewInvoiceRepository(pool),
		postgres.NewInvoiceItemRepository(pool),
		postgres.NewAuditRepository(pool),
		postgres.NewAnalyticsRepository(pool),
	)
	registerUC := sales.NewRegisterUseCase(txRunner, log)
	saleRepo := postgres.NewSaleRepository(pool)

	a, err := importUC.Import(ctx, importRequest(1, 600))
	require.NoError(t, err)
	assert.Equal(t, "disponivel", a.Status)
	b, err := importUC.Import(ctx, importRequest(2, 400))
	require.NoError(t, err)

	_, err = importUC.Import(ctx, importRequest(1, 600))
	assert.True(t, errors.Is(err, domain.ErrDuplicate), "la chave de acesso es única")

	invA, err := queryUC.Get(ctx, a.InvoiceID)
	require.NoError(t, err)
	invB, err := queryUC.Get(ctx, b.InvoiceID)
	require.NoError(t, err)
	require.Len(t, invA.Items, 1)
	assert.Equal(t, "Papel", invA.Items[0].Material, "material de la classificação sembrada")

	total := decimal.NewFromInt(800)
	sold, err := registerUC.Register(ctx, dto.RegisterSaleRequest{
		ItemIDs:       []int64{invA.Items[0].ID, invB.Items[0].ID},
		BuyerName:     "Recicladora Sul",
		TotalValue:    &total,
		PurchaseOrder: "PC-INT-1",
		BusinessUnit:  "UG Norte",
		SaleDate:      "2024-04-10",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), sold.Sale.InvoicesUpdated)

	_, err = statusUC.Update(ctx, a.InvoiceID, dto.UpdateStatusRequest{Status: "disponivel"}, "127.0.0.1")
	var linked *domain.LinkageConflictError
	require.True(t, errors.As(err, &linked), "sin forzar, una nota vinculada no puede reabrirse: %v", err)
	assert.Equal(t, sold.Sale.SaleID, linked.SaleID)

	res, err := statusUC.Update(ctx, a.InvoiceID, dto.UpdateStatusRequest{Status: "disponivel", Forced: true}, "127.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Success)

	after, err := queryUC.Get(ctx, a.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, "disponivel", after.Status)
	assert.Nil(t, after.PurchaseOrder)
	assert.Nil(t, after.Items[0].SaleID)

	gone, err := saleRepo.GetByID(ctx, sold.Sale.SaleID)
	require.NoError(t, err)
	assert.Nil(t, gone, "la reversión forzada borra la venta")

	audit, err := queryUC.Audit(ctx, a.InvoiceID)
	require.NoError(t, err)
	assert.NotEmpty(t, audit)
}

// ─── Savepoint ──────────────────────────────────────────────────────────────────

func TestIntegration_SavepointRevierteSoloLoInterno(t *testing.T) {
	pool := setupTestDB(t)
	ctx := context.Background()
	txRunner := postgres.NewTxRunner(pool)

	res, err := invoicing.NewImportUseCase(txRunner, nfe.NewParser(), logger.Nop()).Import(ctx, importRequest(3, 100))
	require.NoError(t, err)

	boom := errors.New("fallo interno")
	offered := entity.StatusOffered
	rejected := entity.StatusRejected
	err = txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		if _, _, err := uow.Invoices().ApplyPatch(ctx, res.InvoiceID, repository.InvoicePatch{Status: &offered}); err != nil {
			return err
		}
		spErr := uow.Savepoint(ctx, func(inner repository.UnitOfWork) error {
			if _, _, err := inner.Invoices().ApplyPatch(ctx, res.InvoiceID, repository.InvoicePatch{Status: &rejected}); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, spErr, boom)
		return nil
	})
	require.NoError(t, err)

	inv, err := postgres.NewInvoiceRepository(pool).GetByID(ctx, res.InvoiceID)
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, entity.StatusOffered, inv.Status, "el cambio externo se confirma y el del savepoint no")
}

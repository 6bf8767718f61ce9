package invoicing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/application/invoicing"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/memstore"
	"github.com/jhoicas/reciclagem-api/internal/infrastructure/nfe"
	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

const chave = "35240312345678000190550010000012341000012345"

func importRequest() dto.ImportInvoiceRequest {
	return dto.ImportInvoiceRequest{
		AccessKey:      chave,
		Number:         "1234",
		IssuedAt:       "2024-03-15",
		IssuerTaxID:    "12345678000190",
		IssuerName:     "Cooperativa Recicla",
		IssuerState:    "SP",
		RecipientTaxID: "98765432000110",
		RecipientName:  "Aparas Brasil",
		BusinessUnit:   "UG Norte",
		Items: []dto.ImportInvoiceItemRequest{
			{NCM: "47079000", Description: "Aparas de papelão", Quantity: decimal.NewFromInt(1500), Unit: "KG"},
			{NCM: "39151000", Description: "Plástico PEAD", Quantity: decimal.NewFromInt(320), Unit: "KG", CFOP: "5102"},
		},
	}
}

func classifiedStore(t *testing.T) *memstore.Store {
	t.Helper()
	st := memstore.New()
	ctx := context.Background()
	require.NoError(t, st.Classifications().Create(ctx, &entity.NCMClassification{NCM: "47079000", Material: "papelao"}))
	require.NoError(t, st.Classifications().Create(ctx, &entity.NCMClassification{NCM: "39151000", Material: "plastico"}))
	return st
}

func countInvoices(t *testing.T, st *memstore.Store) int64 {
	t.Helper()
	rows, err := st.Analytics().StatusCounts(context.Background())
	require.NoError(t, err)
	var n int64
	for _, r := range rows {
		n += r.Count
	}
	return n
}

func TestImport_CreaNotaEItemsClasificados(t *testing.T) {
	st := classifiedStore(t)
	ctx := context.Background()
	customer := &entity.Customer{CNPJ: "12345678000190", LegalName: "Cooperativa Recicla", Active: true}
	require.NoError(t, st.Customers().Create(ctx, customer))

	res, err := invoicing.NewImportUseCase(st, nil, logger.Nop()).Import(ctx, importRequest())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "disponivel", res.Status)

	inv := reload(t, st, res.InvoiceID)
	assert.Equal(t, entity.StatusAvailable, inv.Status)
	require.NotNil(t, inv.CustomerID, "el cliente se resuelve por el CNPJ del emisor")
	assert.Equal(t, customer.ID, *inv.CustomerID)

	items, err := st.Items().ListByInvoice(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "papelao", items[0].Material)
	assert.Equal(t, "plastico", items[1].Material)
	require.NotNil(t, items[1].CFOP)
	assert.Nil(t, items[0].SaleID)
}

func TestImport_ChaveDuplicada(t *testing.T) {
	st := classifiedStore(t)
	uc := invoicing.NewImportUseCase(st, nil, logger.Nop())
	ctx := context.Background()

	_, err := uc.Import(ctx, importRequest())
	require.NoError(t, err)

	_, err = uc.Import(ctx, importRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, int64(1), countInvoices(t, st), "debe quedar una sola nota")
}

func TestImport_NCMSinClasificarRevierteTodo(t *testing.T) {
	st := classifiedStore(t)
	req := importRequest()
	req.Items[1].NCM = "99999999"

	_, err := invoicing.NewImportUseCase(st, nil, logger.Nop()).Import(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnclassifiedNCM)
	assert.Equal(t, int64(0), countInvoices(t, st), "ni cabecera ni ítems deben quedar")
}

func TestImport_FalloDeItemRevierteTodo(t *testing.T) {
	st := classifiedStore(t)
	st.FailOn("items.Create", errors.New("disco cheio"))

	_, err := invoicing.NewImportUseCase(st, nil, logger.Nop()).Import(context.Background(), importRequest())
	require.Error(t, err)
	assert.False(t, domain.IsBusiness(err))
	assert.Equal(t, int64(0), countInvoices(t, st))
}

func TestImport_Validaciones(t *testing.T) {
	uc := invoicing.NewImportUseCase(classifiedStore(t), nil, logger.Nop())
	cases := map[string]func(r *dto.ImportInvoiceRequest){
		"sin chave":         func(r *dto.ImportInvoiceRequest) { r.AccessKey = "" },
		"chave corta":       func(r *dto.ImportInvoiceRequest) { r.AccessKey = "123" },
		"sin unidade":       func(r *dto.ImportInvoiceRequest) { r.BusinessUnit = " " },
		"sin itens":         func(r *dto.ImportInvoiceRequest) { r.Items = nil },
		"fecha inválida":    func(r *dto.ImportInvoiceRequest) { r.IssuedAt = "15/03/2024" },
		"cantidad negativa": func(r *dto.ImportInvoiceRequest) { r.Items[0].Quantity = decimal.NewFromInt(-1) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := importRequest()
			mutate(&req)
			_, err := uc.Import(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestImportXML_GuardaDigest(t *testing.T) {
	st := classifiedStore(t)
	uc := invoicing.NewImportUseCase(st, nfe.NewParser(), logger.Nop())
	xml := `<NFe xmlns="http://www.portalfiscal.inf.br/nfe"><infNFe Id="NFe` + chave + `">
<ide><nNF>55</nNF><dEmi>2024-01-02</dEmi></ide>
<emit><CNPJ>12345678000190</CNPJ><xNome>Cooperativa Recicla</xNome></emit>
<dest><CNPJ>98765432000110</CNPJ><xNome>Aparas Brasil</xNome></dest>
<det nItem="1"><prod><NCM>47079000</NCM><xProd>Aparas</xProd><uCom>KG</uCom><qCom>10</qCom></prod></det>
</infNFe></NFe>`

	_, err := uc.ImportXML(context.Background(), []byte(xml), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unidadeGestora obligatoria")

	res, err := uc.ImportXML(context.Background(), []byte(xml), "UG Norte")
	require.NoError(t, err)
	assert.Len(t, res.Digest, 64)
	assert.Equal(t, res.Digest, reload(t, st, res.InvoiceID).XMLDigest)
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportInvoiceItemRequest línea de la nota a importar.
type ImportInvoiceItemRequest struct {
	NCM         string          `json:"ncm"`
	Description string          `json:"descricao"`
	Quantity    decimal.Decimal `json:"quantidade"`
	Unit        string          `json:"unidade"`
	CFOP        string          `json:"cfop,omitempty"`
}

// ImportInvoiceRequest body para POST /api/invoices/import.
// IssuedAt acepta RFC3339 o AAAA-MM-DD.
type ImportInvoiceRequest struct {
	AccessKey      string                     `json:"chaveNFe"`
	Number         string                     `json:"numeroNota"`
	IssuedAt       string                     `json:"dataEmissao"`
	IssuerTaxID    string                     `json:"emitenteCNPJ"`
	IssuerName     string                     `json:"emitenteNome"`
	IssuerState    string                     `json:"emitenteUF"`
	RecipientTaxID string                     `json:"destinatarioCNPJ"`
	RecipientName  string                     `json:"destinatarioNome"`
	RecipientState string                     `json:"destinatarioUF"`
	BusinessUnit   string                     `json:"unidadeGestora"`
	Items          []ImportInvoiceItemRequest `json:"itens"`
}

// ImportInvoiceResponse resultado de la importación.
type ImportInvoiceResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	InvoiceID int64  `json:"notaFiscalId"`
	Digest    string `json:"xml_digest,omitempty"`
}

// BatchStatusRequest body para POST /api/invoices/batch-status.
// PurchaseOrder solo se usa cuando el destino es vendida.
type BatchStatusRequest struct {
	InvoiceIDs    []int64 `json:"notas"`
	Status        string  `json:"novo_status,omitempty"`
	BusinessUnit  string  `json:"nova_unidade_gestora,omitempty"`
	PurchaseOrder string  `json:"numero_pedido_compra,omitempty"`
	Forced        bool    `json:"forcarAlteracao"`
}

// StatusChangeResult resultado por nota de un cambio de status.
type StatusChangeResult struct {
	ID             int64  `json:"id"`
	Number         string `json:"numero_nota,omitempty"`
	Success        bool   `json:"success"`
	PreviousStatus string `json:"status_anterior,omitempty"`
	Status         string `json:"status,omitempty"`
	BusinessUnit   string `json:"unidade_gestora,omitempty"`
	Message        string `json:"message,omitempty"`
	AuditWarning   string `json:"auditWarning,omitempty"`
	ReversedSaleID *int64 `json:"venda_revertida_id,omitempty"`
	Forced         bool   `json:"forcarAlteracao"`
}

// BatchStatusResponse resultado agregado del lote.
type BatchStatusResponse struct {
	Success     bool                 `json:"success"`
	Message     string               `json:"message"`
	OperationID string               `json:"operacao_id"`
	Total       int                  `json:"total"`
	Successes   int                  `json:"sucessos"`
	Failures    int                  `json:"falhas"`
	Results     []StatusChangeResult `json:"resultados"`
	Forced      bool                 `json:"forcarAlteracao"`
}

// ReprocessStatusRequest body para POST /api/invoices/reprocess-status.
type ReprocessStatusRequest struct {
	InvoiceID     int64  `json:"notaId"`
	Status        string `json:"novoStatus"`
	BusinessUnit  string `json:"novaUnidadeGestora,omitempty"`
	PurchaseOrder string `json:"numeroPedidoCompra,omitempty"`
	Forced        bool   `json:"forcarAlteracao"`
}

// ReprocessStatusResponse resultado del reprocesamiento.
type ReprocessStatusResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ReversedSaleID *int64 `json:"venda_revertida_id,omitempty"`
	Forced         bool   `json:"forcarAlteracao"`
}

// UpdateStatusRequest body para PUT /api/invoices/:id/status.
type UpdateStatusRequest struct {
	Status        string `json:"status"`
	BusinessUnit  string `json:"unidade_gestora,omitempty"`
	PurchaseOrder string `json:"numero_pedido_compra,omitempty"`
	Forced        bool   `json:"forcarAlteracao"`
}

// InvoiceItemResponse línea de nota en respuestas.
type InvoiceItemResponse struct {
	ID          int64           `json:"id"`
	NCM         string          `json:"ncm"`
	Description string          `json:"descricao"`
	Quantity    decimal.Decimal `json:"quantidade"`
	Unit        string          `json:"unidade"`
	Material    string          `json:"material"`
	CFOP        *string         `json:"cfop,omitempty"`
	SaleID      *int64          `json:"venda_id,omitempty"`
}

// InvoiceResponse nota con ítems para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID             int64                 `json:"id"`
	AccessKey      string                `json:"chave_nfe"`
	Number         string                `json:"numero_nota"`
	IssuedAt       time.Time             `json:"data_emissao"`
	IssuerTaxID    string                `json:"emitente_cnpj"`
	IssuerName     string                `json:"emitente_nome"`
	IssuerState    string                `json:"emitente_uf"`
	RecipientTaxID string                `json:"destinatario_cnpj"`
	RecipientName  string                `json:"destinatario_nome"`
	RecipientState string                `json:"destinatario_uf"`
	Status         string                `json:"status"`
	BusinessUnit   string                `json:"unidade_gestora"`
	PurchaseOrder  *string               `json:"numero_pedido_compra"`
	LotNumber      *string               `json:"lote_associado"`
	CustomerID     *int64                `json:"cliente_id"`
	UpdatedAt      *time.Time            `json:"data_atualizacao,omitempty"`
	Items          []InvoiceItemResponse `json:"itens"`
}

// AuditEntryResponse registro de auditoría.
type AuditEntryResponse struct {
	ID          int64     `json:"id"`
	Field       string    `json:"campo_alterado"`
	OldValue    string    `json:"valor_anterior"`
	NewValue    string    `json:"valor_novo"`
	IP          string    `json:"ip"`
	OperationID string    `json:"operacao_id,omitempty"`
	Forced      bool      `json:"forcado"`
	ChangedAt   time.Time `json:"data_alteracao"`
}

// InvoiceLineResponse fila nota + ítem de los listados.
type InvoiceLineResponse struct {
	ID            int64            `json:"id"`
	Number        string           `json:"numero_nota"`
	IssuedAt      time.Time        `json:"data_emissao"`
	IssuerName    string           `json:"emitente_nome"`
	RecipientName string           `json:"destinatario_nome"`
	Status        string           `json:"status"`
	BusinessUnit  string           `json:"unidade_gestora"`
	PurchaseOrder *string          `json:"numero_pedido_compra"`
	ItemID        *int64           `json:"item_id"`
	NCM           *string          `json:"ncm"`
	Description   *string          `json:"descricao"`
	Material      *string          `json:"material"`
	Quantity      *decimal.Decimal `json:"quantidade"`
	Unit          *string          `json:"unidade"`
}

// InvoicesByNumbersResponse notas encontradas y números sin correspondencia.
type InvoicesByNumbersResponse struct {
	Success  bool                  `json:"success"`
	Found    []InvoiceLineResponse `json:"notas_encontradas"`
	NotFound []string              `json:"notas_nao_encontradas"`
}

// SoldInvoiceResponse nota vendida para listados.
type SoldInvoiceResponse struct {
	Number        string    `json:"numero_nota"`
	RecipientName string    `json:"destinatario_nome"`
	IssuedAt      time.Time `json:"data_emissao"`
	PurchaseOrder *string   `json:"numero_pedido_compra,omitempty"`
}

// MaterialQuantityResponse cantidad total de un material.
type MaterialQuantityResponse struct {
	Material string          `json:"material"`
	Quantity decimal.Decimal `json:"quantidade_total"`
}

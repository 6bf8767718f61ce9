package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound              = errors.New("recurso não encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrConflict              = errors.New("conflito com o estado atual")
	ErrInvalidTransition     = errors.New("transição de status inválida")
	ErrSaleLinked            = errors.New("nota vinculada a uma venda")
	ErrNothingToUpdate       = errors.New("nenhuma alteração informada")
	ErrUnclassifiedNCM       = errors.New("NCM sem classificação de material")
	ErrInsufficientInventory = errors.New("estoque insuficiente para a quantidade desejada")
)

// ValidationError indica un campo obligatorio ausente o mal formado.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError construye un ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// MissingFields construye un ValidationError que lista los campos faltantes.
func MissingFields(fields ...string) *ValidationError {
	return &ValidationError{
		Field:   strings.Join(fields, ","),
		Message: "campos obrigatórios ausentes",
	}
}

// TransitionError movimiento de status no permitido sin modo forzado.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transição inválida: %s -> %s. Use forcarAlteracao=true para ignorar esta validação", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// LinkageConflictError la nota tiene ítems vinculados a una venta activa.
type LinkageConflictError struct {
	InvoiceID     int64
	InvoiceNumber string
	SaleID        int64
	Buyer         string
	SaleDate      *time.Time
	ServiceNF     string
}

func (e *LinkageConflictError) Error() string {
	date := "data não informada"
	if e.SaleDate != nil {
		date = e.SaleDate.Format("02/01/2006")
	}
	buyer := e.Buyer
	if buyer == "" {
		buyer = "Cliente não informado"
	}
	nf := ""
	if e.ServiceNF != "" {
		nf = fmt.Sprintf(" (NF Serviço: %s)", e.ServiceNF)
	}
	return fmt.Sprintf(
		"não é possível alterar para 'disponivel' a nota %s pois está vinculada à venda #%d de %s. Cliente: %s%s. Desfaça a venda primeiro no módulo de Vendas",
		e.InvoiceNumber, e.SaleID, date, buyer, nf,
	)
}

func (e *LinkageConflictError) Unwrap() error { return ErrSaleLinked }

// SaleProblem describe un problema de un ítem candidato a venta.
type SaleProblem struct {
	ItemID          int64           `json:"id"`
	Material        string          `json:"material"`
	Quantity        decimal.Decimal `json:"quantidade"`
	InvoiceNumber   string          `json:"numero_nota"`
	CurrentPurchase string          `json:"pedido_atual,omitempty"`
	Problems        []string        `json:"problemas"`
}

// StockShortage faltante por material en la validación de venta.
type StockShortage struct {
	Material  string          `json:"material"`
	Requested decimal.Decimal `json:"quantidade_solicitada"`
	Available decimal.Decimal `json:"quantidade_disponivel"`
	Deficit   decimal.Decimal `json:"deficit"`
}

// SaleValidationError resultado negativo de la pre-validación de venta con detalle estructurado.
type SaleValidationError struct {
	Reason         string
	Details        map[string]any
	ItemProblems   []SaleProblem
	StockShortages []StockShortage
	ValidItems     int
}

func (e *SaleValidationError) Error() string { return e.Reason }

func (e *SaleValidationError) Unwrap() error { return ErrInvalidInput }

// IsBusiness indica si err es un resultado de negocio esperado (validación, transición,
// vínculo, inexistencia) y no una falla de infraestructura.
func IsBusiness(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrInvalidInput, ErrDuplicate, ErrConflict, ErrInvalidTransition,
		ErrSaleLinked, ErrNothingToUpdate, ErrUnclassifiedNCM, ErrInsufficientInventory,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

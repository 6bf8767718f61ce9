package invoicing

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/domain"
	"github.com/jhoicas/reciclagem-api/internal/domain/entity"
	"github.com/jhoicas/reciclagem-api/internal/domain/repository"
	"github.com/jhoicas/reciclagem-api/pkg/logger"
)

var accessKeyPattern = regexp.MustCompile(`^\d{44}$`)

// ImportUseCase importa notas fiscales de proveedor con sus ítems clasificados por NCM.
type ImportUseCase struct {
	txRunner TxRunner
	parser   InvoiceXMLParser
	log      *logger.Logger
}

// NewImportUseCase construye el caso de uso. parser puede ser nil si no se expone la importación por XML.
func NewImportUseCase(txRunner TxRunner, parser InvoiceXMLParser, log *logger.Logger) *ImportUseCase {
	return &ImportUseCase{txRunner: txRunner, parser: parser, log: log}
}

// Import inserta cabecera e ítems en una transacción. Si algún ítem no tiene NCM
// clasificado la importación entera se revierte.
func (uc *ImportUseCase) Import(ctx context.Context, in dto.ImportInvoiceRequest) (*dto.ImportInvoiceResponse, error) {
	return uc.importInvoice(ctx, in, "")
}

// ImportXML lee la NF-e y la importa guardando el digest canónico del XML.
func (uc *ImportUseCase) ImportXML(ctx context.Context, data []byte, businessUnit string) (*dto.ImportInvoiceResponse, error) {
	if uc.parser == nil {
		return nil, fmt.Errorf("importação por XML não configurada")
	}
	if strings.TrimSpace(businessUnit) == "" {
		return nil, domain.MissingFields("unidadeGestora")
	}
	in, digest, err := uc.parser.ParseImport(data, businessUnit)
	if err != nil {
		return nil, err
	}
	return uc.importInvoice(ctx, in, digest)
}

func (uc *ImportUseCase) importInvoice(ctx context.Context, in dto.ImportInvoiceRequest, digest string) (*dto.ImportInvoiceResponse, error) {
	inv, err := buildInvoice(in)
	if err != nil {
		return nil, err
	}
	inv.XMLDigest = digest

	err = uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		existing, err := uow.Invoices().GetByAccessKey(ctx, inv.AccessKey)
		if err != nil {
			return fmt.Errorf("import: buscar chave: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("%w: nota fiscal com chave %s já existe", domain.ErrDuplicate, inv.AccessKey)
		}

		customer, err := uow.Customers().GetByCNPJ(ctx, inv.IssuerTaxID)
		if err != nil {
			return fmt.Errorf("import: cliente do emitente: %w", err)
		}
		if customer != nil {
			id := customer.ID
			inv.CustomerID = &id
		}

		if err := uow.Invoices().Create(ctx, inv); err != nil {
			return fmt.Errorf("import: inserir nota: %w", err)
		}

		for i, line := range in.Items {
			material, err := uow.Classifications().MaterialFor(ctx, line.NCM)
			if err != nil {
				return fmt.Errorf("import: classificar NCM %s: %w", line.NCM, err)
			}
			if material == "" {
				return fmt.Errorf("%w: item %d (NCM %s)", domain.ErrUnclassifiedNCM, i+1, line.NCM)
			}
			item := &entity.InvoiceItem{
				InvoiceID:   inv.ID,
				NCM:         line.NCM,
				Description: line.Description,
				Quantity:    line.Quantity,
				Unit:        line.Unit,
				Material:    material,
			}
			if line.CFOP != "" {
				cfop := line.CFOP
				item.CFOP = &cfop
			}
			if err := uow.Items().Create(ctx, item); err != nil {
				return fmt.Errorf("import: inserir item %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("chave_nfe", inv.AccessKey).Msg("importação de nota revertida")
		return nil, err
	}

	uc.log.Info().Int64("nota_id", inv.ID).Str("chave_nfe", inv.AccessKey).Int("itens", len(in.Items)).Msg("nota fiscal importada")
	return &dto.ImportInvoiceResponse{
		Success:   true,
		Message:   "Nota fiscal importada com sucesso",
		Status:    string(entity.StatusAvailable),
		InvoiceID: inv.ID,
		Digest:    digest,
	}, nil
}

// buildInvoice valida los campos obligatorios y arma la cabecera.
func buildInvoice(in dto.ImportInvoiceRequest) (*entity.Invoice, error) {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"chaveNFe", in.AccessKey},
		{"numeroNota", in.Number},
		{"dataEmissao", in.IssuedAt},
		{"emitenteCNPJ", in.IssuerTaxID},
		{"emitenteNome", in.IssuerName},
		{"destinatarioCNPJ", in.RecipientTaxID},
		{"destinatarioNome", in.RecipientName},
		{"unidadeGestora", in.BusinessUnit},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(in.Items) == 0 {
		missing = append(missing, "itens")
	}
	if len(missing) > 0 {
		return nil, domain.MissingFields(missing...)
	}
	if !accessKeyPattern.MatchString(in.AccessKey) {
		return nil, domain.NewValidationError("chaveNFe", "a chave de acesso deve ter 44 dígitos")
	}
	issued, err := parseIssueDate(in.IssuedAt)
	if err != nil {
		return nil, err
	}
	for i, line := range in.Items {
		if line.NCM == "" || line.Description == "" || line.Unit == "" || !line.Quantity.IsPositive() {
			return nil, domain.NewValidationError(fmt.Sprintf("itens[%d]", i+1), "ncm, descricao, unidade e quantidade > 0 são obrigatórios")
		}
	}

	return &entity.Invoice{
		AccessKey:      in.AccessKey,
		Number:         in.Number,
		IssuedAt:       issued,
		IssuerTaxID:    in.IssuerTaxID,
		IssuerName:     in.IssuerName,
		IssuerState:    in.IssuerState,
		RecipientTaxID: in.RecipientTaxID,
		RecipientName:  in.RecipientName,
		RecipientState: in.RecipientState,
		Status:         entity.StatusAvailable,
		BusinessUnit:   in.BusinessUnit,
	}, nil
}

func parseIssueDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, domain.NewValidationError("dataEmissao", "data inválida, use AAAA-MM-DD ou RFC3339")
}

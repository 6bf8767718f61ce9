// Lectura de NF-e (modelo 55) a partir del XML autorizado por la SEFAZ.
// Acepta tanto el documento nfeProc (NFe + protNFe) como el NFe suelto.

package nfe

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/reciclagem-api/internal/application/dto"
	"github.com/jhoicas/reciclagem-api/internal/domain"
)

// Party emisor o destinatario.
type Party struct {
	TaxID string
	Name  string
	State string
}

// Item línea det/prod.
type Item struct {
	NCM         string
	Description string
	Quantity    decimal.Decimal
	Unit        string
	CFOP        string
}

// Document datos de la NF-e necesarios para la importación.
type Document struct {
	AccessKey string
	Number    string
	IssuedAt  time.Time
	Issuer    Party
	Recipient Party
	Items     []Item
	// Digest SHA-256 (hex) del XML canonicalizado (C14N inclusive).
	Digest string
}

// Parser lee NF-e. Sin estado; el valor cero es usable.
type Parser struct{}

// NewParser crea el parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse extrae cabecera e ítems y calcula el digest canónico.
func (p *Parser) Parse(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.NewValidationError("xml", "XML vazio")
	}
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, domain.NewValidationError("xml", fmt.Sprintf("XML inválido: %v", err))
	}

	inf := doc.FindElement("//infNFe")
	if inf == nil {
		return nil, domain.NewValidationError("xml", "infNFe não encontrado")
	}

	out := &Document{AccessKey: accessKey(doc, inf)}
	if len(out.AccessKey) != 44 {
		return nil, domain.NewValidationError("chave_nfe", "chave de acesso ausente ou inválida")
	}

	out.Number = text(inf, "ide/nNF")
	if out.Number == "" {
		return nil, domain.NewValidationError("numero_nota", "nNF ausente")
	}
	issued, err := issueDate(inf)
	if err != nil {
		return nil, err
	}
	out.IssuedAt = issued

	out.Issuer = party(inf.FindElement("emit"), "enderEmit")
	out.Recipient = party(inf.FindElement("dest"), "enderDest")

	for i, det := range inf.FindElements("det") {
		prod := det.FindElement("prod")
		if prod == nil {
			return nil, domain.NewValidationError(fmt.Sprintf("det[%d]", i+1), "prod ausente")
		}
		item, err := parseItem(prod, i+1)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, item)
	}
	if len(out.Items) == 0 {
		return nil, domain.NewValidationError("itens", "a nota não possui itens")
	}

	digest, err := Digest(data)
	if err != nil {
		return nil, err
	}
	out.Digest = digest
	return out, nil
}

// ParseImport lee el XML y lo convierte en la petición de importación de la nota.
// Devuelve también el digest canónico.
func (p *Parser) ParseImport(data []byte, businessUnit string) (dto.ImportInvoiceRequest, string, error) {
	doc, err := p.Parse(data)
	if err != nil {
		return dto.ImportInvoiceRequest{}, "", err
	}
	return doc.ImportRequest(businessUnit), doc.Digest, nil
}

// ImportRequest convierte el documento en la petición de importación.
func (d *Document) ImportRequest(businessUnit string) dto.ImportInvoiceRequest {
	req := dto.ImportInvoiceRequest{
		AccessKey:      d.AccessKey,
		Number:         d.Number,
		IssuedAt:       d.IssuedAt.Format(time.RFC3339),
		IssuerTaxID:    d.Issuer.TaxID,
		IssuerName:     d.Issuer.Name,
		IssuerState:    d.Issuer.State,
		RecipientTaxID: d.Recipient.TaxID,
		RecipientName:  d.Recipient.Name,
		RecipientState: d.Recipient.State,
		BusinessUnit:   businessUnit,
		Items:          make([]dto.ImportInvoiceItemRequest, 0, len(d.Items)),
	}
	for _, it := range d.Items {
		req.Items = append(req.Items, dto.ImportInvoiceItemRequest{
			NCM:         it.NCM,
			Description: it.Description,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			CFOP:        it.CFOP,
		})
	}
	return req
}

// Digest canonicaliza el XML (C14N) y devuelve su SHA-256 en hex.
func Digest(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	dec.CharsetReader = charsetReader
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("nfe: canonicalizar XML: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// charsetReader las NF-e antiguas llegan en ISO-8859-1; el resto es UTF-8.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(charset) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	default:
		return input, nil
	}
}

func accessKey(doc *etree.Document, inf *etree.Element) string {
	if id := strings.TrimPrefix(inf.SelectAttrValue("Id", ""), "NFe"); id != "" {
		return id
	}
	if ch := doc.FindElement("//protNFe/infProt/chNFe"); ch != nil {
		return strings.TrimSpace(ch.Text())
	}
	return ""
}

func issueDate(inf *etree.Element) (time.Time, error) {
	if v := text(inf, "ide/dhEmi"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, domain.NewValidationError("data_emissao", "dhEmi inválido")
		}
		return t, nil
	}
	if v := text(inf, "ide/dEmi"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, domain.NewValidationError("data_emissao", "dEmi inválido")
		}
		return t, nil
	}
	return time.Time{}, domain.NewValidationError("data_emissao", "data de emissão ausente")
}

func party(el *etree.Element, addressTag string) Party {
	if el == nil {
		return Party{}
	}
	taxID := text(el, "CNPJ")
	if taxID == "" {
		taxID = text(el, "CPF")
	}
	return Party{
		TaxID: taxID,
		Name:  text(el, "xNome"),
		State: text(el, addressTag+"/UF"),
	}
}

func parseItem(prod *etree.Element, n int) (Item, error) {
	field := fmt.Sprintf("itens[%d]", n)
	item := Item{
		NCM:         text(prod, "NCM"),
		Description: text(prod, "xProd"),
		Unit:        text(prod, "uCom"),
		CFOP:        text(prod, "CFOP"),
	}
	if item.NCM == "" || item.Description == "" || item.Unit == "" {
		return Item{}, domain.NewValidationError(field, "NCM, xProd e uCom são obrigatórios")
	}
	qty, err := decimal.NewFromString(text(prod, "qCom"))
	if err != nil || !qty.IsPositive() {
		return Item{}, domain.NewValidationError(field, "qCom deve ser maior que zero")
	}
	item.Quantity = qty
	return item, nil
}

func text(el *etree.Element, path string) string {
	if found := el.FindElement(path); found != nil {
		return strings.TrimSpace(found.Text())
	}
	return ""
}

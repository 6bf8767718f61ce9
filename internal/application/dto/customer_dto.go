package dto

import "time"

// CustomerRequest body para POST /api/clients y PUT /api/clients/:id.
type CustomerRequest struct {
	CNPJ        string `json:"cnpj"`
	LegalName   string `json:"razao_social"`
	TradeName   string `json:"nome_fantasia,omitempty"`
	Address     string `json:"endereco,omitempty"`
	City        string `json:"cidade,omitempty"`
	State       string `json:"uf,omitempty"`
	ZipCode     string `json:"cep,omitempty"`
	Email       string `json:"email_contato,omitempty"`
	Phone       string `json:"telefone_contato,omitempty"`
	WhatsApp    string `json:"whatsapp_numero,omitempty"`
	ContactName string `json:"nome_contato,omitempty"`
	Active      *bool  `json:"ativo,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID           int64     `json:"id"`
	CNPJ         string    `json:"cnpj"`
	LegalName    string    `json:"razao_social"`
	TradeName    string    `json:"nome_fantasia"`
	Address      string    `json:"endereco"`
	City         string    `json:"cidade"`
	State        string    `json:"uf"`
	ZipCode      string    `json:"cep"`
	Email        string    `json:"email_contato"`
	Phone        string    `json:"telefone_contato"`
	WhatsApp     string    `json:"whatsapp_numero"`
	ContactName  string    `json:"nome_contato"`
	Active       bool      `json:"ativo"`
	RegisteredAt time.Time `json:"data_cadastro"`
	Materials    string    `json:"materiais_fornecidos,omitempty"`
}

// NCMRequest body para POST/PUT /api/ncm.
type NCMRequest struct {
	NCM      string `json:"ncm"`
	Material string `json:"material"`
}

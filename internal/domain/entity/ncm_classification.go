package entity

// NCMClassification asocia un código NCM (8 dígitos) a una categoría de material.
type NCMClassification struct {
	NCM      string `json:"ncm"`
	Material string `json:"material"`
}

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/reciclagem-api/internal/domain/inventory"
)

// headingMaterial posiciones NCM (4 dígitos) de resíduos recicláveis y su material.
var headingMaterial = map[string]string{
	"4707": "Papel",
	"3915": "Plástico",
	"4004": "Borracha",
	"7001": "Vidro",
	"7204": "Metal",
	"7404": "Metal",
	"7503": "Metal",
	"7602": "Metal",
	"7802": "Metal",
	"7902": "Metal",
}

// paperboardCodes subposiciones de 4707 que son papelão y no papel.
var paperboardCodes = map[string]bool{
	"47071000": true,
}

type ncmRow struct {
	code     string
	material string
}

// readTable lee la tabla NCM (Nomenclatura/Codigo) y se queda con los códigos de
// 8 dígitos cuya posición es de resíduo reciclável. Los códigos pueden venir con puntos.
func readTable(r io.Reader) ([]ncmRow, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("leer XML: %w", err)
	}

	seen := make(map[string]bool)
	var rows []ncmRow
	for _, el := range doc.FindElements("//Nomenclatura") {
		codeEl := el.FindElement("Codigo")
		if codeEl == nil {
			continue
		}
		code := strings.ReplaceAll(strings.TrimSpace(codeEl.Text()), ".", "")
		if !inventory.ValidNCM(code) || seen[code] {
			continue
		}
		material, ok := headingMaterial[code[:4]]
		if !ok {
			continue
		}
		if paperboardCodes[code] {
			material = "Papelão"
		}
		if m := strings.TrimSpace(el.SelectAttrValue("material", "")); m != "" {
			material = m
		}
		seen[code] = true
		rows = append(rows, ncmRow{code: code, material: material})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].code < rows[j].code })
	return rows, nil
}

// writeSeed escribe el INSERT idempotente. Las clasificaciones ya existentes no se tocan.
func writeSeed(w io.Writer, rows []ncmRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("ningún código NCM de material reciclable en la tabla")
	}
	var b strings.Builder
	b.WriteString("-- Classificação NCM -> material\n")
	b.WriteString("-- Generado por cmd/seed_ncm desde la tabla NCM\n\n")
	b.WriteString("INSERT INTO classificacao_ncm (ncm, material) VALUES\n")
	for i, r := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "    ('%s', '%s')%s\n", r.code, escapeSQL(r.material), sep)
	}
	b.WriteString("ON CONFLICT (ncm) DO NOTHING;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

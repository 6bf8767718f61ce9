package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const tabela = `<?xml version="1.0" encoding="UTF-8"?>
<TabelaNCM>
  <Nomenclatura><Codigo>4707.10.00</Codigo><Descricao>Papéis ou cartões kraft</Descricao></Nomenclatura>
  <Nomenclatura><Codigo>4707.90.00</Codigo><Descricao>Outros</Descricao></Nomenclatura>
  <Nomenclatura><Codigo>3915.10.00</Codigo><Descricao>De polímeros de etileno</Descricao></Nomenclatura>
  <Nomenclatura><Codigo>3915</Codigo><Descricao>Desperdícios de plásticos</Descricao></Nomenclatura>
  <Nomenclatura><Codigo>0101.21.00</Codigo><Descricao>Cavalos reprodutores</Descricao></Nomenclatura>
  <Nomenclatura material="Sucata d'aço"><Codigo>7204.41.00</Codigo></Nomenclatura>
  <Nomenclatura><Codigo>4707.90.00</Codigo></Nomenclatura>
</TabelaNCM>`

func TestReadTable_FiltraReciclables(t *testing.T) {
	rows, err := readTable(strings.NewReader(tabela))
	require.NoError(t, err)

	assert.Equal(t, []ncmRow{
		{code: "39151000", material: "Plástico"},
		{code: "47071000", material: "Papelão"},
		{code: "47079000", material: "Papel"},
		{code: "72044100", material: "Sucata d'aço"},
	}, rows, "sólo códigos de 8 dígitos de posiciones recicláveis, sin duplicados y ordenados")
}

func TestReadTable_ISO88591(t *testing.T) {
	xml := strings.Replace(tabela, `encoding="UTF-8"`, `encoding="ISO-8859-1"`, 1)
	latin, err := charmap.ISO8859_1.NewEncoder().String(xml)
	require.NoError(t, err)

	rows, err := readTable(strings.NewReader(latin))
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Sucata d'aço", rows[3].material, "el atributo material debe decodificarse desde latin1")
}

func TestWriteSeed(t *testing.T) {
	var buf bytes.Buffer
	err := writeSeed(&buf, []ncmRow{
		{code: "47079000", material: "Papel"},
		{code: "72044100", material: "Sucata d'aço"},
	})
	require.NoError(t, err)

	sql := buf.String()
	assert.Contains(t, sql, "('47079000', 'Papel'),\n")
	assert.Contains(t, sql, "('72044100', 'Sucata d''aço')\n", "comillas escapadas y sin coma final")
	assert.True(t, strings.HasSuffix(sql, "ON CONFLICT (ncm) DO NOTHING;\n"))
}

func TestWriteSeed_SinFilas(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeSeed(&buf, nil))
}

// seed_ncm genera la migración SQL que puebla classificacao_ncm a partir de la
// tabla NCM en XML (Nomenclatura/Codigo).
//
// Uso: go run ./cmd/seed_ncm [ruta/TabelaNCM.xml]
// Por defecto busca TabelaNCM.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/000003_seed_ncm_table.up.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	xmlPath := "TabelaNCM.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, err := readTable(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Tabla NCM: %v\n", err)
		os.Exit(1)
	}

	dir := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations")
	outPath := filepath.Join(dir, "000003_seed_ncm_table.up.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSeed(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	// down vacío: las clasificaciones pueden haberse editado después por la API
	down := filepath.Join(dir, "000003_seed_ncm_table.down.sql")
	if err := os.WriteFile(down, []byte("-- sin reversión\nSELECT 1;\n"), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Crear down: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generado %s: %d códigos NCM\n", outPath, len(rows))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

package postgres

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// SetBuilder arma la lista de asignaciones de un UPDATE a partir de pares (columna, valor).
// Los valores siempre viajan como parámetros posicionales; las columnas deben ser
// identificadores simples fijados en código.
type SetBuilder struct {
	parts []string
	args  []any
	next  int
	err   error
}

// NewSetBuilder crea un builder cuyo primer placeholder es $start.
func NewSetBuilder(start int) *SetBuilder {
	if start < 1 {
		start = 1
	}
	return &SetBuilder{next: start}
}

// Set agrega "column = $n" con value como argumento.
func (b *SetBuilder) Set(column string, value any) *SetBuilder {
	if !b.valid(column) {
		return b
	}
	b.parts = append(b.parts, fmt.Sprintf("%s = $%d", column, b.next))
	b.args = append(b.args, value)
	b.next++
	return b
}

// SetExpr agrega "column = expr" sin argumento (ej. NOW(), NULL).
func (b *SetBuilder) SetExpr(column, expr string) *SetBuilder {
	if !b.valid(column) {
		return b
	}
	b.parts = append(b.parts, fmt.Sprintf("%s = %s", column, expr))
	return b
}

func (b *SetBuilder) valid(column string) bool {
	if b.err != nil {
		return false
	}
	if !identifierRe.MatchString(column) {
		b.err = fmt.Errorf("set builder: coluna inválida %q", column)
		return false
	}
	return true
}

// Len cantidad de asignaciones acumuladas.
func (b *SetBuilder) Len() int { return len(b.parts) }

// NextPlaceholder índice del próximo parámetro libre (para el WHERE).
func (b *SetBuilder) NextPlaceholder() int { return b.next }

// Build devuelve "a = $1, b = $2" y los argumentos en orden.
func (b *SetBuilder) Build() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if len(b.parts) == 0 {
		return "", nil, fmt.Errorf("set builder: nenhuma coluna informada")
	}
	return strings.Join(b.parts, ", "), b.args, nil
}

package querybuilder

import (
	"strconv"
	"strings"
)

// Condition renders one predicate of a WHERE clause with numbered
// postgres placeholders.
type Condition interface {
	render(w *writer)
}

// writer accumulates SQL text and arguments, numbering placeholders.
type writer struct {
	buf  strings.Builder
	args []any
}

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.buf.WriteString("$")
	w.buf.WriteString(strconv.Itoa(len(w.args)))
}

// expr writes sql, replacing each ? with the next argument.
func (w *writer) expr(sql string, args []any) {
	next := 0
	for i := 0; i < len(sql); i++ {
		if sql[i] == '?' && next < len(args) {
			w.bind(args[next])
			next++
			continue
		}
		w.buf.WriteByte(sql[i])
	}
}

func (w *writer) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.buf.WriteString(" WHERE ")
		} else {
			w.buf.WriteString(" AND ")
		}
		c.render(w)
	}
}

func (w *writer) suffix(sql string) {
	if sql == "" {
		return
	}
	w.buf.WriteString(" ")
	w.buf.WriteString(sql)
}

type compare struct {
	column string
	op     string
	value  any
}

func (c compare) render(w *writer) {
	w.buf.WriteString(c.column)
	w.buf.WriteString(" ")
	w.buf.WriteString(c.op)
	w.buf.WriteString(" ")
	w.bind(c.value)
}

func Eq(column string, value any) Condition {
	return compare{column: column, op: "=", value: value}
}

func Gte(column string, value any) Condition {
	return compare{column: column, op: ">=", value: value}
}

func Lt(column string, value any) Condition {
	return compare{column: column, op: "<", value: value}
}

type inList struct {
	column string
	values []any
}

func In(column string, values []any) Condition {
	return inList{column: column, values: values}
}

func (c inList) render(w *writer) {
	if len(c.values) == 0 {
		w.buf.WriteString("1=0")
		return
	}
	w.buf.WriteString(c.column)
	w.buf.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			w.buf.WriteString(", ")
		}
		w.bind(v)
	}
	w.buf.WriteString(")")
}

type anyOf struct {
	column string
	value  any
}

// Contains matches rows whose array column holds value.
func Contains(arrayColumn string, value any) Condition {
	return anyOf{column: arrayColumn, value: value}
}

func (c anyOf) render(w *writer) {
	w.bind(c.value)
	w.buf.WriteString(" = ANY(")
	w.buf.WriteString(c.column)
	w.buf.WriteString(")")
}

type isNull struct {
	column string
	not    bool
}

func IsNull(column string) Condition {
	return isNull{column: column}
}

func IsNotNull(column string) Condition {
	return isNull{column: column, not: true}
}

func (c isNull) render(w *writer) {
	w.buf.WriteString(c.column)
	if c.not {
		w.buf.WriteString(" IS NOT NULL")
		return
	}
	w.buf.WriteString(" IS NULL")
}

type raw struct {
	sql  string
	args []any
}

// Expr embeds a raw predicate; each ? is bound to the next argument.
func Expr(sql string, args ...any) Condition {
	return raw{sql: sql, args: args}
}

func (c raw) render(w *writer) {
	w.expr(c.sql, c.args)
}

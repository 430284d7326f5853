package querybuilder

import (
	"fmt"
	"sort"
	"strings"
)

// UpdateData maps column names to their new values
type UpdateData map[string]interface{}

// QueryBuilder composes parameterized UPDATE statements from dynamic column
// sets. Clauses passed to Where/And use `?` placeholders; Build rewrites
// them to positional Postgres placeholders.
type QueryBuilder interface {
	Update(table string, data UpdateData) QueryBuilder
	Where(clause string, args ...interface{}) QueryBuilder
	And(clause string, args ...interface{}) QueryBuilder
	Build() (string, []interface{})
}

type condition struct {
	clause string
	args   []interface{}
}

type queryBuilder struct {
	schema     string
	table      string
	updateData UpdateData
	conditions []condition
}

func NewQueryBuilder(schema string) QueryBuilder {
	return &queryBuilder{schema: schema}
}

func (q *queryBuilder) Update(table string, data UpdateData) QueryBuilder {
	q.table = table
	q.updateData = data
	return q
}

func (q *queryBuilder) Where(clause string, args ...interface{}) QueryBuilder {
	q.conditions = append(q.conditions, condition{clause: clause, args: args})
	return q
}

func (q *queryBuilder) And(clause string, args ...interface{}) QueryBuilder {
	return q.Where(clause, args...)
}

func (q *queryBuilder) Build() (string, []interface{}) {
	var sb strings.Builder
	args := make([]interface{}, 0, len(q.updateData)+len(q.conditions))
	placeholder := 0
	next := func() string {
		placeholder++
		return fmt.Sprintf("$%d", placeholder)
	}

	sb.WriteString("UPDATE ")
	sb.WriteString(q.qualifiedTable())
	sb.WriteString(" SET ")

	// Columns are sorted so the generated SQL is deterministic
	cols := make([]string, 0, len(q.updateData))
	for col := range q.updateData {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	for i, col := range cols {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(col)
		sb.WriteString(" = ")
		sb.WriteString(next())
		args = append(args, q.updateData[col])
	}

	for i, cond := range q.conditions {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		clause := cond.clause
		for strings.Contains(clause, "?") {
			clause = strings.Replace(clause, "?", next(), 1)
		}
		sb.WriteString(clause)
		args = append(args, cond.args...)
	}

	return sb.String(), args
}

func (q *queryBuilder) qualifiedTable() string {
	if q.schema == "" {
		return q.table
	}
	return q.schema + "." + q.table
}

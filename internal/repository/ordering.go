package repository

import (
	"fmt"
	"strings"

	"github.com/BrahimElhajji/alx-backend-graphql-crm/internal/apperr"
)

// OrderClause is one resolved ordering key.
type OrderClause struct {
	Column string
	Desc   bool
}

// ParseOrdering resolves a list of API ordering keys against a per-entity
// whitelist. A leading "-" requests descending order. Unknown keys are
// rejected rather than passed through to SQL.
func ParseOrdering(keys []string, allowed map[string]string) ([]OrderClause, error) {
	clauses := make([]OrderClause, 0, len(keys))
	for _, key := range keys {
		desc := false
		if strings.HasPrefix(key, "-") {
			desc = true
			key = key[1:]
		}

		column, ok := allowed[key]
		if !ok {
			return nil, apperr.InvalidOrderingErr.WithMsg(fmt.Sprintf("unknown ordering key: %q", key))
		}

		clauses = append(clauses, OrderClause{Column: column, Desc: desc})
	}

	return clauses, nil
}

// orderBySQL renders an ORDER BY clause, falling back to the given default
// column when no keys were requested.
func orderBySQL(clauses []OrderClause, defaultColumn string) string {
	if len(clauses) == 0 {
		return " ORDER BY " + defaultColumn
	}

	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		dir := "ASC"
		if c.Desc {
			dir = "DESC"
		}
		parts = append(parts, c.Column+" "+dir)
	}

	return " ORDER BY " + strings.Join(parts, ", ")
}

// condBuilder accumulates WHERE conditions with positional arguments.
type condBuilder struct {
	conds []string
	args  []any
}

// add appends a condition whose format string contains one %d placeholder for
// the positional argument index.
func (b *condBuilder) add(format string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(format, len(b.args)))
}

func (b *condBuilder) whereSQL() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

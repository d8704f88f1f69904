package db

import (
	"strconv"
	"strings"

	"github.com/lib/pq"
)

// Args accumulates positional query arguments and hands out $n placeholders.
type Args struct {
	values []any
}

// Add appends v and returns its placeholder.
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	return "$" + strconv.Itoa(len(a.values))
}

// Values returns the accumulated arguments.
func (a *Args) Values() []any { return a.values }

// Predicate is a boolean SQL condition. Column names are trusted identifiers chosen by
// repositories; user input only ever travels through Args.
type Predicate interface {
	Render(a *Args) string
}

type predicateFunc func(a *Args) string

func (f predicateFunc) Render(a *Args) string { return f(a) }

// Eq matches col = v.
func Eq(col string, v any) Predicate {
	return predicateFunc(func(a *Args) string { return col + " = " + a.Add(v) })
}

// Gte matches col >= v.
func Gte(col string, v any) Predicate {
	return predicateFunc(func(a *Args) string { return col + " >= " + a.Add(v) })
}

// Lte matches col <= v.
func Lte(col string, v any) Predicate {
	return predicateFunc(func(a *Args) string { return col + " <= " + a.Add(v) })
}

// Lt matches col < v.
func Lt(col string, v any) Predicate {
	return predicateFunc(func(a *Args) string { return col + " < " + a.Add(v) })
}

// Ne matches col <> v.
func Ne(col string, v any) Predicate {
	return predicateFunc(func(a *Args) string { return col + " <> " + a.Add(v) })
}

// IsTrue matches a boolean column that is TRUE.
func IsTrue(col string) Predicate {
	return Raw(col + " = TRUE")
}

// NonEmpty matches a text column that is neither NULL nor empty.
func NonEmpty(col string) Predicate {
	return Raw("COALESCE(" + col + ", '') <> ''")
}

// NonEmptyArray matches an array column with at least one element.
func NonEmptyArray(col string) Predicate {
	return Raw("COALESCE(cardinality(" + col + "), 0) > 0")
}

// Raw embeds a constant condition without arguments.
func Raw(sql string) Predicate {
	return predicateFunc(func(*Args) string { return sql })
}

// ContainsAny matches rows where any of cols contains text, case-insensitively.
func ContainsAny(text string, cols ...string) Predicate {
	return predicateFunc(func(a *Args) string {
		ph := a.Add("%" + EscapeLike(text) + "%")
		parts := make([]string, len(cols))
		for i, c := range cols {
			parts[i] = c + " ILIKE " + ph + ` ESCAPE '\'`
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	})
}

// HasPrefix matches rows where col starts with text, case-insensitively.
func HasPrefix(col, text string) Predicate {
	return predicateFunc(func(a *Args) string {
		return col + " ILIKE " + a.Add(EscapeLike(text)+"%") + ` ESCAPE '\'`
	})
}

// Overlaps matches a text[] column sharing at least one element with vals, case-insensitively.
func Overlaps(col string, vals []string) Predicate {
	lowered := make([]string, len(vals))
	for i, v := range vals {
		lowered[i] = strings.ToLower(v)
	}
	return predicateFunc(func(a *Args) string {
		return "lower(" + col + "::text)::text[] && " + a.Add(pq.Array(lowered))
	})
}

// Boost renders base plus weight when col equals any of vals. It is meant for ORDER BY.
func Boost(base, col string, vals []string, weight float64) Predicate {
	return predicateFunc(func(a *Args) string {
		return "(" + base + " + CASE WHEN " + col + " = ANY(" + a.Add(pq.Array(vals)) + ")" +
			" THEN " + a.Add(weight) + "::float8 ELSE 0 END)"
	})
}

// And joins predicates with AND.
func And(preds ...Predicate) Predicate {
	return join(" AND ", preds)
}

// Or joins predicates with OR.
func Or(preds ...Predicate) Predicate {
	return join(" OR ", preds)
}

func join(sep string, preds []Predicate) Predicate {
	return predicateFunc(func(a *Args) string {
		parts := make([]string, len(preds))
		for i, p := range preds {
			parts[i] = p.Render(a)
		}
		return "(" + strings.Join(parts, sep) + ")"
	})
}

// EscapeLike escapes LIKE wildcards so user input matches literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

package db

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/talentbridge/internal/domain"
)

// Query is a rendered SQL statement with its positional arguments.
type Query struct {
	SQL  string
	Args []any
}

// Order is one ORDER BY term. Expr, when set, replaces Column and may bind arguments.
type Order struct {
	Column string
	Expr   Predicate
	Desc   bool
}

// SelectBuilder is a fluent builder for bounded SELECT statements.
type SelectBuilder struct {
	columns string
	from    string
	where   []Predicate
	orderBy []Order
	limit   int
	offset  int
	paged   bool
}

// Select starts a SELECT of columns from a table expression.
func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: strings.Join(columns, ", ")}
}

// From sets the table expression, joins included.
func (b *SelectBuilder) From(from string) *SelectBuilder {
	b.from = from
	return b
}

// Where appends predicates to the conjunction.
func (b *SelectBuilder) Where(preds ...Predicate) *SelectBuilder {
	b.where = append(b.where, preds...)
	return b
}

// OrderBy appends ORDER BY terms.
func (b *SelectBuilder) OrderBy(terms ...Order) *SelectBuilder {
	b.orderBy = append(b.orderBy, terms...)
	return b
}

// Page sets LIMIT and OFFSET. Build fails on a non-positive limit or a negative offset;
// a builder without Page renders no LIMIT and must be bounded by its predicates.
func (b *SelectBuilder) Page(limit, offset int) *SelectBuilder {
	b.limit = limit
	b.offset = offset
	b.paged = true
	return b
}

// Predicates returns the accumulated conjunction.
func (b *SelectBuilder) Predicates() []Predicate { return b.where }

// Build renders the SELECT. Fails with domain.ErrUnboundedQuery when no predicate is set.
func (b *SelectBuilder) Build() (Query, error) {
	if err := b.validate(); err != nil {
		return Query{}, err
	}

	var args Args
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.columns)
	sb.WriteString(" FROM ")
	sb.WriteString(b.from)
	sb.WriteString(" WHERE ")
	sb.WriteString(renderConjunction(&args, b.where))

	if len(b.orderBy) > 0 {
		terms := make([]string, len(b.orderBy))
		for i, o := range b.orderBy {
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			col := o.Column
			if o.Expr != nil {
				col = o.Expr.Render(&args)
			}
			terms[i] = col + " " + dir
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(terms, ", "))
	}
	if b.paged {
		sb.WriteString(" LIMIT ")
		sb.WriteString(args.Add(b.limit))
		if b.offset > 0 {
			sb.WriteString(" OFFSET ")
			sb.WriteString(args.Add(b.offset))
		}
	}

	return Query{SQL: sb.String(), Args: args.Values()}, nil
}

// BuildCount renders SELECT COUNT(*) over the same table expression and predicates.
func (b *SelectBuilder) BuildCount() (Query, error) {
	if err := b.validate(); err != nil {
		return Query{}, err
	}
	var args Args
	sql := "SELECT COUNT(*) FROM " + b.from + " WHERE " + renderConjunction(&args, b.where)
	return Query{SQL: sql, Args: args.Values()}, nil
}

func (b *SelectBuilder) validate() error {
	if b.from == "" {
		return &Error{Op: OpBuild, Err: fmt.Errorf("table expression is required")}
	}
	if b.columns == "" {
		return &Error{Op: OpBuild, Err: fmt.Errorf("columns are required")}
	}
	if len(b.where) == 0 {
		return &Error{Op: OpBuild, Err: domain.ErrUnboundedQuery}
	}
	if b.paged && (b.limit <= 0 || b.offset < 0) {
		return &Error{Op: OpBuild, Err: fmt.Errorf("invalid page limit=%d offset=%d", b.limit, b.offset)}
	}
	return nil
}

func renderConjunction(args *Args, preds []Predicate) string {
	parts := make([]string, len(preds))
	for i, p := range preds {
		parts[i] = p.Render(args)
	}
	return strings.Join(parts, " AND ")
}

// Union renders queries joined with UNION ALL, renumbering placeholders, followed by a
// trailing clause such as ORDER BY/LIMIT. Each part must be built with Build.
func Union(parts []Query, trailer string, trailerArgs ...any) Query {
	var args []any
	sqls := make([]string, len(parts))
	for i, p := range parts {
		sqls[i] = "(" + shiftPlaceholders(p.SQL, len(args)) + ")"
		args = append(args, p.Args...)
	}
	sql := strings.Join(sqls, " UNION ALL ")
	if trailer != "" {
		sql += " " + shiftPlaceholders(trailer, len(args))
		args = append(args, trailerArgs...)
	}
	return Query{SQL: sql, Args: args}
}

// shiftPlaceholders adds by to every $n placeholder in sql.
func shiftPlaceholders(sql string, by int) string {
	if by == 0 {
		return sql
	}
	var sb strings.Builder
	for i := 0; i < len(sql); i++ {
		if sql[i] != '$' {
			sb.WriteByte(sql[i])
			continue
		}
		j := i + 1
		for j < len(sql) && sql[j] >= '0' && sql[j] <= '9' {
			j++
		}
		if j == i+1 {
			sb.WriteByte('$')
			continue
		}
		n, _ := strconv.Atoi(sql[i+1 : j])
		sb.WriteString("$" + strconv.Itoa(n+by))
		i = j - 1
	}
	return sb.String()
}

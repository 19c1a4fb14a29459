package persistence

import (
	"fmt"
	"strings"
	"time"

	"github.com/gestor/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// condition is one rendered WHERE fragment with its bound arguments. Values
// are always bound, never interpolated, so filter input cannot alter the
// query shape.
type condition struct {
	expr string
	args []interface{}
}

// ListQuery accumulates the predicates of a filtered listing and renders
// them twice: once for the data page and once for the total count, so both
// always agree. The tenant predicate is installed at construction, rendered
// first, and cannot be removed or overridden by later predicates.
type ListQuery struct {
	tenantID   uuid.UUID
	conditions []condition
	sortExpr   string
	page       int
	pageSize   int
}

// NewListQuery starts a listing scoped to one tenant. Refuses to build an
// unscoped query: a zero tenant is an integration bug upstream.
func NewListQuery(tenantID uuid.UUID) (*ListQuery, error) {
	if tenantID == uuid.Nil {
		return nil, shared.ErrMissingTenant
	}
	return &ListQuery{tenantID: tenantID}, nil
}

// Contains adds a case-insensitive substring match. Empty values add
// nothing.
func (q *ListQuery) Contains(column, value string) *ListQuery {
	if value == "" {
		return q
	}
	q.conditions = append(q.conditions, condition{
		expr: column + " ILIKE ?",
		args: []interface{}{"%" + value + "%"},
	})
	return q
}

// Equals adds an exact match. Empty values add nothing.
func (q *ListQuery) Equals(column, value string) *ListQuery {
	if value == "" {
		return q
	}
	q.conditions = append(q.conditions, condition{
		expr: column + " = ?",
		args: []interface{}{value},
	})
	return q
}

// MatchesAny adds an exact match against any of the given columns, joined
// with OR inside one bracketed group. Used for document lookup where the
// submitted value may live in any of the family's document columns.
func (q *ListQuery) MatchesAny(value string, columns ...string) *ListQuery {
	if value == "" || len(columns) == 0 {
		return q
	}
	exprs := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		exprs[i] = col + " = ?"
		args[i] = value
	}
	q.conditions = append(q.conditions, condition{
		expr: "(" + strings.Join(exprs, " OR ") + ")",
		args: args,
	})
	return q
}

// CreatedBetween bounds created_at inclusively. The range only applies when
// both bounds are present; a lone bound is ignored.
func (q *ListQuery) CreatedBetween(start, end *time.Time) *ListQuery {
	if start == nil || end == nil {
		return q
	}
	q.conditions = append(q.conditions, condition{
		expr: "created_at >= ? AND created_at <= ?",
		args: []interface{}{*start, *end},
	})
	return q
}

// Sort sets the ordering from caller input validated against an allow-list.
// A trailing created_at DESC, id ASC tie-break keeps page boundaries stable
// when the primary key values repeat.
func (q *ListQuery) Sort(field, dir string, allowed map[string]bool, defaultField string) *ListQuery {
	sortField := ValidateSortField(field, allowed, defaultField)
	sortDir := ValidateSortOrder(dir)
	switch sortField {
	case "created_at":
		q.sortExpr = fmt.Sprintf("created_at %s, id ASC", sortDir)
	case "id":
		q.sortExpr = fmt.Sprintf("id %s", sortDir)
	default:
		q.sortExpr = fmt.Sprintf("%s %s, created_at DESC, id ASC", sortField, sortDir)
	}
	return q
}

// Paginate sets the page window. Non-positive values leave the listing
// unpaginated.
func (q *ListQuery) Paginate(page, pageSize int) *ListQuery {
	q.page = page
	q.pageSize = pageSize
	return q
}

// Data renders the full listing query: tenant predicate first, accumulated
// predicates, ordering and the page window.
func (q *ListQuery) Data(db *gorm.DB) *gorm.DB {
	out := q.scope(db)
	if q.sortExpr != "" {
		out = out.Order(q.sortExpr)
	} else {
		out = out.Order("created_at DESC, id ASC")
	}
	if q.page > 0 && q.pageSize > 0 {
		out = out.Offset((q.page - 1) * q.pageSize).Limit(q.pageSize)
	}
	return out
}

// Count renders the same predicates without ordering or pagination so the
// reported total always matches the data query.
func (q *ListQuery) Count(db *gorm.DB) *gorm.DB {
	return q.scope(db)
}

func (q *ListQuery) scope(db *gorm.DB) *gorm.DB {
	out := db.Where("tenant_id = ?", q.tenantID)
	for _, c := range q.conditions {
		out = out.Where(c.expr, c.args...)
	}
	return out
}

// documentPredicate renders the OR-group used to look a partner up by any
// of its document columns. Each column is compared in the form it is
// stored in: cpf and cnpj digits-only, foreign_doc verbatim. A column whose
// form of the input comes out empty is left out of the group entirely so it
// can never match rows that simply have no document of that kind.
func documentPredicate(document string) (string, []interface{}) {
	digits := shared.NormalizeDocument(document)
	raw := strings.TrimSpace(document)

	var exprs []string
	var args []interface{}
	if digits != "" {
		exprs = append(exprs, "cpf = ?", "cnpj = ?")
		args = append(args, digits, digits)
	}
	if raw != "" {
		exprs = append(exprs, "foreign_doc = ?")
		args = append(args, raw)
	}
	if len(exprs) == 0 {
		return "", nil
	}
	return "(" + strings.Join(exprs, " OR ") + ")", args
}

// MatchesDocument adds the partner document OR-group. Empty input adds
// nothing.
func (q *ListQuery) MatchesDocument(document string) *ListQuery {
	expr, args := documentPredicate(document)
	if expr == "" {
		return q
	}
	q.conditions = append(q.conditions, condition{expr: expr, args: args})
	return q
}

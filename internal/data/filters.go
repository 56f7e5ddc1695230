package data

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

const (
	maxPage     = 10_000_000
	maxPageSize = 100
)

// Filters is the sort key and paging window of a listing request. Sort must be
// one of SortSafeList; a leading "-" sorts descending.
type Filters struct {
	Page         int
	PageSize     int
	Sort         string
	SortSafeList []string
	PaginationMeta
}

type PaginationMeta struct {
	FirstPage    int `json:"first_page,omitempty"`
	LastPage     int `json:"last_page,omitempty"`
	TotalRecords int `json:"total_records,omitempty"`
	PageSize     int `json:"page_size,omitempty"`
	CurrentPage  int `json:"current_page,omitempty"`
}

func (f *Filters) ValidateFilters(v *Validator) {
	v.Check(f.Page >= 1 && f.Page <= maxPage, "page", fmt.Sprintf("must be between 1 and %d", maxPage))
	v.Check(f.PageSize >= 1 && f.PageSize <= maxPageSize, "page_size", fmt.Sprintf("must be between 1 and %d", maxPageSize))
	f.ValidateSort(v)
}

// ValidateSort only checks the sort key, for listings that are not paginated.
func (f *Filters) ValidateSort(v *Validator) {
	v.Check(In(f.Sort, f.SortSafeList...), "sort", "invalid sort value")
}

// orderBy sorts q on the requested column of the table aliased alias. Rows
// that tie on it keep a stable order by id.
func (f Filters) orderBy(q *bun.SelectQuery, alias string) *bun.SelectQuery {
	if !In(f.Sort, f.SortSafeList...) {
		panic("unprocessable sort string: " + f.Sort)
	}
	column, desc := strings.CutPrefix(f.Sort, "-")
	direction := "ASC"
	if desc {
		direction = "DESC"
	}
	q = q.OrderExpr("?.? "+direction, bun.Ident(alias), bun.Ident(column))
	if column != "id" {
		q = q.OrderExpr("?.id ASC", bun.Ident(alias))
	}
	return q
}

func (f Filters) limit() int {
	return f.PageSize
}

func (f Filters) offset() int {
	return (f.Page - 1) * f.PageSize
}

// PaginationMetaData fills in and returns the paging metadata for a listing
// that matched totalRecords rows in total.
func (f *Filters) PaginationMetaData(ctx context.Context, totalRecords int) PaginationMeta {
	_, span := otel.Tracer("paginationMetaData.tracer").Start(ctx, "paginationMetaData.span")
	defer span.End()
	if totalRecords == 0 {
		return PaginationMeta{}
	}
	f.PaginationMeta = PaginationMeta{
		FirstPage:    1,
		CurrentPage:  f.Page,
		LastPage:     (totalRecords + f.PageSize - 1) / f.PageSize,
		TotalRecords: totalRecords,
		PageSize:     f.PageSize,
	}
	return f.PaginationMeta
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern, escaped with '\', that matches s
// literally anywhere in a value.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

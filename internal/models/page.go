package models

import "time"

type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

// PageRequest is the pagination contract shared by the query repository and
// the reconciler's scan. Page numbering starts at 1.
type PageRequest struct {
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
	Sort     string    `json:"sort"`
	Order    SortOrder `json:"order"`
}

func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 50
	}
	if p.Sort == "" {
		p.Sort = "created_at"
	}
	if p.Order != OrderDesc {
		p.Order = OrderAsc
	}
	return p
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Page is one page of results plus the totals needed to iterate further.
type Page[T any] struct {
	Data      []T `json:"data"`
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageTotal int `json:"pageTotal"`
	Total     int `json:"total"`
}

func NewPage[T any](data []T, req PageRequest, total int) Page[T] {
	pageTotal := 0
	if req.PageSize > 0 {
		pageTotal = (total + req.PageSize - 1) / req.PageSize
	}
	return Page[T]{
		Data:      data,
		Page:      req.Page,
		PageSize:  req.PageSize,
		PageTotal: pageTotal,
		Total:     total,
	}
}

// OperationFilter narrows an operation scan. Zero values mean "any".
type OperationFilter struct {
	State           OperationState
	AnalysisTag     AnalysisTag
	WalletAccountID string
	CurrencyID      string
	CreatedBefore   time.Time
}

// Package repository provides one storage interface for every entity and an
// implementation per database backend.
package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate record")
	ErrUnboundedQuery = errors.New("filter has no conditions")
)

// Entity is a persisted record. TableName doubles as the Mongo collection name.
type Entity interface {
	TableName() string
	EntityID() string
}

// Repository is the backend-neutral data access contract. Update replaces the
// whole record (last write wins) and returns ErrNotFound when the id is absent.
type Repository[T Entity] interface {
	FindByID(ctx context.Context, id string) (T, error)
	FindOne(ctx context.Context, filter Filter) (T, error)
	FindMany(ctx context.Context, filter Filter) ([]T, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Insert(ctx context.Context, entity T) error
	Update(ctx context.Context, entity T) error
	Delete(ctx context.Context, id string) error
	// DeleteMany removes every record matching filter and returns how many
	// were removed. A filter without conditions is rejected.
	DeleteMany(ctx context.Context, filter Filter) (int64, error)
}

type Op int

const (
	OpEq Op = iota
	OpGte
	OpLt
)

type Condition struct {
	Field string
	Op    Op
	Value any
}

func Eq(field string, value any) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

func Gte(field string, value any) Condition {
	return Condition{Field: field, Op: OpGte, Value: value}
}

func Lt(field string, value any) Condition {
	return Condition{Field: field, Op: OpLt, Value: value}
}

// Filter selects records by snake_case field names. A zero Filter matches
// everything in storage order.
type Filter struct {
	Conditions []Condition
	SortBy     string
	Desc       bool
	Limit      int
}

func Where(conds ...Condition) Filter {
	return Filter{Conditions: conds}
}

func (f Filter) OrderBy(field string, desc bool) Filter {
	f.SortBy = field
	f.Desc = desc
	return f
}

func (f Filter) Take(n int) Filter {
	f.Limit = n
	return f
}

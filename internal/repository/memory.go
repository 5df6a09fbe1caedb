package repository

import (
	"cmp"
	"context"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepository keeps entities in process memory. Fields are addressed by
// their bson tag names so filters behave like the Mongo backend. Entities are
// deep-copied on the way in and out, so callers never share slices or maps
// with the stored records.
type MemoryRepository[T Entity] struct {
	mu     sync.RWMutex
	items  map[string]T
	order  []string
	unique []string
}

// NewMemoryRepository returns an empty repository. uniqueFields are enforced
// on Insert and Update in addition to the id.
func NewMemoryRepository[T Entity](uniqueFields ...string) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		items:  make(map[string]T),
		unique: uniqueFields,
	}
}

func (r *MemoryRepository[T]) FindByID(ctx context.Context, id string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return item, ErrNotFound
	}
	return clone(item), nil
}

func (r *MemoryRepository[T]) FindOne(ctx context.Context, filter Filter) (T, error) {
	filter.Limit = 1
	items, err := r.FindMany(ctx, filter)
	if err != nil || len(items) == 0 {
		var zero T
		return zero, ErrNotFound
	}
	return items[0], nil
}

func (r *MemoryRepository[T]) FindMany(ctx context.Context, filter Filter) ([]T, error) {
	r.mu.RLock()
	out := []T{}
	for _, id := range r.order {
		item := r.items[id]
		if matches(item, filter.Conditions) {
			out = append(out, clone(item))
		}
	}
	r.mu.RUnlock()

	if filter.SortBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			a, _ := fieldValue(out[i], filter.SortBy)
			b, _ := fieldValue(out[j], filter.SortBy)
			c, _ := compareValues(a, b)
			if filter.Desc {
				return c > 0
			}
			return c < 0
		})
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *MemoryRepository[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	filter.SortBy, filter.Limit = "", 0
	items, err := r.FindMany(ctx, filter)
	return int64(len(items)), err
}

func (r *MemoryRepository[T]) Insert(ctx context.Context, entity T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := entity.EntityID()
	if _, exists := r.items[id]; exists {
		return ErrDuplicate
	}
	if r.conflicts(entity) {
		return ErrDuplicate
	}
	r.items[id] = clone(entity)
	r.order = append(r.order, id)
	return nil
}

func (r *MemoryRepository[T]) Update(ctx context.Context, entity T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := entity.EntityID()
	if _, exists := r.items[id]; !exists {
		return ErrNotFound
	}
	if r.conflicts(entity) {
		return ErrDuplicate
	}
	r.items[id] = clone(entity)
	return nil
}

func (r *MemoryRepository[T]) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return ErrNotFound
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository[T]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	if len(filter.Conditions) == 0 {
		return 0, ErrUnboundedQuery
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.order[:0]
	var n int64
	for _, id := range r.order {
		if matches(r.items[id], filter.Conditions) {
			delete(r.items, id)
			n++
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return n, nil
}

// conflicts reports whether another record shares a unique field value.
// Callers hold the write lock.
func (r *MemoryRepository[T]) conflicts(entity T) bool {
	for _, field := range r.unique {
		want, _ := fieldValue(entity, field)
		for id, other := range r.items {
			if id == entity.EntityID() {
				continue
			}
			got, _ := fieldValue(other, field)
			if c, ok := compareValues(got, want); ok && c == 0 {
				return true
			}
		}
	}
	return false
}

func clone[T any](v T) T {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return v
	}
	return deepCopy(rv).Interface().(T)
}

// deepCopy copies slices, maps and pointers reachable through exported
// fields. Unexported state (time.Time internals) is copied by value.
func deepCopy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(deepCopy(v.Index(i)))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), deepCopy(iter.Value()))
		}
		return out
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(deepCopy(v.Elem()))
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < v.NumField(); i++ {
			if f := out.Field(i); f.CanSet() {
				f.Set(deepCopy(v.Field(i)))
			}
		}
		return out
	default:
		return v
	}
}

func matches(item any, conds []Condition) bool {
	for _, cond := range conds {
		got, ok := fieldValue(item, cond.Field)
		if !ok {
			return false
		}
		c, comparable := compareValues(got, cond.Value)
		if !comparable {
			return false
		}
		switch cond.Op {
		case OpGte:
			if c < 0 {
				return false
			}
		case OpLt:
			if c >= 0 {
				return false
			}
		default:
			if c != 0 {
				return false
			}
		}
	}
	return true
}

func fieldValue(item any, field string) (any, bool) {
	rv := reflect.Indirect(reflect.ValueOf(item))
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name, _, _ := strings.Cut(rt.Field(i).Tag.Get("bson"), ",")
		if name != field {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				return nil, true
			}
			fv = fv.Elem()
		}
		return fv.Interface(), true
	}
	return nil, false
}

func compareValues(a, b any) (int, bool) {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return 0, true
		}
		if a == nil {
			return -1, true
		}
		return 1, true
	}

	switch x := a.(type) {
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case bool:
		y, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case x == y:
			return 0, true
		case !x:
			return -1, true
		default:
			return 1, true
		}
	}

	xf, xok := toFloat(a)
	yf, yok := toFloat(b)
	if !xok || !yok {
		return 0, false
	}
	return cmp.Compare(xf, yf), true
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

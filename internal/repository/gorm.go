package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository stores entities in a SQL table through gorm.
type GormRepository[T Entity] struct {
	db *gorm.DB
}

func NewGormRepository[T Entity](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db}
}

func (r *GormRepository[T]) FindByID(ctx context.Context, id string) (T, error) {
	return r.FindOne(ctx, Where(Eq("id", id)))
}

func (r *GormRepository[T]) FindOne(ctx context.Context, filter Filter) (T, error) {
	var out T
	err := r.query(ctx, filter).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return out, ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("find %s: %w", out.TableName(), err)
	}
	return out, nil
}

func (r *GormRepository[T]) FindMany(ctx context.Context, filter Filter) ([]T, error) {
	out := []T{}
	if err := r.query(ctx, filter).Find(&out).Error; err != nil {
		var zero T
		return nil, fmt.Errorf("list %s: %w", zero.TableName(), err)
	}
	return out, nil
}

func (r *GormRepository[T]) Count(ctx context.Context, filter Filter) (int64, error) {
	var n int64
	filter.SortBy, filter.Limit = "", 0
	if err := r.query(ctx, filter).Count(&n).Error; err != nil {
		var zero T
		return 0, fmt.Errorf("count %s: %w", zero.TableName(), err)
	}
	return n, nil
}

func (r *GormRepository[T]) Insert(ctx context.Context, entity T) error {
	err := r.db.WithContext(ctx).Create(&entity).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", entity.TableName(), err)
	}
	return nil
}

func (r *GormRepository[T]) Update(ctx context.Context, entity T) error {
	res := r.db.WithContext(ctx).Model(&entity).Select("*").Updates(&entity)
	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	if res.Error != nil {
		return fmt.Errorf("update %s: %w", entity.TableName(), res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository[T]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: "id"}, Value: id}).Delete(new(T))
	if res.Error != nil {
		var zero T
		return fmt.Errorf("delete %s: %w", zero.TableName(), res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository[T]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	if len(filter.Conditions) == 0 {
		return 0, ErrUnboundedQuery
	}
	res := where(r.db.WithContext(ctx), filter.Conditions).Delete(new(T))
	if res.Error != nil {
		var zero T
		return 0, fmt.Errorf("delete %s: %w", zero.TableName(), res.Error)
	}
	return res.RowsAffected, nil
}

func where(q *gorm.DB, conds []Condition) *gorm.DB {
	for _, c := range conds {
		col := clause.Column{Name: c.Field}
		switch c.Op {
		case OpGte:
			q = q.Where(clause.Gte{Column: col, Value: c.Value})
		case OpLt:
			q = q.Where(clause.Lt{Column: col, Value: c.Value})
		default:
			q = q.Where(clause.Eq{Column: col, Value: c.Value})
		}
	}
	return q
}

func (r *GormRepository[T]) query(ctx context.Context, filter Filter) *gorm.DB {
	q := where(r.db.WithContext(ctx).Model(new(T)), filter.Conditions)
	if filter.SortBy != "" {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: filter.SortBy}, Desc: filter.Desc})
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	return q
}

// Package store provides generic single-table CRUD access over GORM.
package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no row matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("unique constraint violated")
)

// Repository performs one logical operation per call against the table backing T.
type Repository[T any] struct {
	db *gorm.DB
}

// NewRepository binds a repository to db. Pass a transaction handle to scope it to that transaction.
func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// ParseID converts a path identifier into a primary key. Anything that is not a
// positive integer cannot name a row, so it maps to ErrNotFound.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrNotFound
	}
	return uint(id), nil
}

func (r *Repository[T]) Create(ctx context.Context, record *T) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return translate("create", err)
	}
	return nil
}

func (r *Repository[T]) Get(ctx context.Context, id uint) (*T, error) {
	var record T
	if err := r.db.WithContext(ctx).First(&record, id).Error; err != nil {
		return nil, translate("get", err)
	}
	return &record, nil
}

// List returns every row, ordered by the given ORDER BY clause when it is not empty.
func (r *Repository[T]) List(ctx context.Context, order string) ([]T, error) {
	records := make([]T, 0)
	q := r.db.WithContext(ctx)
	if order != "" {
		q = q.Order(order)
	}
	if err := q.Find(&records).Error; err != nil {
		return nil, translate("list", err)
	}
	return records, nil
}

// Update writes every column of record. The row must already exist.
func (r *Repository[T]) Update(ctx context.Context, record *T) error {
	res := r.db.WithContext(ctx).Model(record).Select("*").Updates(record)
	if res.Error != nil {
		return translate("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	var record T
	res := r.db.WithContext(ctx).Delete(&record, id)
	if res.Error != nil {
		return translate("delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every row of the table and reports how many were deleted.
func (r *Repository[T]) DeleteAll(ctx context.Context) (int64, error) {
	var record T
	res := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&record)
	if res.Error != nil {
		return 0, translate("delete all", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *Repository[T]) Count(ctx context.Context) (int64, error) {
	var (
		record T
		n      int64
	)
	if err := r.db.WithContext(ctx).Model(&record).Count(&n).Error; err != nil {
		return 0, translate("count", err)
	}
	return n, nil
}

// ExistsBy reports whether a row other than excludeID has column = value.
// column must be a trusted identifier, never request input.
func (r *Repository[T]) ExistsBy(ctx context.Context, column string, value any, excludeID uint) (bool, error) {
	var (
		record T
		n      int64
	)
	q := r.db.WithContext(ctx).Model(&record).Where(column+" = ?", value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, translate("exists", err)
	}
	return n > 0, nil
}

func translate(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, ErrConflict)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

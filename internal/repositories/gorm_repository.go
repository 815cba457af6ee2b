package repositories

import (
	"context"
	"errors"
	"fmt"

	"hbnb/internal/apperr"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormRepository implements the lookups and writes every entity repository
// shares. T is the model type; name is used in error messages.
type gormRepository[T any] struct {
	db        *gorm.DB
	name      string
	duplicate error
}

func newGORMRepository[T any](db *gorm.DB, name string, duplicate error) gormRepository[T] {
	return gormRepository[T]{db: db, name: name, duplicate: duplicate}
}

// GetByID retrieves a single row by its primary key.
func (r *gormRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	return r.GetByAttribute(ctx, "id", id)
}

// GetByAttribute retrieves the first row whose column attr equals value.
// The column name is quoted by GORM, never interpolated.
func (r *gormRepository[T]) GetByAttribute(ctx context.Context, attr string, value any) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: attr}, Value: value}).
		First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Errorf("%s with %s %v not found", r.name, attr, value))
		}
		return nil, fmt.Errorf("failed to get %s by %s: %w", r.name, attr, err)
	}
	return &entity, nil
}

// GetAll retrieves every row, oldest first.
func (r *gormRepository[T]) GetAll(ctx context.Context) ([]T, error) {
	entities := []T{}
	if err := r.db.WithContext(ctx).Order("created_at").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to get all %ss: %w", r.name, err)
	}
	return entities, nil
}

// Create inserts entity without touching its associations.
func (r *gormRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.create(r.db.WithContext(ctx), entity)
}

func (r *gormRepository[T]) create(tx *gorm.DB, entity *T) error {
	if err := tx.Omit(clause.Associations).Create(entity).Error; err != nil {
		return r.translate("create", err)
	}
	return nil
}

// Update writes every column of entity. Associations are left alone.
// Updating a row that no longer exists reports NotFound.
func (r *gormRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.update(r.db.WithContext(ctx), entity)
}

func (r *gormRepository[T]) update(tx *gorm.DB, entity *T) error {
	// An explicit Select keeps Save from inserting when no row matches.
	res := tx.Select("*").Omit(clause.Associations).Save(entity)
	if res.Error != nil {
		return r.translate("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(fmt.Errorf("%s not found for update", r.name))
	}
	return nil
}

// deleteByID removes the row with the given id and reports NotFound when
// nothing was deleted.
func (r *gormRepository[T]) deleteByID(tx *gorm.DB, id string) error {
	res := tx.Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", r.name, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(fmt.Errorf("%s with id %s not found for deletion", r.name, id))
	}
	return nil
}

func (r *gormRepository[T]) translate(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) && r.duplicate != nil {
		return r.duplicate
	}
	return fmt.Errorf("failed to %s %s: %w", op, r.name, err)
}

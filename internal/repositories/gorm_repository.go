package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"productselector/internal/models"
)

// entity is satisfied by pointers to the persisted models.
type entity[T any] interface {
	*T
	GetID() int64
}

// joinSide describes how one entity type takes part in the products_recipes relation.
type joinSide[T any] struct {
	column      string // join column holding this entity's id
	otherColumn string
	otherTable  string
	relatedIDs  func(*T) []int64
}

// gormRepository is the GORM implementation of Repository shared by all entity types.
type gormRepository[T any, P entity[T]] struct {
	db       *gorm.DB
	preloads []string
	join     *joinSide[T]
}

func (r *gormRepository[T, P]) query(ctx context.Context) *gorm.DB {
	return r.preloaded(r.db.WithContext(ctx))
}

// Save inserts or overwrites entity and, for associated types, replaces its join rows.
func (r *gormRepository[T, P]) Save(ctx context.Context, entity *T) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id := P(entity).GetID()
		if id == 0 {
			if err := tx.Omit(clause.Associations).Create(entity).Error; err != nil {
				return translate(err)
			}
		} else {
			// Conditional overwrite: a row deleted since the caller's check is reported, never re-inserted.
			res := tx.Model(entity).Select("*").Omit(clause.Associations).Updates(entity)
			if res.Error != nil {
				return translate(res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}

		if r.join == nil {
			return nil
		}
		id = P(entity).GetID()
		if err := r.replaceLinks(tx, id, r.join.relatedIDs(entity)); err != nil {
			return err
		}

		var saved T
		if err := r.preloaded(tx).First(&saved, id).Error; err != nil {
			return fmt.Errorf("failed to reload saved entity %d: %w", id, err)
		}
		*entity = saved
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to save entity: %w", err)
	}
	return nil
}

// replaceLinks points the entity at exactly those related ids that exist.
func (r *gormRepository[T, P]) replaceLinks(tx *gorm.DB, id int64, relatedIDs []int64) error {
	if err := tx.Where(r.join.column+" = ?", id).Delete(&models.ProductRecipe{}).Error; err != nil {
		return fmt.Errorf("failed to clear associations of %d: %w", id, err)
	}

	ids := uniqueIDs(relatedIDs)
	if len(ids) == 0 {
		return nil
	}

	var existing []int64
	if err := tx.Table(r.join.otherTable).Where("id IN ?", ids).Order("id").Pluck("id", &existing).Error; err != nil {
		return fmt.Errorf("failed to resolve associated ids: %w", err)
	}
	if len(existing) == 0 {
		return nil
	}

	rows := make([]map[string]any, 0, len(existing))
	for _, other := range existing {
		rows = append(rows, map[string]any{r.join.column: id, r.join.otherColumn: other})
	}
	if err := tx.Model(&models.ProductRecipe{}).Create(rows).Error; err != nil {
		return fmt.Errorf("failed to link associations of %d: %w", id, err)
	}
	return nil
}

func (r *gormRepository[T, P]) preloaded(tx *gorm.DB) *gorm.DB {
	for _, p := range r.preloads {
		tx = tx.Preload(p)
	}
	return tx
}

// FindByID retrieves a single entity by its id.
func (r *gormRepository[T, P]) FindByID(ctx context.Context, id int64) (*T, error) {
	var entity T
	if err := r.query(ctx).First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entity by ID %d: %w", id, err)
	}
	return &entity, nil
}

// FindAll retrieves every entity in id order.
func (r *gormRepository[T, P]) FindAll(ctx context.Context) ([]T, error) {
	entities := []T{}
	if err := r.query(ctx).Order("id").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to find all entities: %w", err)
	}
	return entities, nil
}

// FindAllByIDIn retrieves the entities among ids that exist. Missing ids are skipped.
func (r *gormRepository[T, P]) FindAllByIDIn(ctx context.Context, ids []int64) ([]T, error) {
	entities := []T{}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return entities, nil
	}
	if err := r.query(ctx).Where("id IN ?", ids).Order("id").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to find entities by IDs %v: %w", ids, err)
	}
	return entities, nil
}

// ExistsByID reports whether a row with the id exists.
func (r *gormRepository[T, P]) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check existence of %d: %w", id, err)
	}
	return count > 0, nil
}

// DeleteByID removes the entity together with its join rows.
func (r *gormRepository[T, P]) DeleteByID(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.join != nil {
			if err := tx.Where(r.join.column+" = ?", id).Delete(&models.ProductRecipe{}).Error; err != nil {
				return fmt.Errorf("failed to delete associations of %d: %w", id, err)
			}
		}
		res := tx.Delete(new(T), id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete entity %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	return err
}

// findLinked returns the entities joined to any of otherIDs, each once.
func (r *gormRepository[T, P]) findLinked(ctx context.Context, otherIDs []int64) ([]T, error) {
	entities := []T{}
	otherIDs = uniqueIDs(otherIDs)
	if len(otherIDs) == 0 {
		return entities, nil
	}
	linked := r.db.WithContext(ctx).
		Model(&models.ProductRecipe{}).
		Select(r.join.column).
		Where(r.join.otherColumn+" IN ?", otherIDs)
	if err := r.query(ctx).Where("id IN (?)", linked).Order("id").Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to find entities linked to %v: %w", otherIDs, err)
	}
	return entities, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

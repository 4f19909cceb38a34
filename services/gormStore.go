package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Omthube23/fastapi-elk-project/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps items in a relational table. The table must already exist,
// see database.Migrate.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(ctx context.Context, in NewItem) (models.Item, error) {
	item := models.Item{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return models.Item{}, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

func (s *GormStore) List(ctx context.Context) ([]models.Item, error) {
	items := []models.Item{}
	err := s.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Find(&items).
		Error
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (s *GormStore) Get(ctx context.Context, id uint) (models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("get item %d: %w", id, err)
	}
	return item, nil
}

// Delete looks the row up and removes it in one transaction so the returned
// record is the one that was deleted.
func (s *GormStore) Delete(ctx context.Context, id uint) (models.Item, error) {
	var item models.Item
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Item{}, ErrItemNotFound
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("delete item %d: %w", id, err)
	}
	return item, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

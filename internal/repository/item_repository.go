package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/borrowspace/service-sharing/internal/domain"
	itemDomain "github.com/borrowspace/service-sharing/internal/domain/item"
)

// ItemModel is the GORM model for the items table.
type ItemModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	Owner       UserModel  `gorm:"foreignKey:OwnerID"`
	Name        string     `gorm:"not null;size:255"`
	Description string     `gorm:"not null;size:1000"`
	Available   bool       `gorm:"not null;default:false"`
	RequestID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ItemModel) TableName() string {
	return "items"
}

// GormItemRepository is the GORM-based implementation of ItemRepository.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// FindByID retrieves an item by id.
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	var model ItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("item", id.String())
		}
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	return toDomainItem(&model), nil
}

// FindByOwnerID retrieves all items owned by the given user.
func (r *GormItemRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*itemDomain.Item, error) {
	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by owner: %w", err)
	}
	return toDomainItems(models), nil
}

// FindByRequestID retrieves items offered in response to a request.
func (r *GormItemRepository) FindByRequestID(ctx context.Context, requestID uuid.UUID) ([]*itemDomain.Item, error) {
	var models []ItemModel
	if err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find items by request: %w", err)
	}
	return toDomainItems(models), nil
}

// Search finds available items whose name or description contains the
// substring, case-insensitively.
func (r *GormItemRepository) Search(ctx context.Context, substring string) ([]*itemDomain.Item, error) {
	var models []ItemModel
	pattern := "%" + substring + "%"
	if err := r.db.WithContext(ctx).
		Where("available = true").
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return toDomainItems(models), nil
}

// Save persists a new item.
func (r *GormItemRepository) Save(ctx context.Context, i *itemDomain.Item) error {
	model := toItemModel(i)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}
	return nil
}

// Update persists changes to an existing item.
func (r *GormItemRepository) Update(ctx context.Context, i *itemDomain.Item) error {
	model := toItemModel(i)
	result := r.db.WithContext(ctx).
		Model(&ItemModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"description": model.Description,
			"available":   model.Available,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("item", model.ID.String())
	}
	return nil
}

// Delete removes an item by id.
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&ItemModel{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toItemModel(i *itemDomain.Item) *ItemModel {
	return &ItemModel{
		ID:          i.ID(),
		OwnerID:     i.OwnerID(),
		Name:        i.Name(),
		Description: i.Description(),
		Available:   i.Available(),
		RequestID:   i.RequestID(),
		CreatedAt:   i.CreatedAt(),
		UpdatedAt:   i.UpdatedAt(),
	}
}

func toDomainItem(m *ItemModel) *itemDomain.Item {
	return itemDomain.Reconstruct(
		m.ID,
		m.OwnerID,
		m.Name,
		m.Description,
		m.Available,
		m.RequestID,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainItems(models []ItemModel) []*itemDomain.Item {
	items := make([]*itemDomain.Item, len(models))
	for i, m := range models {
		items[i] = toDomainItem(&m)
	}
	return items
}

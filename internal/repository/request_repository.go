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
	requestDomain "github.com/borrowspace/service-sharing/internal/domain/request"
)

// RequestModel is the GORM model for the requests table.
type RequestModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID `gorm:"type:uuid;index;not null"`
	Requester   UserModel `gorm:"foreignKey:RequesterID"`
	Description string    `gorm:"not null;size:1000"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RequestModel) TableName() string {
	return "requests"
}

// GormRequestRepository is the GORM-based implementation of RequestRepository.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// FindByID retrieves a request by id.
func (r *GormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*requestDomain.ItemRequest, error) {
	var model RequestModel
	if err := r.db.WithContext(ctx).Preload("Requester").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("request", id.String())
		}
		return nil, fmt.Errorf("failed to find request by ID: %w", err)
	}
	return toDomainRequest(&model), nil
}

// FindByRequesterID retrieves a user's own requests, newest first.
func (r *GormRequestRepository) FindByRequesterID(ctx context.Context, requesterID uuid.UUID) ([]*requestDomain.ItemRequest, error) {
	return r.findRequests(ctx, r.db.WithContext(ctx).
		Preload("Requester").
		Where("requester_id = ?", requesterID))
}

// FindAllExcludingRequester retrieves other users' requests, newest first.
func (r *GormRequestRepository) FindAllExcludingRequester(ctx context.Context, requesterID uuid.UUID) ([]*requestDomain.ItemRequest, error) {
	return r.findRequests(ctx, r.db.WithContext(ctx).
		Preload("Requester").
		Where("requester_id <> ?", requesterID))
}

// Save persists a new request.
func (r *GormRequestRepository) Save(ctx context.Context, req *requestDomain.ItemRequest) error {
	model := toRequestModel(req)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	return nil
}

func (r *GormRequestRepository) findRequests(ctx context.Context, query *gorm.DB) ([]*requestDomain.ItemRequest, error) {
	var models []RequestModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find requests: %w", err)
	}

	requests := make([]*requestDomain.ItemRequest, len(models))
	for i, m := range models {
		requests[i] = toDomainRequest(&m)
	}
	return requests, nil
}

// --- Conversion Helpers ---

func toRequestModel(req *requestDomain.ItemRequest) *RequestModel {
	return &RequestModel{
		ID:          req.ID(),
		RequesterID: req.Requester().ID(),
		Description: req.Description(),
		CreatedAt:   req.CreatedAt(),
	}
}

func toDomainRequest(m *RequestModel) *requestDomain.ItemRequest {
	return requestDomain.Reconstruct(
		m.ID,
		*toDomainUser(&m.Requester),
		m.Description,
		m.CreatedAt,
	)
}

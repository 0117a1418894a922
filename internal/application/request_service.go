package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	itemDomain "github.com/borrowspace/service-sharing/internal/domain/item"
	requestDomain "github.com/borrowspace/service-sharing/internal/domain/request"
	userDomain "github.com/borrowspace/service-sharing/internal/domain/user"
)

// CreateRequestRequest is the request DTO for creating an item request.
type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// RequestDTO is the API response representation of an item request, with the
// items offered in response.
type RequestDTO struct {
	ID          uuid.UUID     `json:"id"`
	Description string        `json:"description"`
	RequesterID uuid.UUID     `json:"requesterId"`
	Created     LocalDateTime `json:"created"`
	Items       []ItemDTO     `json:"items"`
}

// RequestService implements use cases for item requests.
type RequestService struct {
	users  userDomain.UserRepository
	items  itemDomain.ItemRepository
	repo   requestDomain.RequestRepository
	logger *zap.Logger
}

// NewRequestService creates a new RequestService.
func NewRequestService(
	users userDomain.UserRepository,
	items itemDomain.ItemRepository,
	repo requestDomain.RequestRepository,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		users:  users,
		items:  items,
		repo:   repo,
		logger: logger,
	}
}

// CreateRequest records a wish for an item nobody has listed yet.
func (s *RequestService) CreateRequest(ctx context.Context, req CreateRequestRequest, requesterID uuid.UUID) (*RequestDTO, error) {
	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	r, err := requestDomain.NewItemRequest(*requester, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, r); err != nil {
		s.logger.Error("failed to save request", zap.Error(err))
		return nil, err
	}

	s.logger.Info("item request created",
		zap.String("request_id", r.ID().String()),
		zap.String("requester_id", requesterID.String()),
	)
	result, err := s.toRequestDTO(ctx, r)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetOwnRequests returns the caller's requests with responses, newest first.
func (s *RequestService) GetOwnRequests(ctx context.Context, requesterID uuid.UUID) ([]RequestDTO, error) {
	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.FindByRequesterID(ctx, requester.ID())
	if err != nil {
		return nil, err
	}
	return s.toRequestDTOs(ctx, requests)
}

// GetAllRequests returns other users' requests, newest first.
func (s *RequestService) GetAllRequests(ctx context.Context, callerID uuid.UUID) ([]RequestDTO, error) {
	caller, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}

	requests, err := s.repo.FindAllExcludingRequester(ctx, caller.ID())
	if err != nil {
		return nil, err
	}
	return s.toRequestDTOs(ctx, requests)
}

// GetRequest returns a single request with responses.
func (s *RequestService) GetRequest(ctx context.Context, requestID uuid.UUID) (*RequestDTO, error) {
	r, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return s.toRequestDTO(ctx, r)
}

// --- Helpers ---

func (s *RequestService) toRequestDTO(ctx context.Context, r *requestDomain.ItemRequest) (*RequestDTO, error) {
	items, err := s.items.FindByRequestID(ctx, r.ID())
	if err != nil {
		return nil, err
	}

	itemDTOs := make([]ItemDTO, len(items))
	for i, itm := range items {
		itemDTOs[i] = toItemDTO(itm)
	}

	return &RequestDTO{
		ID:          r.ID(),
		Description: r.Description(),
		RequesterID: r.Requester().ID(),
		Created:     NewLocalDateTime(r.CreatedAt()),
		Items:       itemDTOs,
	}, nil
}

func (s *RequestService) toRequestDTOs(ctx context.Context, requests []*requestDomain.ItemRequest) ([]RequestDTO, error) {
	dtos := make([]RequestDTO, len(requests))
	for i, r := range requests {
		dto, err := s.toRequestDTO(ctx, r)
		if err != nil {
			return nil, err
		}
		dtos[i] = *dto
	}
	return dtos, nil
}

package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/winshaurya/alumnet/internal/app/models"
	"github.com/winshaurya/alumnet/internal/app/models/dto"
	"github.com/winshaurya/alumnet/internal/app/repositories"
	"github.com/winshaurya/alumnet/internal/pkg/helpers"
	"github.com/winshaurya/alumnet/internal/pkg/websocket"
)

// NotificationService stores notifications and pushes them to connected
// clients. The stored row is authoritative; the websocket push is best
// effort for users who happen to be online.
type NotificationService struct {
	notificationRepo repositories.INotificationRepository
	userRepo         repositories.IUserRepository
	hub              *websocket.Hub
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo repositories.INotificationRepository,
	userRepo repositories.IUserRepository,
	hub *websocket.Hub,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		hub:              hub,
		logger:           logger,
	}
}

// NotifyUser stores a notification for one user and pushes it if connected
func (s *NotificationService) NotifyUser(ctx context.Context, userID int64, title, body string) error {
	notification := &models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return err
	}

	s.push(userID, title, body)
	return nil
}

// NotifyUsers fans a notification out to an explicit set of users
func (s *NotificationService) NotifyUsers(ctx context.Context, userIDs []int64, title, body string) error {
	if err := s.notificationRepo.CreateBatch(ctx, userIDs, title, body); err != nil {
		return err
	}

	for _, userID := range userIDs {
		s.push(userID, title, body)
	}
	return nil
}

// NotifyRole fans a notification out to every active user with the role
func (s *NotificationService) NotifyRole(ctx context.Context, role models.RoleType, title, body string) (int, error) {
	userIDs, err := s.userRepo.ListIDsByRole(ctx, role)
	if err != nil {
		return 0, err
	}
	if err := s.NotifyUsers(ctx, userIDs, title, body); err != nil {
		return 0, err
	}
	return len(userIDs), nil
}

// List returns the caller's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID int64, page, pageSize int) (*dto.PaginatedResponse, error) {
	notifications, total, err := s.notificationRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.NewNotificationResponse(n))
	}

	return &dto.PaginatedResponse{
		Items:      responses,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	}, nil
}

// MarkRead marks one of the caller's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, userID)
}

func (s *NotificationService) push(userID int64, title, body string) {
	if s.hub == nil {
		return
	}
	s.hub.SendToUser(userID, websocket.Event{
		Type:  "notification",
		Title: title,
		Body:  body,
	})
}

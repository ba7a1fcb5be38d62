package services

import (
	"context"
	"fmt"

	"github.com/shelfhq/shelf/internal/client/api"
	"github.com/shelfhq/shelf/internal/client/models"
	"github.com/shelfhq/shelf/internal/common"
)

// SubscriptionService reads the plan/quota/usage snapshot and gates uploads.
//
// Every use re-fetches: balances change from other devices and as billing
// periods elapse, so nothing is cached beyond the call. The checks are
// advisory; the server stays authoritative.
type SubscriptionService interface {
	GetSnapshot(ctx context.Context) (*models.SubscriptionSnapshot, error)
	// AuthorizeUpload rejects an upload of sizeBytes locally, before any
	// bytes leave the process: common.ErrSubscriptionRequired when no active
	// plan exists, common.ErrStorageLimitExceeded when the quota would
	// overflow. These are distinct conditions and surface distinctly.
	AuthorizeUpload(ctx context.Context, sizeBytes int64) error
}

type subscriptionService struct {
	client api.Client
}

func NewSubscriptionService(client api.Client) SubscriptionService {
	return &subscriptionService{client: client}
}

func (s *subscriptionService) GetSnapshot(ctx context.Context) (*models.SubscriptionSnapshot, error) {
	snap, err := s.client.GetSubscription(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscription fetch error: %w", err)
	}
	return snap, nil
}

func (s *subscriptionService) AuthorizeUpload(ctx context.Context, sizeBytes int64) error {
	snap, err := s.GetSnapshot(ctx)
	if err != nil {
		return err
	}
	if !snap.HasActivePlan() {
		return common.ErrSubscriptionRequired
	}
	if !snap.CanStore(sizeBytes) {
		return common.ErrStorageLimitExceeded
	}
	return nil
}

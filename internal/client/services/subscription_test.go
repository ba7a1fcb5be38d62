package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shelfhq/shelf/internal/client/models"
	"github.com/shelfhq/shelf/internal/common"
)

func TestSubscriptionService_SnapshotIsNotCached(t *testing.T) {
	client := &fakeClient{snapshot: activePlan(1000, 0)}
	svc := NewSubscriptionService(client)

	for i := 0; i < 3; i++ {
		snap, err := svc.GetSnapshot(context.Background())
		require.NoError(t, err)
		require.Equal(t, "basic", snap.Plan)
	}
	// every read goes to the server; usage moves under our feet
	require.Equal(t, 3, client.snapCalls)
}

func TestSubscriptionService_SnapshotFetchError(t *testing.T) {
	client := &fakeClient{snapErr: errors.New("503")}
	svc := NewSubscriptionService(client)

	_, err := svc.GetSnapshot(context.Background())
	require.Error(t, err)
}

func TestSubscriptionService_AuthorizeUpload(t *testing.T) {
	tests := []struct {
		name    string
		snap    *models.SubscriptionSnapshot
		size    int64
		wantErr error
	}{
		{"active plan with room", activePlan(100, 40), 60, nil},
		{"no plan at all", &models.SubscriptionSnapshot{Plan: "", StorageLimitBytes: 100}, 1, common.ErrSubscriptionRequired},
		{"plan none", &models.SubscriptionSnapshot{Plan: "none", StorageLimitBytes: 100}, 1, common.ErrSubscriptionRequired},
		{"quota overflow", activePlan(100, 95), 6, common.ErrStorageLimitExceeded},
		{"exactly at limit", activePlan(100, 95), 5, nil},
		// the plan check wins when both conditions hold
		{"no plan and over quota", &models.SubscriptionSnapshot{Plan: "none", StorageLimitBytes: 10, StorageUsageBytes: 10}, 5, common.ErrSubscriptionRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewSubscriptionService(&fakeClient{snapshot: tt.snap})
			err := svc.AuthorizeUpload(context.Background(), tt.size)
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSubscriptionService_AuthorizeUploadFetchError(t *testing.T) {
	svc := NewSubscriptionService(&fakeClient{snapErr: errors.New("timeout")})
	err := svc.AuthorizeUpload(context.Background(), 1)
	require.Error(t, err)
	require.NotErrorIs(t, err, common.ErrSubscriptionRequired)
	require.NotErrorIs(t, err, common.ErrStorageLimitExceeded)
}

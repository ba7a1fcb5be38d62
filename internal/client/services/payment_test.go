package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shelfhq/shelf/internal/client/models"
	"github.com/shelfhq/shelf/internal/common"
)

func newTracker(t *testing.T, client *fakeClient) *PaymentTracker {
	t.Helper()
	svc := NewPaymentService(client, time.Millisecond, testLogger())
	tracker, err := svc.Submit(context.Background(), "500", "237670000000", "premium plan", "shelf")
	require.NoError(t, err)
	return tracker
}

func TestPaymentService_SubmitFailure(t *testing.T) {
	client := &fakeClient{requestErr: errors.New("gateway rejected request")}
	svc := NewPaymentService(client, time.Millisecond, testLogger())

	_, err := svc.Submit(context.Background(), "500", "237670000000", "", "")
	require.Error(t, err)
	require.Zero(t, client.statusCalls)
}

func TestPaymentTracker_PollsUntilSuccess(t *testing.T) {
	client := &fakeClient{
		referenceID: "ref-1",
		statuses:    []string{"PENDING", "Pending", "PENDING", "Successful"},
	}
	tracker := newTracker(t, client)
	require.Equal(t, models.PaymentPending, tracker.Intent().Status)

	status, err := tracker.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.PaymentSuccessful, status)
	// three pending reads plus the terminal one, then nothing
	require.Equal(t, 4, client.statusCalls)
	require.True(t, tracker.Settled())

	// a settled tracker answers from memory
	status, err = tracker.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.PaymentSuccessful, status)
	require.Equal(t, 4, client.statusCalls)
}

func TestPaymentTracker_FailedIsTerminal(t *testing.T) {
	client := &fakeClient{referenceID: "ref-2", statuses: []string{"PENDING", "FAILED"}}
	tracker := newTracker(t, client)

	status, err := tracker.Await(context.Background())
	require.NoError(t, err)
	require.Equal(t, models.PaymentFailed, status)
	require.Equal(t, 2, client.statusCalls)
	require.True(t, tracker.Settled())
}

func TestPaymentTracker_TransportFailureStopsPolling(t *testing.T) {
	client := &fakeClient{referenceID: "ref-3", statusErr: errors.New("connection refused")}
	tracker := newTracker(t, client)

	_, err := tracker.Await(context.Background())
	require.Error(t, err)
	// a transport failure is not retried
	require.Equal(t, 1, client.statusCalls)
}

func TestPaymentTracker_CancelSuppressesScheduledPolls(t *testing.T) {
	client := &fakeClient{referenceID: "ref-4"} // scripted statuses empty: always pending
	tracker := newTracker(t, client)
	tracker.Cancel()

	_, err := tracker.Await(context.Background())
	require.ErrorIs(t, err, common.ErrPaymentSettled)
	require.Zero(t, client.statusCalls)
}

func TestPaymentTracker_ContextCancellation(t *testing.T) {
	client := &fakeClient{referenceID: "ref-5"} // always pending
	svc := NewPaymentService(client, 10*time.Millisecond, testLogger())
	tracker, err := svc.Submit(context.Background(), "100", "237670000000", "", "")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	_, err = tracker.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, tracker.Settled())
}

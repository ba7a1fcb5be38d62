package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/shelfhq/shelf/internal/client/api"
	"github.com/shelfhq/shelf/internal/client/models"
	"github.com/shelfhq/shelf/internal/common"
	"github.com/shelfhq/shelf/internal/logging"
)

// PaymentService submits mobile-money payment requests and hands back a
// tracker that polls the intent to settlement.
type PaymentService interface {
	Submit(ctx context.Context, amount, phoneNumber, payerMessage, payeeNote string) (*PaymentTracker, error)
}

type paymentService struct {
	client   api.Client
	interval time.Duration
	log      logging.Logger
}

// NewPaymentService configures the poll interval once; every tracker it
// produces inherits it.
func NewPaymentService(client api.Client, interval time.Duration, log logging.Logger) PaymentService {
	return &paymentService{client: client, interval: interval, log: log}
}

func (p *paymentService) Submit(ctx context.Context, amount, phoneNumber, payerMessage, payeeNote string) (*PaymentTracker, error) {
	ref, err := p.client.RequestPayment(ctx, api.PaymentRequest{
		Amount:       amount,
		PhoneNumber:  phoneNumber,
		PayerMessage: payerMessage,
		PayeeNote:    payeeNote,
	})
	if err != nil {
		return nil, fmt.Errorf("payment request error: %w", err)
	}
	p.log.Info(ctx, "payment requested", "reference", ref)
	return &PaymentTracker{
		client:   p.client,
		interval: p.interval,
		log:      p.log,
		intent: models.PaymentIntent{
			ReferenceID: ref,
			Amount:      amount,
			PhoneNumber: phoneNumber,
			Status:      models.PaymentPending,
		},
	}, nil
}

var errStillPending = errors.New("payment still pending")

// PaymentTracker follows one submitted intent until it settles.
//
// Settlement is one-way: once the tracker has seen a terminal status (or has
// been cancelled), no further status calls are made, even for polls that were
// already scheduled when settlement happened.
type PaymentTracker struct {
	client   api.Client
	interval time.Duration
	log      logging.Logger

	mu      sync.Mutex
	intent  models.PaymentIntent
	settled bool
}

// Intent returns a snapshot of the tracked intent.
func (t *PaymentTracker) Intent() models.PaymentIntent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.intent
}

// Settled reports whether the tracker has stopped polling for good.
func (t *PaymentTracker) Settled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settled
}

// Cancel stops the tracker without an outcome. A poll already in its wait
// interval wakes up, sees the flag, and returns without calling the server.
func (t *PaymentTracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.settled = true
}

// Await polls the payment status at the configured interval until it reaches
// a terminal state, the context is cancelled, or the transport fails. A
// transport failure is terminal for the attempt: the tracker does not retry
// through an unreachable server. Calling Await on a settled tracker returns
// immediately.
func (t *PaymentTracker) Await(ctx context.Context) (models.PaymentStatus, error) {
	t.mu.Lock()
	if t.settled {
		status := t.intent.Status
		t.mu.Unlock()
		if status.Terminal() {
			return status, nil
		}
		return "", common.ErrPaymentSettled
	}
	t.mu.Unlock()

	var status models.PaymentStatus
	err := retry.Do(ctx, retry.NewConstant(t.interval), func(ctx context.Context) error {
		if t.Settled() {
			return common.ErrPaymentSettled
		}
		raw, err := t.client.PaymentStatus(ctx, t.intent.ReferenceID)
		if err != nil {
			return err
		}
		status = models.ParsePaymentStatus(raw)
		if !status.Terminal() {
			return retry.RetryableError(errStillPending)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	t.mu.Lock()
	t.intent.Status = status
	t.settled = true
	t.mu.Unlock()
	t.log.Info(ctx, "payment settled", "reference", t.intent.ReferenceID, "status", string(status))
	return status, nil
}

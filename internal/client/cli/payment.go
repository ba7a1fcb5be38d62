package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/shelfhq/shelf/internal/client/models"
)

// Plan prints the current subscription state and the available plans.
func (a *App) Plan(ctx context.Context) error {
	snap, err := a.subs.GetSnapshot(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if snap.HasActivePlan() {
		fmt.Printf("Current plan: %s, storage %s of %s used\n",
			snap.Plan, formatSize(snap.StorageUsageBytes), formatSize(snap.StorageLimitBytes))
	} else {
		fmt.Println("No active plan. Uploading requires a subscription.")
	}

	fmt.Println("Available plans:")
	for _, p := range models.KnownPlans() {
		fmt.Printf("  %-12s %4s XAF  %s storage\n", p.ID, p.AmountXAF, formatSize(p.StorageBytes))
	}
	return nil
}

// Pay requests a mobile-money payment for a plan and waits for the gateway
// to settle it. Polling stops on the first terminal status, on transport
// failure, or when the context is cancelled.
func (a *App) Pay(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter plan name (basic, premium, enterprise)", os.Stdout)
	if err != nil {
		return err
	}
	plan, ok := models.PlanByName(name)
	if !ok {
		fmt.Println("Unknown plan:", name)
		return nil
	}

	phone, err := getSimpleText(a.reader, "Enter mobile money phone number", os.Stdout)
	if err != nil {
		return err
	}

	tracker, err := a.payments.Submit(ctx, plan.AmountXAF, phone, plan.Name+" plan", "shelf subscription")
	if err != nil {
		log.Printf("Payment request unsuccessful: %s", err.Error())
		return err
	}

	fmt.Printf("Payment requested (reference %s), waiting for confirmation...\n", tracker.Intent().ReferenceID)

	status, err := tracker.Await(ctx)
	if err != nil {
		log.Printf("Payment tracking stopped: %s", err.Error())
		return err
	}

	switch status {
	case models.PaymentSuccessful:
		fmt.Println("Payment confirmed. Your plan is now", plan.Name+".")
	default:
		fmt.Println("Payment failed. No money was taken; try again.")
	}
	return nil
}

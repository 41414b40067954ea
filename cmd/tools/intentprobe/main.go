package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/saadkhan011/calcrew-frontend/internal/modules/payments"
)

// intentprobe asks the payment backend for an intent the same way a donation
// does and prints the resulting intent id. The client secret is never printed.
func main() {
	baseURL := flag.String("url", envOr("API_BASE_URL", "https://calcrew.myosport.co/api/v1/"), "Payment backend base URL")
	amount := flag.Int("amount", 3500, "Amount in cents")
	recurring := flag.Bool("recurring", false, "Request a monthly donation")
	email := flag.String("email", "", "Donor email (optional)")
	timeout := flag.Duration("timeout", 15*time.Second, "Request timeout")
	dryRun := flag.Bool("dry-run", false, "Only print the request body, don't send")
	flag.Parse()

	req := payments.IntentRequest{
		Amount:             int64(*amount),
		Currency:           payments.Currency,
		PaymentMethodTypes: []string{"card"},
		Recurring:          *recurring,
	}
	if *email != "" {
		req.UserInfo = &payments.UserInfo{Email: *email}
	}

	body, err := json.Marshal(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling request: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Body: %s\n", body)
	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fmt.Printf("\nSending to %s...\n", *baseURL)
	secret, err := payments.NewIntentClient(*baseURL, *timeout).CreateIntent(ctx, req)
	if err != nil {
		kind, msg := payments.Classify(err)
		fmt.Fprintf(os.Stderr, "Error (%s): %v\nDonor would see: %s\n", kind, err, msg)
		os.Exit(1)
	}

	id, err := payments.IntentIDFromSecret(secret)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Intent created: %s\n", id)
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

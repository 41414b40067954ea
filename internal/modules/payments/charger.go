package payments

import (
	"context"
	"log/slog"
)

type ChargeRequest struct {
	AmountCents int
	Recurring   bool
	UserInfo    *UserInfo
	Method      MethodRef
	Billing     *BillingDetails
}

type ResultStatus string

const (
	ResultSucceeded ResultStatus = "succeeded"
	ResultFailed    ResultStatus = "failed"
)

// Result is the typed outcome of one charge attempt.
type Result struct {
	Status          ResultStatus
	Kind            ErrorKind
	Message         string // donor-facing; empty unless the processor supplied one
	PaymentIntentID string
	Err             error
}

func (r Result) Succeeded() bool { return r.Status == ResultSucceeded }

// Charger runs the two-phase charge: create the intent on the backend, then
// confirm it with the processor. It never returns an error; every failure is
// folded into Result at this boundary.
type Charger struct {
	intents IntentCreator
	collab  Collaborator
	logger  *slog.Logger
}

func NewCharger(intents IntentCreator, collab Collaborator) *Charger {
	return &Charger{intents: intents, collab: collab, logger: slog.Default()}
}

func (c *Charger) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

func (c *Charger) Charge(ctx context.Context, req ChargeRequest) Result {
	if req.Method.PaymentMethodID == "" {
		return c.fail(ctx, req, ErrMissingPaymentMethod)
	}

	secret, err := c.intents.CreateIntent(ctx, IntentRequest{
		Amount:             int64(req.AmountCents),
		Currency:           Currency,
		PaymentMethodTypes: []string{"card"},
		Recurring:          req.Recurring,
		UserInfo:           req.UserInfo,
	})
	if err != nil {
		return c.fail(ctx, req, err)
	}

	res, err := c.collab.ConfirmCharge(ctx, secret, req.Method, req.Billing)
	if err != nil {
		return c.fail(ctx, req, err)
	}

	c.logger.InfoContext(ctx, "charge confirmed",
		"provider", c.collab.Name(),
		"method", req.Method.Kind,
		"amount_cents", req.AmountCents,
		"recurring", req.Recurring,
		"payment_intent", res.PaymentIntentID,
		"status", res.Status,
	)
	return Result{Status: ResultSucceeded, PaymentIntentID: res.PaymentIntentID}
}

func (c *Charger) fail(ctx context.Context, req ChargeRequest, err error) Result {
	kind, msg := Classify(err)
	level := slog.LevelError
	if kind == KindDeclined {
		level = slog.LevelWarn
	}
	c.logger.Log(ctx, level, "charge failed",
		"provider", c.collab.Name(),
		"method", req.Method.Kind,
		"amount_cents", req.AmountCents,
		"kind", kind,
		"err", err,
	)
	return Result{Status: ResultFailed, Kind: kind, Message: msg, Err: err}
}

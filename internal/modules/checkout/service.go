package checkout

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saadkhan011/calcrew-frontend/internal/modules/payments"
)

type Payer interface {
	Charge(ctx context.Context, req payments.ChargeRequest) payments.Result
}

type Receipt struct {
	Email           string
	Name            string
	AmountCents     int
	Recurring       bool
	PaymentIntentID string
}

type ReceiptSender interface {
	SendReceipt(ctx context.Context, r Receipt) error
}

type Options struct {
	ChargeTimeout time.Duration
	VenmoBaseURL  string
	Receipts      ReceiptSender // optional
}

type Service struct {
	store    Store
	collab   payments.Collaborator
	payer    Payer
	receipts ReceiptSender
	logger   *slog.Logger

	chargeTimeout time.Duration
	venmoBaseURL  string

	now   func() time.Time
	newID func() string
}

func NewService(store Store, collab payments.Collaborator, payer Payer, opts Options) *Service {
	return &Service{
		store:         store,
		collab:        collab,
		payer:         payer,
		receipts:      opts.Receipts,
		logger:        slog.Default(),
		chargeTimeout: opts.ChargeTimeout,
		venmoBaseURL:  opts.VenmoBaseURL,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Mount starts a fresh session. A failed wallet probe only hides the wallet option.
func (s *Service) Mount(ctx context.Context) (Session, error) {
	available, err := s.collab.ProbeWalletAvailability(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "wallet probe failed", "provider", s.collab.Name(), "err", err)
		available = false
	}

	sess := NewSession(s.newID(), available, s.now())
	if err := s.store.Create(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Discard(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// Apply runs one event through Reduce and stores the result atomically.
func (s *Service) Apply(ctx context.Context, id string, ev Event) (Session, error) {
	return s.store.Update(ctx, id, func(cur Session) (Session, error) {
		next, err := Reduce(cur, ev)
		if err != nil {
			return cur, err
		}
		next.UpdatedAt = s.now()
		return next, nil
	})
}

// PaymentRequest returns the wallet pay-sheet configuration for the current amount.
func (s *Service) PaymentRequest(ctx context.Context, id string) (payments.PaymentRequest, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return payments.PaymentRequest{}, err
	}
	if sess.AmountCents() <= 0 {
		return payments.PaymentRequest{}, ErrInvalidAmount
	}
	return s.collab.CreatePaymentRequest(payments.TotalFor(sess.AmountCents(), sess.Intent.Recurring))
}

// SubmitCard charges the card path. A decline is not an error: it comes back
// as a failed Outcome and the session stays on the payment step.
func (s *Service) SubmitCard(ctx context.Context, id, paymentMethodID string) (Session, Outcome, error) {
	sess, res, err := s.submit(ctx, id, PathCard, paymentMethodID)
	if res.Succeeded() {
		s.sendReceipt(ctx, sess, res)
	}
	if err != nil {
		return sess, Outcome{}, err
	}
	return sess, outcomeFor(PathCard, res), nil
}

func (s *Service) SubmitWallet(ctx context.Context, id, paymentMethodID string) (Session, Outcome, error) {
	sess, res, err := s.submit(ctx, id, PathWallet, paymentMethodID)
	if err != nil {
		return sess, Outcome{}, err
	}
	return sess, outcomeFor(PathWallet, res), nil
}

// StartVenmo records the redirect status and returns the deep link to open.
func (s *Service) StartVenmo(ctx context.Context, id string) (Session, string, error) {
	sess, err := s.Apply(ctx, id, StartVenmo{})
	if err != nil {
		return sess, "", err
	}
	return sess, payments.VenmoURL(s.venmoBaseURL, sess.AmountCents()), nil
}

// submit holds the in-flight flag for exactly one charge attempt. The flag is
// stored before the call and released in a deferred FinishCharge that runs on
// a context detached from request cancellation. A session that vanished during
// the charge does not hide the charge result: the outcome is still returned.
func (s *Service) submit(ctx context.Context, id string, path ChargePath, paymentMethodID string) (sess Session, res payments.Result, err error) {
	started, err := s.Apply(ctx, id, BeginCharge{Path: path})
	if err != nil {
		return started, payments.Result{}, err
	}
	sess = started

	outcome := Failed("")
	defer func() {
		released, ferr := s.Apply(context.WithoutCancel(ctx), id, FinishCharge{Outcome: outcome})
		if ferr == nil {
			sess = released
			return
		}
		s.logger.ErrorContext(ctx, "release charge flag failed",
			"session_id", id,
			"charged", res.Succeeded(),
			"payment_intent_id", res.PaymentIntentID,
			"err", ferr,
		)
		if errors.Is(ferr, ErrSessionNotFound) && res.Status != "" {
			if local, rerr := Reduce(started, FinishCharge{Outcome: outcome}); rerr == nil {
				sess = local
				return
			}
		}
		if err == nil {
			err = ferr
		}
	}()

	chargeCtx := ctx
	if s.chargeTimeout > 0 {
		var cancel context.CancelFunc
		chargeCtx, cancel = context.WithTimeout(ctx, s.chargeTimeout)
		defer cancel()
	}

	req := payments.ChargeRequest{
		AmountCents: started.AmountCents(),
		Recurring:   started.Intent.Recurring,
		Method: payments.MethodRef{
			Kind:            payments.KindCard,
			PaymentMethodID: strings.TrimSpace(paymentMethodID),
		},
	}
	if path == PathCard {
		req.UserInfo = userInfo(started.Profile)
		req.Billing = billingDetails(started.Profile)
	} else {
		req.Method.Kind = payments.KindWallet
	}

	res = s.payer.Charge(chargeCtx, req)
	outcome = outcomeFor(path, res)
	return sess, res, nil
}

func outcomeFor(path ChargePath, res payments.Result) Outcome {
	if res.Succeeded() {
		if path == PathWallet {
			return Succeeded(MsgWalletSuccess)
		}
		return Succeeded(MsgCardSuccess)
	}
	return Failed(res.Message)
}

func (s *Service) sendReceipt(ctx context.Context, sess Session, res payments.Result) {
	if s.receipts == nil {
		return
	}
	r := Receipt{
		Email:           strings.TrimSpace(sess.Profile.Email),
		Name:            sess.Profile.FullName(),
		AmountCents:     sess.AmountCents(),
		Recurring:       sess.Intent.Recurring,
		PaymentIntentID: res.PaymentIntentID,
	}
	if err := s.receipts.SendReceipt(ctx, r); err != nil {
		s.logger.WarnContext(ctx, "donation receipt not sent", "session_id", sess.ID, "err", err)
	}
}

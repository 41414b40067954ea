package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saadkhan011/calcrew-frontend/internal/http/flash"
	"github.com/saadkhan011/calcrew-frontend/internal/http/middleware"
	"github.com/saadkhan011/calcrew-frontend/internal/http/render"
	"github.com/saadkhan011/calcrew-frontend/internal/http/sessioncookie"
	"github.com/saadkhan011/calcrew-frontend/internal/http/validation"
	"github.com/saadkhan011/calcrew-frontend/internal/modules/checkout"
	"github.com/saadkhan011/calcrew-frontend/internal/shared/apperr"
	"github.com/saadkhan011/calcrew-frontend/pkg/view"
	"github.com/saadkhan011/calcrew-frontend/templates/pages"
)

const checkoutPath = "/donate/checkout"

type DonateHandler struct {
	Checkout       *checkout.Service
	Flash          *flash.Codec
	Cookie         *sessioncookie.Codec
	PublishableKey string
	Logger         *slog.Logger
}

func NewDonateHandler(svc *checkout.Service, fl *flash.Codec, ck *sessioncookie.Codec, publishableKey string, logger *slog.Logger) *DonateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DonateHandler{Checkout: svc, Flash: fl, Cookie: ck, PublishableKey: publishableKey, Logger: logger}
}

type amountInput struct {
	Preset       int     `form:"preset" json:"preset"`
	CustomAmount *string `form:"custom_amount" json:"custom_amount" binding:"omitempty,max=32"`
}

type recurringInput struct {
	Recurring *bool `form:"recurring" json:"recurring" binding:"required"`
}

type methodInput struct {
	Method string `form:"method" json:"method" binding:"notblank,max=32"`
}

type profileInput struct {
	FirstName string `form:"first_name" json:"firstName" binding:"max=100"`
	LastName  string `form:"last_name" json:"lastName" binding:"max=100"`
	Email     string `form:"email" json:"email" binding:"max=255"`
	Phone     string `form:"phone" json:"phone" binding:"max=32"`
	Address   string `form:"address" json:"address" binding:"max=255"`
	City      string `form:"city" json:"city" binding:"max=100"`
	State     string `form:"state" json:"state" binding:"max=100"`
	ZipCode   string `form:"zip_code" json:"zipCode" binding:"max=16"`
	Action    string `form:"action" json:"action" binding:"omitempty,oneof=save continue back"`
}

func (in profileInput) profile() checkout.DonorProfile {
	return checkout.DonorProfile{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		Zip:       in.ZipCode,
	}
}

type paymentInput struct {
	PaymentMethodID string `form:"payment_method_id" json:"payment_method_id" binding:"notblank,max=255"`
}

type availabilityInput struct {
	Available *bool `form:"available" json:"available" binding:"required"`
}

// GET /donate, POST /api/donate
// Every mount discards the caller's previous session and starts over.
func (h *DonateHandler) Mount(c *gin.Context) {
	ctx := c.Request.Context()
	if old, ok := middleware.ResolveCheckoutID(c, h.Cookie); ok {
		if err := h.Checkout.Discard(ctx, old); err != nil {
			h.Logger.WarnContext(ctx, "discard previous checkout session", "session_id", old, "err", err)
		}
	}

	sess, err := h.Checkout.Mount(ctx)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	h.Cookie.Set(c, sess.ID)

	if middleware.WantsJSON(c) {
		c.Header(middleware.HeaderCheckoutSession, sess.ID)
		c.JSON(http.StatusCreated, newSessionJSON(sess))
		return
	}
	// a flash that led here belongs on the new checkout page
	if f := middleware.GetFlash(c); f != nil {
		middleware.SetFlashCookie(c, h.Flash, *f)
	}
	c.Redirect(http.StatusFound, checkoutPath)
}

// GET /donate/checkout, GET /api/donate
func (h *DonateHandler) Show(c *gin.Context) {
	sess, err := h.Checkout.Get(c.Request.Context(), middleware.CheckoutID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, newSessionJSON(sess))
		return
	}
	page := donatePage(sess, middleware.GetFlash(c), h.PublishableKey, c.Query("incomplete") == "1")
	render.Component(c, http.StatusOK, pages.Donate(page))
}

// POST /donate/amount
func (h *DonateHandler) Amount(c *gin.Context) {
	var in amountInput
	if !h.bind(c, &in) {
		return
	}
	switch {
	case in.CustomAmount != nil:
		h.apply(c, checkout.EnterCustomAmount{Raw: *in.CustomAmount})
	case in.Preset != 0:
		h.apply(c, checkout.SelectPreset{Dollars: in.Preset})
	default:
		h.fail(c, apperr.InvalidErr("Please choose or enter an amount.", map[string]string{"preset": "This field is required."}))
	}
}

// POST /donate/recurring
func (h *DonateHandler) Recurring(c *gin.Context) {
	var in recurringInput
	if !h.bind(c, &in) {
		return
	}
	h.apply(c, checkout.SetRecurring{Recurring: *in.Recurring})
}

// POST /donate/method
func (h *DonateHandler) Method(c *gin.Context) {
	var in methodInput
	if !h.bind(c, &in) {
		return
	}
	m, err := checkout.ParsePaymentMethod(in.Method)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.apply(c, checkout.SelectMethod{Method: m})
}

// POST /donate/continue
func (h *DonateHandler) Continue(c *gin.Context) {
	h.apply(c, checkout.ContinueWithCard{})
}

// POST /donate/profile
// The profile is saved on every submit; action=continue then advances and
// action=back returns to the amount step.
func (h *DonateHandler) Profile(c *gin.Context) {
	var in profileInput
	if !h.bind(c, &in) {
		return
	}
	events := []checkout.Event{checkout.EditProfile{Profile: in.profile()}}
	switch in.Action {
	case "continue":
		events = append(events, checkout.ContinueToPayment{})
	case "back":
		events = append(events, checkout.Back{})
	}
	h.apply(c, events...)
}

// POST /donate/back
func (h *DonateHandler) Back(c *gin.Context) {
	h.apply(c, checkout.Back{})
}

// POST /donate/wallet/availability
func (h *DonateHandler) WalletAvailability(c *gin.Context) {
	var in availabilityInput
	if !h.bind(c, &in) {
		return
	}
	h.apply(c, checkout.ReportWalletAvailability{Available: *in.Available})
}

// GET /donate/payment-request
func (h *DonateHandler) PaymentRequest(c *gin.Context) {
	pr, err := h.Checkout.PaymentRequest(c.Request.Context(), middleware.CheckoutID(c))
	if err != nil {
		middleware.Fail(c, checkoutError(err))
		return
	}
	c.JSON(http.StatusOK, pr)
}

// POST /donate/pay
func (h *DonateHandler) Pay(c *gin.Context) {
	var in paymentInput
	if !h.bind(c, &in) {
		return
	}
	ctx := c.Request.Context()
	id := middleware.CheckoutID(c)
	sess, outcome, err := h.Checkout.SubmitCard(ctx, id, in.PaymentMethodID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"session": newSessionJSON(sess), "outcome": outcome})
		return
	}
	// the session can expire mid-charge; the outcome still has to reach the donor
	if _, err := h.Checkout.Get(ctx, id); errors.Is(err, checkout.ErrSessionNotFound) {
		h.Cookie.Clear(c)
		kind := view.FlashError
		if outcome.Succeeded() {
			kind = view.FlashSuccess
		}
		render.RedirectWithFlash(c, h.Flash, "/donate", kind, outcome.Message())
		return
	}
	c.Redirect(http.StatusSeeOther, checkoutPath)
}

// POST /donate/wallet
// Called by the pay sheet script, which completes the sheet from outcome.status.
func (h *DonateHandler) Wallet(c *gin.Context) {
	var in paymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("The submitted data is invalid.", validation.FromBindError(err, &in)).WithCause(err))
		return
	}
	sess, outcome, err := h.Checkout.SubmitWallet(c.Request.Context(), middleware.CheckoutID(c), in.PaymentMethodID)
	if err != nil {
		middleware.Fail(c, checkoutError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": newSessionJSON(sess), "outcome": outcome})
}

// POST /donate/venmo
func (h *DonateHandler) Venmo(c *gin.Context) {
	sess, url, err := h.Checkout.StartVenmo(c.Request.Context(), middleware.CheckoutID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"session": newSessionJSON(sess), "url": url})
		return
	}
	c.Redirect(http.StatusSeeOther, url)
}

func (h *DonateHandler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		fields := validation.FromBindError(err, dst)
		h.fail(c, apperr.InvalidErr("Please check the highlighted values.", fields).WithCause(err))
		return false
	}
	return true
}

// apply runs events in order and stops at the first rejection.
func (h *DonateHandler) apply(c *gin.Context, events ...checkout.Event) {
	ctx := c.Request.Context()
	id := middleware.CheckoutID(c)

	var (
		sess checkout.Session
		err  error
	)
	for _, ev := range events {
		sess, err = h.Checkout.Apply(ctx, id, ev)
		if err != nil {
			h.fail(c, err)
			return
		}
	}

	if middleware.WantsJSON(c) {
		c.JSON(http.StatusOK, newSessionJSON(sess))
		return
	}
	c.Redirect(http.StatusSeeOther, checkoutPath)
}

// fail answers JSON clients through the error handler. Browsers are sent back
// to the checkout page: a blocked step only highlights the missing fields,
// other rejections become a flash.
func (h *DonateHandler) fail(c *gin.Context, err error) {
	appErr := checkoutError(err)

	if errors.Is(err, checkout.ErrSessionNotFound) {
		h.Cookie.Clear(c)
		if !middleware.WantsJSON(c) {
			render.RedirectWithFlash(c, h.Flash, "/donate", view.FlashInfo, appErr.PublicMsg)
			return
		}
	}
	if middleware.WantsJSON(c) || appErr.Kind == apperr.Internal {
		middleware.Fail(c, appErr)
		return
	}

	h.Logger.InfoContext(c.Request.Context(), "checkout action rejected",
		"request_id", middleware.GetRequestID(c),
		"session_id", middleware.CheckoutID(c),
		"err", err,
	)
	if errors.Is(err, checkout.ErrValidationBlocked) {
		c.Redirect(http.StatusSeeOther, checkoutPath+"?incomplete=1")
		return
	}
	render.RedirectWithFlash(c, h.Flash, checkoutPath, view.FlashError, appErr.PublicMsg)
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/saadkhan011/calcrew-frontend/internal/http/sessioncookie"
	"github.com/saadkhan011/calcrew-frontend/internal/shared/apperr"
)

const (
	// HeaderCheckoutSession lets API clients without cookies address their session.
	HeaderCheckoutSession = "X-Checkout-Session"
	CtxKeyCheckoutID      = "checkout_session_id"
)

// RequireCheckout resolves the caller's checkout session id from the signed
// cookie, or the X-Checkout-Session header for JSON clients. Without one,
// JSON clients get 404 and browsers are sent back to /donate for a new mount.
func RequireCheckout(codec *sessioncookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := ResolveCheckoutID(c, codec)
		if !ok {
			if WantsJSON(c) {
				Fail(c, apperr.NotFoundErr("No checkout session. Start a new donation."))
				return
			}
			c.Redirect(http.StatusFound, "/donate")
			c.Abort()
			return
		}

		c.Set(CtxKeyCheckoutID, id)
		c.Next()
	}
}

// ResolveCheckoutID reads the session id from the signed cookie, falling back
// to the X-Checkout-Session header for JSON clients.
func ResolveCheckoutID(c *gin.Context, codec *sessioncookie.Codec) (string, bool) {
	if id, ok := codec.Get(c); ok {
		return id, true
	}
	if WantsJSON(c) {
		id := strings.TrimSpace(c.GetHeader(HeaderCheckoutSession))
		return id, id != ""
	}
	return "", false
}

func CheckoutID(c *gin.Context) string {
	if v, ok := c.Get(CtxKeyCheckoutID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

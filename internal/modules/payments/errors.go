package payments

import (
	"errors"
	"fmt"
)

var (
	ErrIntentTransport         = errors.New("payment intent request failed")
	ErrMalformedIntentResponse = errors.New("malformed payment intent response")
	ErrInvalidClientSecret     = errors.New("invalid client secret")
	ErrMissingPaymentMethod    = errors.New("payment method id required")
)

// DeclinedError is a structured error returned by the payment collaborator.
// Message is safe to show to the donor as-is.
type DeclinedError struct {
	Message     string
	Code        string
	DeclineCode string
}

func (e *DeclinedError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("payment declined (%s): %s", e.Code, e.Message)
	}
	return "payment declined: " + e.Message
}

// HTTPStatusError is a non-2xx answer from the intent backend.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("payment intent backend returned %d: %s", e.StatusCode, e.Body)
}

type ErrorKind string

const (
	KindNone             ErrorKind = ""
	KindNetworkOrParsing ErrorKind = "network_or_parsing"
	KindIntentRejected   ErrorKind = "intent_rejected"
	KindDeclined         ErrorKind = "declined"
)

// Classify maps an error from the charge path to its kind and the message
// the donor may see. An empty message means "use the generic text".
func Classify(err error) (ErrorKind, string) {
	if err == nil {
		return KindNone, ""
	}
	var de *DeclinedError
	if errors.As(err, &de) {
		return KindDeclined, de.Message
	}
	var he *HTTPStatusError
	if errors.As(err, &he) {
		return KindIntentRejected, ""
	}
	return KindNetworkOrParsing, ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

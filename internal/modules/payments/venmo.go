package payments

import (
	"net/url"
	"strconv"
	"strings"
)

const DefaultVenmoBaseURL = "https://venmo.com/pay"

// VenmoURL builds the peer-to-peer deep link. The amount is in dollars
// without trailing zeros ("35", "7.5").
func VenmoURL(base string, amountCents int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultVenmoBaseURL
	}
	q := url.Values{}
	q.Set("amount", strconv.FormatFloat(float64(amountCents)/100, 'f', -1, 64))
	q.Set("note", "Donation")
	return base + "?" + q.Encode()
}

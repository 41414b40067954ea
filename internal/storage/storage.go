// Package storage holds the checkout session stores.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/saadkhan011/calcrew-frontend/internal/modules/checkout"
)

const DefaultTTL = 30 * time.Minute

func encodeSession(s checkout.Session) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return b, nil
}

func decodeSession(b []byte) (checkout.Session, error) {
	var s checkout.Session
	if err := json.Unmarshal(b, &s); err != nil {
		return checkout.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return s, nil
}

func ttlOr(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}

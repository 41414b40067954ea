package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIntentPostsDonation(t *testing.T) {
	var got IntentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/payment/create-payment-intent", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"client_secret":"pi_42_secret_xyz"}`))
	}))
	defer srv.Close()

	c := NewIntentClient(srv.URL+"/api/v1/", time.Second)
	secret, err := c.CreateIntent(context.Background(), IntentRequest{
		Amount:    750,
		Recurring: true,
		UserInfo:  &UserInfo{FirstName: "Ada", Email: "ada@example.com", ZipCode: "94107"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_42_secret_xyz", secret)

	assert.Equal(t, int64(750), got.Amount)
	assert.Equal(t, "usd", got.Currency)
	assert.Equal(t, []string{"card"}, got.PaymentMethodTypes)
	assert.True(t, got.Recurring)
	require.NotNil(t, got.UserInfo)
	assert.Equal(t, "94107", got.UserInfo.ZipCode)
}

func TestCreateIntentWireNames(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_, _ = w.Write([]byte(`{"client_secret":"pi_1_secret_2"}`))
	}))
	defer srv.Close()

	_, err := NewIntentClient(srv.URL, time.Second).CreateIntent(context.Background(), IntentRequest{
		Amount:   3500,
		UserInfo: &UserInfo{FirstName: "Ada", ZipCode: "1"},
	})
	require.NoError(t, err)

	assert.Contains(t, raw, "payment_method_types")
	assert.Contains(t, raw, "recurring")
	info, ok := raw["user_info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", info["firstName"])
	assert.Equal(t, "1", info["zipCode"])
}

func TestCreateIntentErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind ErrorKind
		wantErr  error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantKind: KindIntentRejected},
		{name: "bad request", status: http.StatusBadRequest, body: `invalid amount`, wantKind: KindIntentRejected},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantKind: KindNetworkOrParsing, wantErr: ErrMalformedIntentResponse},
		{name: "no secret", status: http.StatusOK, body: `{"client_secret":""}`, wantKind: KindNetworkOrParsing, wantErr: ErrMalformedIntentResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewIntentClient(srv.URL, time.Second).CreateIntent(context.Background(), IntentRequest{Amount: 100})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			kind, msg := Classify(err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Empty(t, msg)

			var he *HTTPStatusError
			if tt.wantKind == KindIntentRejected {
				require.ErrorAs(t, err, &he)
				assert.Equal(t, tt.status, he.StatusCode)
			}
		})
	}
}

func TestCreateIntentTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewIntentClient(url, time.Second).CreateIntent(context.Background(), IntentRequest{Amount: 100})
	assert.ErrorIs(t, err, ErrIntentTransport)
	kind, _ := Classify(err)
	assert.Equal(t, KindNetworkOrParsing, kind)
}

package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() Message {
	return Message{
		FromName: "CalCrew",
		From:     "donations@example.org",
		To:       []string{"ada@example.com"},
		Subject:  "Your donation receipt ($35.00)",
		TextBody: "Thank you",
		HTMLBody: "<p>Thank you</p>",
		Headers:  map[string]string{"X-Checkout-Session": "abc"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Message)
		want   error
	}{
		{"no recipient", func(m *Message) { m.To = nil }, errNoRecipient},
		{"no from", func(m *Message) { m.From = "" }, errNoFrom},
		{"no subject", func(m *Message) { m.Subject = "" }, errNoSubject},
		{"no body", func(m *Message) { m.TextBody, m.HTMLBody = "", "" }, errNoBody},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testMessage()
			tt.mutate(&m)
			assert.ErrorIs(t, m.validate(), tt.want)
		})
	}
	assert.NoError(t, testMessage().validate())
}

func TestBuildMessageMultipart(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	raw, err := buildMessage(testMessage(), "example.org", now)
	require.NoError(t, err)

	assert.Contains(t, raw, "Date: "+now.Format(time.RFC1123Z)+"\r\n")
	assert.Contains(t, raw, "From: CalCrew <donations@example.org>\r\n")
	assert.Contains(t, raw, "To: ada@example.com\r\n")
	assert.Contains(t, raw, "X-Checkout-Session: abc\r\n")
	assert.Contains(t, raw, "@example.org>\r\n")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8")
	assert.True(t, strings.HasSuffix(raw, "--\r\n"))
}

func TestBuildMessageSingleBody(t *testing.T) {
	m := testMessage()
	m.HTMLBody = ""
	raw, err := buildMessage(m, "example.org", time.Now())
	require.NoError(t, err)
	assert.NotContains(t, raw, "multipart")
	assert.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8")

	m.To = nil
	_, err = buildMessage(m, "example.org", time.Now())
	assert.ErrorIs(t, err, errNoRecipient)
}

func TestMailtrapSend(t *testing.T) {
	var (
		gotAuth string
		got     mailtrapPayload
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	m := NewMailtrap(srv.URL, "tok", time.Second)
	msg := testMessage()
	msg.ReplyTo = "help@example.org"
	require.NoError(t, m.Send(context.Background(), msg))

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "donations@example.org", got.From.Email)
	assert.Equal(t, "CalCrew", got.From.Name)
	require.Len(t, got.To, 1)
	assert.Equal(t, "ada@example.com", got.To[0].Email)
	require.NotNil(t, got.ReplyTo)
	assert.Equal(t, "help@example.org", got.ReplyTo.Email)
	assert.Equal(t, "Your donation receipt ($35.00)", got.Subject)
	assert.Equal(t, "<p>Thank you</p>", got.HTML)
	assert.Equal(t, "Transactional", got.Category)
}

func TestMailtrapErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewMailtrap(srv.URL, "bad", time.Second)
	err := m.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	msg := testMessage()
	msg.Subject = ""
	assert.ErrorIs(t, m.Send(context.Background(), msg), errNoSubject)
}

func TestMock(t *testing.T) {
	m := &Mock{}
	require.NoError(t, m.Send(context.Background(), testMessage()))
	assert.Len(t, m.Messages(), 1)

	m.Err = errors.New("down")
	assert.Error(t, m.Send(context.Background(), testMessage()))
	assert.Len(t, m.Messages(), 1)
}

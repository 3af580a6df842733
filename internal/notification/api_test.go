package notification

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

func testMessage() Message {
	return Message{
		From:     "Contact Form <onboarding@resend.dev>",
		To:       []string{"firm@example.com"},
		ReplyTo:  "jane@example.com",
		Subject:  "New Contact Form Submission: Jane Doe",
		HTMLBody: "<p>hello</p>",
		TextBody: "hello",
	}
}

func TestAPISender_Send(t *testing.T) {
	t.Run("Success_PostsEmail", func(t *testing.T) {
		var received apiEmailRequest
		var auth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/emails", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			auth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"id":"abc"}`))
		}))
		defer server.Close()

		sender := NewAPISender(APIConfig{APIKey: "re_test", BaseURL: server.URL + "/", Timeout: time.Second})
		err := sender.Send(context.Background(), testMessage())

		require.NoError(t, err)
		assert.Equal(t, "Bearer re_test", auth)
		assert.Equal(t, []string{"firm@example.com"}, received.To)
		assert.Equal(t, "jane@example.com", received.ReplyTo)
		assert.Equal(t, "<p>hello</p>", received.HTML)
		sender.client.CloseIdleConnections()
	})

	t.Run("Error_NonSuccessStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"invalid from"}`))
		}))
		defer server.Close()

		sender := NewAPISender(APIConfig{APIKey: "re_test", BaseURL: server.URL})
		err := sender.Send(context.Background(), testMessage())

		var sendErr ErrSend
		require.ErrorAs(t, err, &sendErr)
		assert.Equal(t, "api", sendErr.Provider)
		assert.Contains(t, err.Error(), "status 422")
		assert.Contains(t, err.Error(), "invalid from")
		sender.client.CloseIdleConnections()
	})

	t.Run("Error_Unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		sender := NewAPISender(APIConfig{APIKey: "re_test", BaseURL: url})
		err := sender.Send(context.Background(), testMessage())

		var sendErr ErrSend
		assert.ErrorAs(t, err, &sendErr)
	})

	t.Run("Error_MissingKey", func(t *testing.T) {
		sender := NewAPISender(APIConfig{})
		assert.ErrorIs(t, sender.Send(context.Background(), testMessage()), ErrNotificationDisabled)
		assert.Equal(t, DefaultAPIBaseURL, sender.baseURL)
	})

	t.Run("Error_InvalidMessage", func(t *testing.T) {
		sender := NewAPISender(APIConfig{APIKey: "re_test"})
		msg := testMessage()
		msg.Subject = " "

		var invalid ErrInvalidMessage
		assert.ErrorAs(t, sender.Send(context.Background(), msg), &invalid)
	})
}

package apiconnect

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/cashcrush/pkg/api"
)

type stubReminders struct{}

func (stubReminders) SendPaymentReminder(_ context.Context, req *connect.Request[api.SendPaymentReminderRequest]) (*connect.Response[api.SendPaymentReminderResponse], error) {
	if req.Msg.UserID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("user id required"))
	}
	return connect.NewResponse(&api.SendPaymentReminderResponse{
		Amount: decimal.RequireFromString("12.50"),
		SentTo: req.Msg.UserID + "@example.com",
	}), nil
}

func TestJSONCodecRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	path, handler := NewReminderServiceHandler(stubReminders{})
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewReminderServiceClient(http.DefaultClient, server.URL+"/")

	resp, err := client.SendPaymentReminder(context.Background(),
		connect.NewRequest(&api.SendPaymentReminderRequest{UserID: "bob"}))
	require.NoError(t, err)
	assert.True(t, resp.Msg.Amount.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "bob@example.com", resp.Msg.SentTo)

	_, err = client.SendPaymentReminder(context.Background(),
		connect.NewRequest(&api.SendPaymentReminderRequest{}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestUnknownProcedure(t *testing.T) {
	path, handler := NewReminderServiceHandler(stubReminders{})
	assert.Equal(t, "/cashcrush.v1.ReminderService/", path)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path+"Nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJSONCodecEmptyBody(t *testing.T) {
	var msg api.GetCurrentUserRequest
	assert.NoError(t, JSONCodec{}.Unmarshal(nil, &msg))
}

func TestJSONContentTypes(t *testing.T) {
	path, handler := NewReminderServiceHandler(stubReminders{})
	server := httptest.NewServer(handler)
	defer server.Close()

	for _, contentType := range []string{"application/json", "application/json; charset=utf-8"} {
		t.Run(contentType, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, server.URL+path+"SendPaymentReminder",
				strings.NewReader(`{"userId":"bob"}`))
			require.NoError(t, err)
			req.Header.Set("Content-Type", contentType)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			assert.Contains(t, string(body), `"sentTo":"bob@example.com"`)
		})
	}
}

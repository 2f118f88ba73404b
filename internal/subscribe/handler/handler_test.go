package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"anxonews-server/internal/clients/mailerlite"
	"anxonews-server/internal/observability"
	"anxonews-server/internal/subscribe/processor"

	"github.com/gin-gonic/gin"
)

// fakeClient implements processor.SubscriberClient for handler tests.
type fakeClient struct {
	enabled bool
	err     error
	created []string
}

func (f *fakeClient) CreateSubscriber(_ context.Context, email, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, email)
	return nil
}

func (f *fakeClient) IsEnabled() bool { return f.enabled }

func newTestRouter(client *fakeClient) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := observability.NewNopLogger()
	proc := processor.New(client, nil, logger)
	h := New(proc, logger)

	router := gin.New()
	router.POST("/api/subscribe", h.HandleSubscribe)
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestHandleSubscribe_Success(t *testing.T) {
	client := &fakeClient{enabled: true}
	router := newTestRouter(client)

	w := postJSON(router, `{"email":"New@User.com","name":"Ana García"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success || resp.Message != "Suscripción exitosa" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(client.created) != 1 || client.created[0] != "new@user.com" {
		t.Errorf("created = %v, want the normalized email", client.created)
	}
}

func TestHandleSubscribe_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"malformed JSON", `{`, http.StatusBadRequest, msgInvalidEmail},
		{"missing email", `{}`, http.StatusBadRequest, msgInvalidEmail},
		{"invalid email", `{"email":"nope"}`, http.StatusBadRequest, msgInvalidEmail},
		{"short name", `{"email":"new@user.com","name":"A"}`, http.StatusBadRequest, msgNameTooShort},
		{"long name", `{"email":"new@user.com","name":"` + strings.Repeat("a", 101) + `"}`, http.StatusBadRequest, msgNameTooLong},
		{"bad name characters", `{"email":"new@user.com","name":"Ana;DROP"}`, http.StatusBadRequest, msgNameInvalidChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeClient{enabled: true})
			w := postJSON(router, tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if resp.Error != tt.wantMsg {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantMsg)
			}
		})
	}
}

func TestHandleSubscribe_BodyTooLarge(t *testing.T) {
	router := newTestRouter(&fakeClient{enabled: true})
	padding := strings.Repeat(" ", 2048)
	w := postJSON(router, `{"email":"new@user.com"`+padding+`}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleSubscribe_NotConfigured(t *testing.T) {
	router := newTestRouter(&fakeClient{enabled: false})
	w := postJSON(router, `{"email":"new@user.com"}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	if !strings.Contains(w.Body.String(), msgConfigError) {
		t.Errorf("body %s should carry the unavailable message", w.Body.String())
	}
}

func TestHandleSubscribe_AlreadySubscribed(t *testing.T) {
	client := &fakeClient{
		enabled: true,
		err: &mailerlite.UpstreamError{
			StatusCode: 422,
			Message:    "The email has already been taken.",
			Sentinel:   mailerlite.ErrAlreadySubscribed,
		},
	}
	router := newTestRouter(client)
	w := postJSON(router, `{"email":"dup@user.com"}`)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
	}

	var resp struct {
		Error string `json:"error"`
		Debug *struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"debug"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Error != msgAlreadySubscribed {
		t.Errorf("error = %q, want %q", resp.Error, msgAlreadySubscribed)
	}
	if resp.Debug == nil || resp.Debug.Status != 422 {
		t.Errorf("debug = %+v, want upstream status 422", resp.Debug)
	}
}

func TestHandleSubscribe_UpstreamFailure(t *testing.T) {
	client := &fakeClient{
		enabled: true,
		err: &mailerlite.UpstreamError{
			StatusCode: 500,
			Message:    "internal",
			Sentinel:   mailerlite.ErrUpstream,
		},
	}
	router := newTestRouter(client)
	w := postJSON(router, `{"email":"new@user.com"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(w.Body.String(), msgServerError) {
		t.Errorf("body %s should carry the generic failure message", w.Body.String())
	}
}

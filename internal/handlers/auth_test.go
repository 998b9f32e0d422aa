package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"smart_home_face/internal/gateway"
	"smart_home_face/internal/service"
)

func TestSessionHandlers_LoginAndLogout(t *testing.T) {
	auth := &mockAuth{loginUser: testUser}
	s := &service.Service{Auth: auth}
	r := newTestRouter(s, nil)

	// login success
	body := bytes.NewBufferString(`{"username":"bob","password":"pw"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/session/login", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Session service.Session `json:"session"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if !out.Session.Authenticated || auth.lastUsername != "bob" || auth.lastPassword != "pw" {
		t.Fatalf("unexpected login result: %+v", out)
	}

	// logout
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/session/logout", nil))
	if w.Code != http.StatusOK || auth.logoutCalls != 1 {
		t.Fatalf("logout status=%d calls=%d", w.Code, auth.logoutCalls)
	}

	// login missing password → 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/session/login", bytes.NewBufferString(`{"username":"bob"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestSessionHandlers_LoginErrorsMapToStatus(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "rejected credentials",
			err:      &gateway.RejectedError{Status: http.StatusUnauthorized, Message: "Invalid username or password"},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Invalid username or password",
		},
		{
			name:     "remote unreachable",
			err:      gateway.ErrTransport,
			wantCode: http.StatusBadGateway,
			wantMsg:  gateway.NetworkErrorMessage,
		},
		{
			name:     "superseded by logout",
			err:      service.ErrSessionChanged,
			wantCode: http.StatusConflict,
			wantMsg:  service.ErrSessionChanged.Error(),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Auth: &mockAuth{loginErr: tc.err}}, nil)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/session/login", bytes.NewBufferString(`{"username":"bob","password":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.wantMsg {
				t.Fatalf("error message: got %q, want %q", out.Error, tc.wantMsg)
			}
		})
	}
}

func TestSessionHandlers_SignupJSONAndMultipart(t *testing.T) {
	auth := &mockAuth{}
	r := newTestRouter(&service.Service{Auth: auth}, nil)

	// JSON, no face
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/session/signup",
		bytes.NewBufferString(`{"username":"dana","email":"d@example.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("json signup status=%d body=%s", w.Code, w.Body.String())
	}
	if auth.lastSignup.Username != "dana" || auth.lastSignup.HasFace() {
		t.Fatalf("unexpected signup: %+v", auth.lastSignup)
	}

	// multipart with face image
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("username", "erin")
	_ = mw.WriteField("email", "e@example.com")
	_ = mw.WriteField("password", "secret1")
	fw, _ := mw.CreateFormFile("faceImage", "face.jpg")
	_, _ = fw.Write([]byte{0xff, 0xd8, 0xff})
	_ = mw.Close()

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/session/signup", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("multipart signup status=%d body=%s", w.Code, w.Body.String())
	}
	if auth.lastSignup.Username != "erin" || !auth.lastSignup.HasFace() {
		t.Fatalf("face image not forwarded: %+v", auth.lastSignup)
	}
}

func TestSessionHandlers_DemoAndCheck(t *testing.T) {
	auth := &mockAuth{}
	r := newTestRouter(&service.Service{Auth: auth}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/session/demo", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("demo status=%d", w.Code)
	}
	var sess service.Session
	_ = json.Unmarshal(w.Body.Bytes(), &sess)
	if !sess.Demo || !sess.Authenticated {
		t.Fatalf("unexpected session: %+v", sess)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/session/check", nil))
	if w.Code != http.StatusOK || auth.checkCalls != 1 {
		t.Fatalf("check status=%d calls=%d", w.Code, auth.checkCalls)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/session", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("session status=%d", w.Code)
	}
}

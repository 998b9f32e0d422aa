package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"smart_home_face"
	"smart_home_face/internal/logger"
	"smart_home_face/internal/models"
)

// HTTPGateway talks to the live remote service.
type HTTPGateway struct {
	baseURL  string
	client   *http.Client
	retry    RetryConfig
	fallback Gateway
	log      *logger.Logger
}

// HTTPOption configures an HTTPGateway.
type HTTPOption func(*HTTPGateway)

// WithHTTPClient replaces the default client. The default sets no timeout.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(g *HTTPGateway) {
		if c != nil {
			g.client = c
		}
	}
}

// WithRetryConfig sets the retry policy for read-only calls.
func WithRetryConfig(cfg RetryConfig) HTTPOption {
	return func(g *HTTPGateway) { g.retry = cfg }
}

// WithListFallback serves device and sensor lists from fb when the remote
// cannot be reached.
func WithListFallback(fb Gateway) HTTPOption {
	return func(g *HTTPGateway) { g.fallback = fb }
}

// NewHTTPGateway returns a gateway for the service at baseURL.
func NewHTTPGateway(baseURL string, log *logger.Logger, opts ...HTTPOption) *HTTPGateway {
	g := &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		retry:   DefaultRetryConfig(),
		log:     logger.OrNop(log),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type toggleRequest struct {
	DeviceID models.DeviceID     `json:"deviceId"`
	Status   models.DeviceStatus `json:"status"`
}

func (g *HTTPGateway) Login(ctx context.Context, username, password string) (smart_home_face.AuthResponse, error) {
	var out smart_home_face.AuthResponse
	err := g.postJSON(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &out)
	return authResult(out, err)
}

// Signup sends multipart when a face image is attached and JSON otherwise.
func (g *HTTPGateway) Signup(ctx context.Context, req smart_home_face.SignupRequest) (smart_home_face.AuthResponse, error) {
	var out smart_home_face.AuthResponse
	if !req.HasFace() {
		err := g.postJSON(ctx, "/auth/signup", signupRequest{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		}, &out)
		return authResult(out, err)
	}

	body, ctype, err := multipartBody([]formField{
		{"username", req.Username},
		{"email", req.Email},
		{"password", req.Password},
	}, "faceImage", *req.FaceImage)
	if err != nil {
		return smart_home_face.AuthResponse{Message: Message(err)}, err
	}
	err = g.do(ctx, http.MethodPost, "/auth/signup", "", ctype, body, &out)
	return authResult(out, err)
}

func (g *HTTPGateway) Me(ctx context.Context, token string) (smart_home_face.MeResponse, error) {
	var out smart_home_face.MeResponse
	err := WithRetry(ctx, g.retry, func() error {
		out = smart_home_face.MeResponse{}
		return g.do(ctx, http.MethodGet, "/auth/me", token, "", nil, &out)
	})
	if err == nil {
		err = checkSuccess(out.Success, out.Message)
	}
	if err != nil {
		return smart_home_face.MeResponse{Message: Message(err)}, err
	}
	return out, nil
}

func (g *HTTPGateway) ListDevices(ctx context.Context) ([]models.Device, error) {
	var out []models.Device
	err := WithRetry(ctx, g.retry, func() error {
		out = nil
		return g.do(ctx, http.MethodGet, "/device/list", "", "", nil, &out)
	})
	if err == nil {
		return out, nil
	}
	if !g.canFallBack(ctx, err) {
		return nil, err
	}
	g.log.Warnw("gateway_fallback_devices", "err", err)
	return g.fallback.ListDevices(ctx)
}

func (g *HTTPGateway) ToggleDevice(ctx context.Context, id models.DeviceID, status models.DeviceStatus) (smart_home_face.ToggleResponse, error) {
	var out smart_home_face.ToggleResponse
	err := g.postJSON(ctx, "/device/toggle", toggleRequest{DeviceID: id, Status: status}, &out)
	if err == nil {
		err = checkSuccess(out.Success, out.Message)
	}
	if err != nil {
		return smart_home_face.ToggleResponse{Message: Message(err)}, err
	}
	return out, nil
}

func (g *HTTPGateway) ListSensors(ctx context.Context) ([]models.Sensor, error) {
	var out []models.Sensor
	err := WithRetry(ctx, g.retry, func() error {
		out = nil
		return g.do(ctx, http.MethodGet, "/sensors", "", "", nil, &out)
	})
	if err == nil {
		return out, nil
	}
	if !g.canFallBack(ctx, err) {
		return nil, err
	}
	g.log.Warnw("gateway_fallback_sensors", "err", err)
	return g.fallback.ListSensors(ctx)
}

func (g *HTTPGateway) AuthenticateFace(ctx context.Context, img models.CapturedImage) (smart_home_face.FaceAuthResponse, error) {
	var out smart_home_face.FaceAuthResponse
	body, ctype, err := multipartBody(nil, "image", img)
	if err == nil {
		err = g.do(ctx, http.MethodPost, "/face/authenticate", "", ctype, body, &out)
	}
	if err == nil {
		err = checkSuccess(out.Success, out.Message)
	}
	if err != nil {
		return smart_home_face.FaceAuthResponse{Message: Message(err)}, err
	}
	return out, nil
}

func (g *HTTPGateway) RegisterFace(ctx context.Context, img models.CapturedImage, username string) (smart_home_face.FaceRegisterResponse, error) {
	var out smart_home_face.FaceRegisterResponse
	body, ctype, err := multipartBody([]formField{{"username", username}}, "image", img)
	if err == nil {
		err = g.do(ctx, http.MethodPost, "/face/register", "", ctype, body, &out)
	}
	if err == nil {
		err = checkSuccess(out.Success, out.Message)
	}
	if err != nil {
		return smart_home_face.FaceRegisterResponse{Message: Message(err)}, err
	}
	return out, nil
}

// canFallBack is true only for transport failures. An answer the remote
// service gave on purpose is never masked.
func (g *HTTPGateway) canFallBack(ctx context.Context, err error) bool {
	return g.fallback != nil && ctx.Err() == nil && errors.Is(err, ErrTransport)
}

func authResult(out smart_home_face.AuthResponse, err error) (smart_home_face.AuthResponse, error) {
	if err == nil {
		err = checkSuccess(out.Success, out.Message)
	}
	if err != nil {
		return smart_home_face.AuthResponse{Message: Message(err)}, err
	}
	return out, nil
}

func (g *HTTPGateway) postJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return g.do(ctx, http.MethodPost, path, "", "application/json", bytes.NewReader(payload), out)
}

// do performs one round-trip. Non-2xx answers with a message become
// *RejectedError; everything else that goes wrong wraps ErrTransport.
func (g *HTTPGateway) do(ctx context.Context, method, path, token, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Debugw("gateway_request_failed", "method", method, "path", path, "err", err)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &envelope) == nil && envelope.Message != "" {
			return reject(resp.StatusCode, envelope.Message)
		}
		return fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrTransport, path, err)
	}
	return nil
}

type formField struct {
	name, value string
}

var errNoImage = reject(http.StatusBadRequest, "No image provided")

func multipartBody(fields []formField, fileField string, img models.CapturedImage) (io.Reader, string, error) {
	if img.Empty() {
		return nil, "", errNoImage
	}
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f.name, err)
		}
	}

	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = models.MIMETypeJPEG
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename="capture.jpg"`, fileField))
	h.Set("Content-Type", mimeType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create part: %w", err)
	}
	if _, err := part.Write(img.Data); err != nil {
		return nil, "", fmt.Errorf("write image: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

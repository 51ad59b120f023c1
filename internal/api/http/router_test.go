package http

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfdc-gateway/internal/api/http/middleware"
	"sfdc-gateway/internal/salesforce"
	"sfdc-gateway/internal/tool"
	"sfdc-gateway/internal/tool/registry"
)

type echoTool struct{}

func (echoTool) Name() string        { return "sfdc_whoami" }
func (echoTool) Description() string { return "identity claims" }
func (echoTool) Schema() tool.Schema {
	return tool.Schema{Type: "object", Properties: map[string]tool.Property{}}
}

func (echoTool) Execute(_ context.Context, _ *salesforce.Session, _ map[string]any) (tool.Result, error) {
	return tool.Text(`{"user_id":"005xx0000012Q9P"}`), nil
}

type stubDispatcher struct {
	result tool.Result
	err    error
}

func (d stubDispatcher) Invoke(_ context.Context, _ string, _ map[string]any) (tool.Result, error) {
	return d.result, d.err
}

func buildRouterForTest(apiKey string, d ToolDispatcher) *server.Hertz {
	reg := registry.New()
	reg.Register(echoTool{})
	h := NewHandler(d, reg, nil)
	mw := middleware.NewMiddleware(nil)
	r := NewRouter(h, mw)
	r.SetAPIKey(apiKey)
	return r.Build(":0")
}

func performJSON(s *server.Hertz, method, path string, body []byte, headers ...ut.Header) *ut.ResponseRecorder {
	return ut.PerformRequest(s.Engine, method, path, &ut.Body{Body: bytes.NewReader(body), Len: len(body)}, headers...)
}

func TestRouter_HealthNeedsNoKey(t *testing.T) {
	s := buildRouterForTest("sekrit", stubDispatcher{})

	w := performJSON(s, "GET", "/api/health", nil)
	assert.Equal(t, 200, w.Result().StatusCode())
	assert.Contains(t, string(w.Result().Body()), "sfdc-gateway")
}

func TestRouter_MetricsNeedsNoKey(t *testing.T) {
	s := buildRouterForTest("sekrit", stubDispatcher{})

	w := performJSON(s, "GET", "/metrics", nil)
	assert.Equal(t, 200, w.Result().StatusCode())
}

func TestRouter_ToolsRejectedWithoutKey(t *testing.T) {
	s := buildRouterForTest("sekrit", stubDispatcher{result: tool.Text("ok")})

	w := performJSON(s, "GET", "/api/tools", nil)
	assert.Equal(t, 401, w.Result().StatusCode())

	w = performJSON(s, "POST", "/api/tools/call", []byte(`{"name":"sfdc_whoami"}`))
	assert.Equal(t, 401, w.Result().StatusCode())

	w = performJSON(s, "POST", "/api/tools/call", []byte(`{"name":"sfdc_whoami"}`),
		ut.Header{Key: "X-API-Key", Value: "wrong"})
	assert.Equal(t, 401, w.Result().StatusCode())
}

func TestRouter_ToolsAcceptedWithKey(t *testing.T) {
	s := buildRouterForTest("sekrit", stubDispatcher{result: tool.Text("ok")})

	w := performJSON(s, "GET", "/api/tools", nil, ut.Header{Key: "X-API-Key", Value: "sekrit"})
	require.Equal(t, 200, w.Result().StatusCode())

	var payload struct {
		Tools []registry.CatalogEntry `json:"tools"`
		Total int                     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Result().Body(), &payload))
	require.Equal(t, 1, payload.Total)
	assert.Equal(t, "sfdc_whoami", payload.Tools[0].Name)
}

func TestRouter_MetricsCanBeDisabled(t *testing.T) {
	reg := registry.New()
	h := NewHandler(stubDispatcher{}, reg, nil)
	r := NewRouter(h, middleware.NewMiddleware(nil))
	r.SetMetricsEnabled(false)
	s := r.Build(":0")

	w := performJSON(s, "GET", "/metrics", nil)
	assert.Equal(t, 404, w.Result().StatusCode())

	w = performJSON(s, "GET", "/api/health", nil)
	assert.Equal(t, 200, w.Result().StatusCode())
}

func TestRouter_CORSOriginAllowlist(t *testing.T) {
	reg := registry.New()
	h := NewHandler(stubDispatcher{}, reg, nil)
	r := NewRouter(h, middleware.NewMiddleware(nil))
	r.SetCORS(true, []string{"https://console.example.com"})
	s := r.Build(":0")

	w := performJSON(s, "GET", "/api/health", nil,
		ut.Header{Key: "Origin", Value: "https://console.example.com"})
	assert.Equal(t, 200, w.Result().StatusCode())
	assert.Equal(t, "https://console.example.com",
		string(w.Result().Header.Peek("Access-Control-Allow-Origin")))

	w = performJSON(s, "GET", "/api/health", nil,
		ut.Header{Key: "Origin", Value: "https://evil.example.com"})
	assert.Equal(t, 200, w.Result().StatusCode())
	assert.Empty(t, string(w.Result().Header.Peek("Access-Control-Allow-Origin")))
}

func TestRouter_CORSCanBeDisabled(t *testing.T) {
	reg := registry.New()
	h := NewHandler(stubDispatcher{}, reg, nil)
	r := NewRouter(h, middleware.NewMiddleware(nil))
	r.SetCORS(false, nil)
	s := r.Build(":0")

	w := performJSON(s, "GET", "/api/health", nil,
		ut.Header{Key: "Origin", Value: "https://console.example.com"})
	assert.Equal(t, 200, w.Result().StatusCode())
	assert.Empty(t, string(w.Result().Header.Peek("Access-Control-Allow-Origin")))
}

func TestRouter_EmptyKeyDisablesGate(t *testing.T) {
	s := buildRouterForTest("", stubDispatcher{result: tool.Text("ok")})

	w := performJSON(s, "GET", "/api/tools", nil)
	assert.Equal(t, 200, w.Result().StatusCode())
}

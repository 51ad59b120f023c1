// Copyright 2026 fanjia1024
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"sfdc-gateway/internal/salesforce"
	"sfdc-gateway/internal/tool"
	"sfdc-gateway/internal/tool/registry"
	"sfdc-gateway/pkg/log"
	"sfdc-gateway/pkg/metrics"
)

// ToolDispatcher Handler 对派发层的依赖
type ToolDispatcher interface {
	Invoke(ctx context.Context, name string, args map[string]any) (tool.Result, error)
}

// Handler HTTP 处理器
type Handler struct {
	dispatcher ToolDispatcher
	registry   *registry.Registry
	logger     *log.Logger
}

// NewHandler 创建新的 HTTP 处理器
func NewHandler(dispatcher ToolDispatcher, reg *registry.Registry, logger *log.Logger) *Handler {
	if logger == nil {
		logger, _ = log.NewLogger(nil)
	}
	return &Handler{
		dispatcher: dispatcher,
		registry:   reg,
		logger:     logger,
	}
}

// callRequest POST /api/tools/call 的请求体
type callRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// CallTool 派发一次工具调用
// POST /api/tools/call
func (h *Handler) CallTool(c context.Context, ctx *app.RequestContext) {
	var req callRequest
	if err := json.Unmarshal(ctx.Request.Body(), &req); err != nil {
		ctx.JSON(consts.StatusBadRequest, map[string]string{
			"error": "request body must be JSON with a name and an arguments object",
		})
		return
	}
	if req.Name == "" {
		ctx.JSON(consts.StatusBadRequest, map[string]string{
			"error": "name is required",
		})
		return
	}

	result, err := h.dispatcher.Invoke(c, req.Name, req.Arguments)
	if err != nil {
		h.writeDispatchError(ctx, req.Name, err)
		return
	}
	ctx.JSON(consts.StatusOK, result)
}

// writeDispatchError 将派发错误映射到 HTTP 状态码。
// 工具内部的业务失败不会走到这里，它们以 isError=true 的 200 返回。
func (h *Handler) writeDispatchError(ctx *app.RequestContext, name string, err error) {
	var ve *tool.ValidationError
	var ae *salesforce.AuthError

	switch {
	case errors.Is(err, tool.ErrUnknownTool):
		ctx.JSON(consts.StatusNotFound, map[string]string{
			"error": err.Error(),
		})
	case errors.As(err, &ve):
		ctx.JSON(consts.StatusBadRequest, map[string]any{
			"error":      "invalid arguments",
			"violations": ve.Violations,
		})
	case errors.As(err, &ae):
		h.logger.Error("backend authentication failed", "tool", name, "status", ae.StatusCode)
		ctx.JSON(consts.StatusBadGateway, map[string]string{
			"error": "backend authentication failed",
		})
	default:
		h.logger.Error("tool call failed", "tool", name, "error", err)
		ctx.JSON(consts.StatusInternalServerError, map[string]string{
			"error": "internal error",
		})
	}
}

// ListTools 返回工具目录
// GET /api/tools
func (h *Handler) ListTools(c context.Context, ctx *app.RequestContext) {
	catalog := h.registry.Catalog()
	ctx.JSON(consts.StatusOK, map[string]any{
		"tools": catalog,
		"total": len(catalog),
	})
}

// HealthCheck 健康检查
// GET /api/health
func (h *Handler) HealthCheck(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]any{
		"status":    "ok",
		"service":   "sfdc-gateway",
		"timestamp": time.Now().Unix(),
	})
}

// Metrics 输出 Prometheus 指标
// GET /metrics
func (h *Handler) Metrics(c context.Context, ctx *app.RequestContext) {
	var buf bytes.Buffer
	if err := metrics.WritePrometheus(&buf); err != nil {
		ctx.JSON(consts.StatusInternalServerError, map[string]string{
			"error": "failed to gather metrics",
		})
		return
	}
	ctx.Data(consts.StatusOK, "text/plain; version=0.0.4; charset=utf-8", buf.Bytes())
}

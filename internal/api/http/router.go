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
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/config"

	"sfdc-gateway/internal/api/http/middleware"
)

// Router HTTP 路由器
type Router struct {
	handler        *Handler
	middleware     *middleware.Middleware
	apiKey         string
	corsEnabled    bool
	corsOrigins    []string
	metricsEnabled bool
}

// NewRouter 创建新的 HTTP 路由器
func NewRouter(handler *Handler, mw *middleware.Middleware) *Router {
	return &Router{
		handler:        handler,
		middleware:     mw,
		corsEnabled:    true,
		metricsEnabled: true,
	}
}

// SetAPIKey 设置 /api/tools* 的共享密钥；空串表示不校验
func (r *Router) SetAPIKey(key string) {
	r.apiKey = key
}

// SetCORS 按配置开关 CORS；origins 为空时放行所有来源
func (r *Router) SetCORS(enable bool, origins []string) {
	r.corsEnabled = enable
	r.corsOrigins = origins
}

// SetMetricsEnabled 按配置开关 /metrics 暴露
func (r *Router) SetMetricsEnabled(enable bool) {
	r.metricsEnabled = enable
}

// Build 构建 Hertz 实例并挂载路由
func (r *Router) Build(addr string, opts ...config.Option) *server.Hertz {
	opts = append([]config.Option{server.WithHostPorts(addr)}, opts...)
	h := server.New(opts...)

	h.Use(r.middleware.RequestLog())
	if r.corsEnabled {
		h.Use(r.middleware.CORS(r.corsOrigins))
	}

	// 健康检查与指标不鉴权
	h.GET("/api/health", r.handler.HealthCheck)
	if r.metricsEnabled {
		h.GET("/metrics", r.handler.Metrics)
	}

	tools := h.Group("/api/tools", r.middleware.APIKey(r.apiKey))
	{
		tools.GET("", r.handler.ListTools)
		tools.POST("/call", r.handler.CallTool)
	}

	return h
}

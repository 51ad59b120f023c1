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

package middleware

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"

	"sfdc-gateway/pkg/log"
)

// Middleware 中间件管理器
type Middleware struct {
	logger *log.Logger
}

// NewMiddleware 创建新的中间件管理器
func NewMiddleware(logger *log.Logger) *Middleware {
	if logger == nil {
		logger, _ = log.NewLogger(nil)
	}
	return &Middleware{logger: logger}
}

// APIKey 校验 X-API-Key 请求头。key 为空时网关对外不设防，仅用于本地开发。
func (m *Middleware) APIKey(key string) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		if key == "" {
			ctx.Next(c)
			return
		}
		got := ctx.Request.Header.Get("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			ctx.AbortWithStatusJSON(consts.StatusUnauthorized, map[string]string{
				"error": "invalid or missing API key",
			})
			return
		}
		ctx.Next(c)
	}
}

// CORS 跨域响应头。allowOrigins 为空时放行所有来源；
// 非空时仅回显命中白名单的 Origin。
func (m *Middleware) CORS(allowOrigins []string) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		origin := "*"
		if len(allowOrigins) > 0 {
			got := ctx.Request.Header.Get("Origin")
			if !originAllowed(allowOrigins, got) {
				if string(ctx.Method()) == consts.MethodOptions {
					ctx.AbortWithStatus(consts.StatusNoContent)
					return
				}
				ctx.Next(c)
				return
			}
			origin = got
			ctx.Header("Vary", "Origin")
		}
		ctx.Header("Access-Control-Allow-Origin", origin)
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-API-Key")
		ctx.Header("Access-Control-Max-Age", "86400")

		if string(ctx.Method()) == consts.MethodOptions {
			ctx.AbortWithStatus(consts.StatusNoContent)
			return
		}
		ctx.Next(c)
	}
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

// RequestLog 为每个请求生成 request_id 并记录耗时
func (m *Middleware) RequestLog() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		requestID := uuid.NewString()
		ctx.Header("X-Request-Id", requestID)

		ctx.Next(c)

		m.logger.Info("request handled",
			"request_id", requestID,
			"method", string(ctx.Method()),
			"path", string(ctx.Path()),
			"status", ctx.Response.StatusCode(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

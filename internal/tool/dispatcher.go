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

package tool

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"sfdc-gateway/internal/salesforce"
	"sfdc-gateway/pkg/log"
	"sfdc-gateway/pkg/metrics"
	"sfdc-gateway/pkg/tracing"
)

// ErrUnknownTool 调用了未注册的工具（协议级错误，不包装为 Result）
var ErrUnknownTool = errors.New("unknown tool")

// Registry Dispatcher 只读的工具目录
type Registry interface {
	Get(name string) (Tool, bool)
	List() []Tool
}

// SessionProvider 每次派发获取一个新的后端会话
type SessionProvider interface {
	Acquire(ctx context.Context) (*salesforce.Session, error)
}

// Dispatcher 校验入参、获取会话、执行工具并归一化结果。
// 每次派发相互独立，不携带任何跨请求状态。
type Dispatcher struct {
	registry Registry
	sessions SessionProvider
	logger   *log.Logger
}

// NewDispatcher 创建 Dispatcher；registry 在进程启动后不再变更
func NewDispatcher(registry Registry, sessions SessionProvider, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger, _ = log.NewLogger(nil)
	}
	return &Dispatcher{
		registry: registry,
		sessions: sessions,
		logger:   logger,
	}
}

// Invoke 派发一次工具调用。
// 未注册工具与 schema 违例作为 error 返回（协议级）；AuthError 原样上抛；
// 工具报告的业务失败以 Result.IsError=true 返回，不作为 error。
func (d *Dispatcher) Invoke(ctx context.Context, name string, args map[string]any) (Result, error) {
	t, ok := d.registry.Get(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	if args == nil {
		args = map[string]any{}
	}
	if err := ValidateInput(t.Schema(), args); err != nil {
		return Result{}, err
	}

	dispatchID := uuid.NewString()
	ctx, span := tracing.StartToolSpan(ctx, name, dispatchID)
	defer span.End()

	session, err := d.sessions.Acquire(ctx)
	if err != nil {
		d.logger.Error("session acquire failed", "tool", name, "dispatch_id", dispatchID, "error", err)
		return Result{}, err
	}

	start := time.Now()
	result, err := t.Execute(ctx, session, args)
	elapsed := time.Since(start)

	metrics.ToolCallDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case result.IsError:
		outcome = "domain_error"
	}
	metrics.ToolCallTotal.WithLabelValues(name, outcome).Inc()

	if err != nil {
		d.logger.Error("tool execution failed", "tool", name, "dispatch_id", dispatchID, "error", err)
		return Result{}, fmt.Errorf("execute tool %s: %w", name, err)
	}

	d.logger.Info("tool dispatched",
		"tool", name,
		"dispatch_id", dispatchID,
		"is_error", result.IsError,
		"duration_ms", elapsed.Milliseconds(),
	)
	return result, nil
}

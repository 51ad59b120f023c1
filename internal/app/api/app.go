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

package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzslog "github.com/hertz-contrib/logger/slog"
	"github.com/hertz-contrib/obs-opentelemetry/provider"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"

	"sfdc-gateway/internal/api/http"
	"sfdc-gateway/internal/api/http/middleware"
	"sfdc-gateway/internal/app"
	"sfdc-gateway/internal/salesforce"
	"sfdc-gateway/internal/tool"
	"sfdc-gateway/internal/tool/builtin"
	"sfdc-gateway/internal/tool/registry"
	"sfdc-gateway/pkg/utils"
)

// otelProviderShutdown 用于优雅关闭时关闭 OpenTelemetry provider
type otelProviderShutdown interface {
	Shutdown(ctx context.Context) error
}

// App API 应用（装配 CredentialProvider、Client、Registry、Dispatcher 与 HTTP 层）
type App struct {
	config       *app.Bootstrap
	router       *http.Router
	hertz        *server.Hertz
	otelProvider otelProviderShutdown
}

// NewApp 创建 API 应用（由 cmd/api 调用）
func NewApp(bootstrap *app.Bootstrap) (*App, error) {
	cfg := bootstrap.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Salesforce.TokenURL == "" {
		return nil, fmt.Errorf("salesforce.token_url is required")
	}
	if bootstrap.ClientID == "" || bootstrap.ClientSecret == "" {
		return nil, fmt.Errorf("salesforce client credentials are required")
	}

	var provOpts []salesforce.Option
	if cfg.Salesforce.TokenRateLimit > 0 {
		provOpts = append(provOpts, salesforce.WithRateLimit(cfg.Salesforce.TokenRateLimit, cfg.Salesforce.TokenRateLimitBurst))
	}
	if d := parseDuration(cfg.Salesforce.Timeout, 0); d > 0 {
		provOpts = append(provOpts, salesforce.WithExchangeTimeout(d))
	}
	sessions := salesforce.NewCredentialProvider(cfg.Salesforce.TokenURL, bootstrap.ClientID, bootstrap.ClientSecret, provOpts...)

	var clientOpts []salesforce.ClientOption
	if cfg.Salesforce.APIVersion != "" {
		clientOpts = append(clientOpts, salesforce.WithAPIVersion(cfg.Salesforce.APIVersion))
	}
	if d := parseDuration(cfg.Salesforce.Timeout, 0); d > 0 {
		clientOpts = append(clientOpts, salesforce.WithTimeout(d))
	}
	client := salesforce.NewClient(clientOpts...)

	reg := registry.New()
	builtin.RegisterBuiltin(reg, client)

	dispatcher := tool.NewDispatcher(reg, sessions, bootstrap.Logger)

	handler := http.NewHandler(dispatcher, reg, bootstrap.Logger)
	mw := middleware.NewMiddleware(bootstrap.Logger)
	router := http.NewRouter(handler, mw)
	router.SetAPIKey(cfg.API.APIKey)
	router.SetCORS(cfg.API.CORS.Enable, cfg.API.CORS.AllowOrigins)
	router.SetMetricsEnabled(cfg.Monitoring.Prometheus.Enable)

	return &App{
		config: bootstrap,
		router: router,
	}, nil
}

// Run 启动 HTTP 服务（阻塞直到 Shutdown 或出错）
func (a *App) Run() error {
	cfg := a.config.Config

	host := utils.CoalesceString(cfg.API.Host, "0.0.0.0")
	port := utils.DefaultInt(cfg.API.Port, 8080)
	addr := fmt.Sprintf("%s:%d", host, port)

	// hertz 框架日志走与业务相同的 slog 输出
	var output io.Writer = os.Stdout
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		output = f
	}
	levelVar := &slog.LevelVar{}
	switch cfg.Log.Level {
	case "debug":
		levelVar.Set(slog.LevelDebug)
	case "warn":
		levelVar.Set(slog.LevelWarn)
	case "error":
		levelVar.Set(slog.LevelError)
	default:
		levelVar.Set(slog.LevelInfo)
	}
	hertzLogger := hertzslog.NewLogger(
		hertzslog.WithOutput(output),
		hertzslog.WithLevel(levelVar),
	)
	hlog.SetLogger(hertzLogger)

	// 可选：启用链路追踪（OpenTelemetry）
	if cfg.Monitoring.Tracing.Enable {
		serviceName := cfg.Monitoring.Tracing.ServiceName
		if serviceName == "" {
			serviceName = "sfdc-gateway"
		}
		exportEndpoint := cfg.Monitoring.Tracing.ExportEndpoint
		if exportEndpoint == "" {
			exportEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
		}
		if exportEndpoint != "" {
			opts := []provider.Option{
				provider.WithServiceName(serviceName),
				provider.WithExportEndpoint(exportEndpoint),
			}
			if cfg.Monitoring.Tracing.Insecure {
				opts = append(opts, provider.WithInsecure())
			}
			p := provider.NewOpenTelemetryProvider(opts...)
			a.otelProvider = p
			tracerOpt, tracerCfg := hertztracing.NewServerTracer()
			a.hertz = a.router.Build(addr, tracerOpt)
			a.hertz.Use(hertztracing.ServerMiddleware(tracerCfg))
			a.config.Logger.Info("tracing enabled", "service_name", serviceName, "endpoint", exportEndpoint)
		} else {
			a.hertz = a.router.Build(addr)
		}
	} else {
		a.hertz = a.router.Build(addr)
	}

	a.config.Logger.Info("gateway listening", "addr", addr)
	return a.hertz.Run()
}

// Shutdown 优雅关闭（传入 ctx 以支持超时，如 cmd 层 WithTimeout）
func (a *App) Shutdown(ctx context.Context) error {
	if a.otelProvider != nil {
		_ = a.otelProvider.Shutdown(ctx)
	}
	if a.hertz != nil {
		return a.hertz.Shutdown(ctx)
	}
	return nil
}

// parseDuration 解析时长字符串，无效或空时返回 defaultVal
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

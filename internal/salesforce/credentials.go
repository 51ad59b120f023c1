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

package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"sfdc-gateway/pkg/metrics"
	"sfdc-gateway/pkg/tracing"
)

// Session 后端会话描述符：每次工具调用新建，调用结束即丢弃，不缓存不共享
type Session struct {
	InstanceURL string
	AccessToken string
}

// CredentialProvider OAuth2 client-credentials 凭据交换。
// 每次 Acquire 都做一次完整交换，不做缓存与重试；token 生命周期由后端管理。
type CredentialProvider struct {
	tokenURL     string
	clientID     string
	clientSecret string
	client       *resty.Client
	limiter      *rate.Limiter
}

// Option CredentialProvider 可选配置
type Option func(*CredentialProvider)

// WithRateLimit 对 token 交换限流（防止高负载下打满认证端点的速率配额）
func WithRateLimit(rps float64, burst int) Option {
	return func(p *CredentialProvider) {
		if rps > 0 {
			if burst <= 0 {
				burst = 1
			}
			p.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithExchangeTimeout 设置单次交换的超时
func WithExchangeTimeout(d time.Duration) Option {
	return func(p *CredentialProvider) {
		if d > 0 {
			p.client.SetTimeout(d)
		}
	}
}

// NewCredentialProvider 创建凭据提供者
func NewCredentialProvider(tokenURL, clientID, clientSecret string, opts ...Option) *CredentialProvider {
	client := resty.New()
	client.SetTimeout(30 * time.Second)

	p := &CredentialProvider{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       client,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// tokenResponse token endpoint 的 JSON 响应
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
}

// Acquire 执行一次 client-credentials 交换，返回新的 Session。
// 非 2xx 返回 *AuthError（含状态码与响应体）；网络失败原样上抛，由调用方决定是否重试。
func (p *CredentialProvider) Acquire(ctx context.Context) (*Session, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("token exchange rate limit: %w", err)
		}
	}

	ctx, span := tracing.StartTokenExchangeSpan(ctx, p.tokenURL)
	defer span.End()

	resp, err := p.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     p.clientID,
			"client_secret": p.clientSecret,
		}).
		Post(p.tokenURL)
	if err != nil {
		metrics.TokenExchangeTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("token exchange request: %w", err)
	}
	if resp.IsError() {
		metrics.TokenExchangeTotal.WithLabelValues("error").Inc()
		return nil, &AuthError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var tok tokenResponse
	if err := json.Unmarshal(resp.Body(), &tok); err != nil {
		metrics.TokenExchangeTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tok.AccessToken == "" || tok.InstanceURL == "" {
		metrics.TokenExchangeTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("token response missing access_token or instance_url")
	}

	metrics.TokenExchangeTotal.WithLabelValues("ok").Inc()
	return &Session{InstanceURL: tok.InstanceURL, AccessToken: tok.AccessToken}, nil
}

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
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/prometheus/client_golang/prometheus"

	"sfdc-gateway/pkg/metrics"
	"sfdc-gateway/pkg/tracing"
)

// DefaultAPIVersion 默认 REST API 版本
const DefaultAPIVersion = "v59.0"

// Client 对象 API 门面：query / retrieve / create / update / identity。
// 本身无状态；每个操作都要求传入有效 Session。
type Client struct {
	http       *resty.Client
	apiVersion string
}

// ClientOption Client 可选配置
type ClientOption func(*Client)

// WithAPIVersion 覆盖 REST API 版本（如 "v59.0"）
func WithAPIVersion(v string) ClientOption {
	return func(c *Client) {
		if v != "" {
			c.apiVersion = v
		}
	}
}

// WithTimeout 设置单次后端调用超时
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// NewClient 创建后端门面
func NewClient(opts ...ClientOption) *Client {
	client := resty.New()
	client.SetTimeout(30 * time.Second)

	c := &Client{
		http:       client,
		apiVersion: DefaultAPIVersion,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// SaveResult create/update 的结构化结果：后端以 success 标志报告业务规则失败，不抛错
type SaveResult struct {
	ID      string      `json:"id,omitempty"`
	Success bool        `json:"success"`
	Errors  []SaveError `json:"errors,omitempty"`
}

// SaveError 单条后端错误
type SaveError struct {
	Message    string   `json:"message"`
	StatusCode string   `json:"statusCode,omitempty"`
	Fields     []string `json:"fields,omitempty"`
}

// ErrorDetail 拼接全部错误消息，供 ToolResult 文本使用
func (r *SaveResult) ErrorDetail() string {
	if len(r.Errors) == 0 {
		return "unknown backend error"
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		if e.StatusCode != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.StatusCode, e.Message))
		} else {
			msgs = append(msgs, e.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

// queryResponse query endpoint 的 JSON 响应
type queryResponse struct {
	TotalSize int              `json:"totalSize"`
	Done      bool             `json:"done"`
	Records   []map[string]any `json:"records"`
}

// restError 后端错误响应数组的单个元素
type restError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// Query 执行只读 SOQL 查询
func (c *Client) Query(ctx context.Context, s *Session, soql string) ([]map[string]any, error) {
	ctx, span := tracing.StartBackendSpan(ctx, "query", "")
	defer span.End()
	timer := prometheus.NewTimer(metrics.BackendRequestDuration.WithLabelValues("query"))
	defer timer.ObserveDuration()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.AccessToken).
		SetQueryParam("q", soql).
		Get(s.InstanceURL + "/services/data/" + c.apiVersion + "/query")
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	if resp.IsError() {
		return nil, &QueryError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}

	var out queryResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	return out.Records, nil
}

// Retrieve 按主键取单条记录
func (c *Client) Retrieve(ctx context.Context, s *Session, objectType, id string) (map[string]any, error) {
	ctx, span := tracing.StartBackendSpan(ctx, "retrieve", objectType)
	defer span.End()
	timer := prometheus.NewTimer(metrics.BackendRequestDuration.WithLabelValues("retrieve"))
	defer timer.ObserveDuration()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.AccessToken).
		Get(c.sobjectURL(s, objectType, id))
	if err != nil {
		return nil, fmt.Errorf("retrieve %s %s: %w", objectType, id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, &NotFoundError{ObjectType: objectType, ID: id}
	}
	if resp.IsError() {
		return nil, &QueryError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}

	var record map[string]any
	if err := json.Unmarshal(resp.Body(), &record); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return record, nil
}

// Create 新建记录。业务规则失败（如对象校验规则）以 SaveResult.Success=false 报告，不作为 error。
func (c *Client) Create(ctx context.Context, s *Session, objectType string, fields map[string]any) (*SaveResult, error) {
	ctx, span := tracing.StartBackendSpan(ctx, "create", objectType)
	defer span.End()
	timer := prometheus.NewTimer(metrics.BackendRequestDuration.WithLabelValues("create"))
	defer timer.ObserveDuration()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.AccessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(fields).
		Post(s.InstanceURL + "/services/data/" + c.apiVersion + "/sobjects/" + objectType)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", objectType, err)
	}
	if resp.StatusCode() == http.StatusBadRequest {
		return failedSaveResult(resp.Body(), resp.String()), nil
	}
	if resp.IsError() {
		return nil, &QueryError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}

	var result SaveResult
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("decode create response: %w", err)
	}
	return &result, nil
}

// Update 修改记录。成功时后端返回 204；业务规则失败同 Create，以 SaveResult 报告。
func (c *Client) Update(ctx context.Context, s *Session, objectType, id string, fields map[string]any) (*SaveResult, error) {
	ctx, span := tracing.StartBackendSpan(ctx, "update", objectType)
	defer span.End()
	timer := prometheus.NewTimer(metrics.BackendRequestDuration.WithLabelValues("update"))
	defer timer.ObserveDuration()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.AccessToken).
		SetHeader("Content-Type", "application/json").
		SetBody(fields).
		Patch(c.sobjectURL(s, objectType, id))
	if err != nil {
		return nil, fmt.Errorf("update %s %s: %w", objectType, id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, &NotFoundError{ObjectType: objectType, ID: id}
	}
	if resp.StatusCode() == http.StatusBadRequest {
		return failedSaveResult(resp.Body(), resp.String()), nil
	}
	if resp.IsError() {
		return nil, &QueryError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}

	return &SaveResult{ID: id, Success: true}, nil
}

// Identity 验证会话有效并返回身份声明（user_id、organization_id 等）
func (c *Client) Identity(ctx context.Context, s *Session) (map[string]any, error) {
	ctx, span := tracing.StartBackendSpan(ctx, "identity", "")
	defer span.End()
	timer := prometheus.NewTimer(metrics.BackendRequestDuration.WithLabelValues("identity"))
	defer timer.ObserveDuration()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.AccessToken).
		Get(s.InstanceURL + "/services/oauth2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("identity lookup: %w", err)
	}
	if resp.IsError() {
		return nil, &QueryError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}

	var claims map[string]any
	if err := json.Unmarshal(resp.Body(), &claims); err != nil {
		return nil, fmt.Errorf("decode identity response: %w", err)
	}
	return claims, nil
}

func (c *Client) sobjectURL(s *Session, objectType, id string) string {
	return s.InstanceURL + "/services/data/" + c.apiVersion + "/sobjects/" + objectType + "/" + id
}

// failedSaveResult 将后端错误数组解析为失败的 SaveResult
func failedSaveResult(body []byte, raw string) *SaveResult {
	var restErrs []restError
	if err := json.Unmarshal(body, &restErrs); err != nil || len(restErrs) == 0 {
		return &SaveResult{Success: false, Errors: []SaveError{{Message: strings.TrimSpace(raw)}}}
	}
	result := &SaveResult{Success: false}
	for _, re := range restErrs {
		result.Errors = append(result.Errors, SaveError{Message: re.Message, StatusCode: re.ErrorCode})
	}
	return result
}

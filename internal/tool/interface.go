package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"sfdc-gateway/internal/salesforce"
)

// Schema 工具入参的 JSON Schema
type Schema struct {
	Type        string              `json:"type,omitempty"`
	Description string              `json:"description,omitempty"`
	Properties  map[string]Property `json:"properties,omitempty"`
	Required    []string            `json:"required,omitempty"`
}

// Property Schema 中单个参数的约束
type Property struct {
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	MinLength   *int     `json:"minLength,omitempty"`
	MaxLength   *int     `json:"maxLength,omitempty"`
	Minimum     *int     `json:"minimum,omitempty"`
	Maximum     *int     `json:"maximum,omitempty"`
}

// Content ToolResult 中的单个内容块
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Result 所有工具统一的响应形态。IsError=true 表示领域层业务失败
// （找不到、规则拒绝、歧义输入），不表示传输或系统故障。
type Result struct {
	Content []Content `json:"content"`
	IsError bool      `json:"isError"`
}

// Text 构造成功文本结果
func Text(text string) Result {
	return Result{Content: []Content{{Type: "text", Text: text}}}
}

// Errorf 构造领域失败结果
func Errorf(format string, args ...any) Result {
	return Result{
		Content: []Content{{Type: "text", Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// JSONText 将 v 序列化为 JSON 文本结果
func JSONText(v any) (Result, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return Result{}, fmt.Errorf("marshal result: %w", err)
	}
	return Text(string(raw)), nil
}

// Tool 单个工具：声明 schema 并在给定会话上执行。
// 预期内的业务失败通过 Result.IsError 报告，只有基础设施故障才返回 error。
type Tool interface {
	Name() string
	Description() string
	Schema() Schema
	Execute(ctx context.Context, session *salesforce.Session, input map[string]any) (Result, error)
}

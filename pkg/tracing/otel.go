// Copyright 2026 fanjia1024
// OpenTelemetry integration for distributed tracing

package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StartToolSpan 开始 tool invocation span
func StartToolSpan(ctx context.Context, toolName string, dispatchID string) (context.Context, trace.Span) {
	tracer := otel.Tracer("sfdc-gateway")
	ctx, span := tracer.Start(ctx, "tool.invoke",
		trace.WithAttributes(
			attribute.String("tool.name", toolName),
			attribute.String("tool.dispatch_id", dispatchID),
		),
	)
	return ctx, span
}

// StartBackendSpan 开始 Salesforce 后端调用 span
func StartBackendSpan(ctx context.Context, operation string, objectType string) (context.Context, trace.Span) {
	tracer := otel.Tracer("sfdc-gateway")
	ctx, span := tracer.Start(ctx, "salesforce.request",
		trace.WithAttributes(
			attribute.String("salesforce.operation", operation),
			attribute.String("salesforce.object_type", objectType),
		),
	)
	return ctx, span
}

// StartTokenExchangeSpan 开始 OAuth2 token 交换 span
func StartTokenExchangeSpan(ctx context.Context, tokenURL string) (context.Context, trace.Span) {
	tracer := otel.Tracer("sfdc-gateway")
	ctx, span := tracer.Start(ctx, "oauth.token_exchange",
		trace.WithAttributes(
			attribute.String("oauth.token_url", tokenURL),
		),
	)
	return ctx, span
}

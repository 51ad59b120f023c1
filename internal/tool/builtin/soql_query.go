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

package builtin

import (
	"context"
	"errors"

	"sfdc-gateway/internal/salesforce"
	"sfdc-gateway/internal/tool"
)

// SOQLQueryTool 实现 soql_query：原样透传调用方给出的 SOQL
type SOQLQueryTool struct {
	client *salesforce.Client
}

// NewSOQLQueryTool 创建 soql_query 工具
func NewSOQLQueryTool(client *salesforce.Client) *SOQLQueryTool {
	return &SOQLQueryTool{client: client}
}

// Name 实现 tool.Tool
func (t *SOQLQueryTool) Name() string { return "soql_query" }

// Description 实现 tool.Tool
func (t *SOQLQueryTool) Description() string {
	return "Run a raw SOQL query against Salesforce and return the matching records as JSON."
}

// Schema 实现 tool.Tool
func (t *SOQLQueryTool) Schema() tool.Schema {
	return tool.Schema{
		Type: "object",
		Properties: map[string]tool.Property{
			"query": {
				Type:        "string",
				Description: "SOQL query text, e.g. SELECT Id, Name FROM Account LIMIT 5",
				MinLength:   intp(1),
				MaxLength:   intp(100000),
			},
		},
		Required: []string{"query"},
	}
}

// Execute 实现 tool.Tool。查询文本不做改写，由调用方自行负担注入风险。
func (t *SOQLQueryTool) Execute(ctx context.Context, session *salesforce.Session, input map[string]any) (tool.Result, error) {
	query := tool.StringArg(input, "query")

	records, err := t.client.Query(ctx, session, query)
	if err != nil {
		var qe *salesforce.QueryError
		if errors.As(err, &qe) {
			return tool.Errorf("query failed: %s", qe.Error()), nil
		}
		return tool.Result{}, err
	}
	return tool.JSONText(map[string]any{
		"totalSize": len(records),
		"records":   records,
	})
}

func intp(n int) *int { return &n }

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

// GetCaseTool 实现 get_case：按记录 Id 取单个 Case
type GetCaseTool struct {
	client *salesforce.Client
}

// NewGetCaseTool 创建 get_case 工具
func NewGetCaseTool(client *salesforce.Client) *GetCaseTool {
	return &GetCaseTool{client: client}
}

// Name 实现 tool.Tool
func (t *GetCaseTool) Name() string { return "get_case" }

// Description 实现 tool.Tool
func (t *GetCaseTool) Description() string {
	return "Fetch a single Salesforce Case by its record Id and return all fields as JSON."
}

// Schema 实现 tool.Tool
func (t *GetCaseTool) Schema() tool.Schema {
	return tool.Schema{
		Type: "object",
		Properties: map[string]tool.Property{
			"case_id": {
				Type:        "string",
				Description: "Salesforce Case record Id (15 or 18 characters)",
				MinLength:   intp(15),
				MaxLength:   intp(18),
			},
		},
		Required: []string{"case_id"},
	}
}

// Execute 实现 tool.Tool
func (t *GetCaseTool) Execute(ctx context.Context, session *salesforce.Session, input map[string]any) (tool.Result, error) {
	caseID := tool.StringArg(input, "case_id")

	record, err := t.client.Retrieve(ctx, session, "Case", caseID)
	if err != nil {
		var nf *salesforce.NotFoundError
		if errors.As(err, &nf) {
			return tool.Errorf("no Case found with id %s", caseID), nil
		}
		var qe *salesforce.QueryError
		if errors.As(err, &qe) {
			return tool.Errorf("retrieve failed: %s", qe.Error()), nil
		}
		return tool.Result{}, err
	}
	return tool.JSONText(record)
}

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
	"fmt"
	"sort"
	"strings"

	"sfdc-gateway/internal/salesforce"
	"sfdc-gateway/internal/tool"
)

// editableCaseFields 入参名到 Case 字段名的白名单，名单之外的字段不可改
var editableCaseFields = map[string]string{
	"subject":     "Subject",
	"description": "Description",
	"status":      "Status",
	"priority":    "Priority",
}

// UpdateCaseTool 实现 update_case：按白名单更新已有 Case 的字段
type UpdateCaseTool struct {
	client *salesforce.Client
}

// NewUpdateCaseTool 创建 update_case 工具
func NewUpdateCaseTool(client *salesforce.Client) *UpdateCaseTool {
	return &UpdateCaseTool{client: client}
}

// Name 实现 tool.Tool
func (t *UpdateCaseTool) Name() string { return "update_case" }

// Description 实现 tool.Tool
func (t *UpdateCaseTool) Description() string {
	return "Update fields on an existing Salesforce Case. Only subject, description, status and priority may be changed."
}

// Schema 实现 tool.Tool
func (t *UpdateCaseTool) Schema() tool.Schema {
	return tool.Schema{
		Type: "object",
		Properties: map[string]tool.Property{
			"case_id": {
				Type:        "string",
				Description: "Salesforce Case record Id (15 or 18 characters)",
				MinLength:   intp(15),
				MaxLength:   intp(18),
			},
			"subject": {
				Type:        "string",
				Description: "New subject",
				MinLength:   intp(1),
				MaxLength:   intp(255),
			},
			"description": {
				Type:        "string",
				Description: "New description",
				MaxLength:   intp(32000),
			},
			"status": {
				Type:        "string",
				Description: "New status, e.g. New, Working, Closed",
			},
			"priority": {
				Type:        "string",
				Description: "New priority",
				Enum:        []string{"Low", "Medium", "High"},
			},
		},
		Required: []string{"case_id"},
	}
}

// Execute 实现 tool.Tool
func (t *UpdateCaseTool) Execute(ctx context.Context, session *salesforce.Session, input map[string]any) (tool.Result, error) {
	caseID := tool.StringArg(input, "case_id")

	fields := make(map[string]any)
	for arg, sfField := range editableCaseFields {
		if v := tool.StringArg(input, arg); v != "" {
			fields[sfField] = v
		}
	}
	if len(fields) == 0 {
		return tool.Errorf("no editable fields supplied; provide at least one of subject, description, status, priority"), nil
	}

	res, err := t.client.Update(ctx, session, "Case", caseID, fields)
	if err != nil {
		var nf *salesforce.NotFoundError
		if errors.As(err, &nf) {
			return tool.Errorf("no Case found with id %s", caseID), nil
		}
		var qe *salesforce.QueryError
		if errors.As(err, &qe) {
			return tool.Errorf("update failed: %s", qe.Error()), nil
		}
		return tool.Result{}, err
	}
	if !res.Success {
		return tool.Errorf("update rejected: %s", res.ErrorDetail()), nil
	}

	updated := make([]string, 0, len(fields))
	for f := range fields {
		updated = append(updated, f)
	}
	sort.Strings(updated)
	return tool.Text(fmt.Sprintf("Updated case %s (%s)", caseID, strings.Join(updated, ", "))), nil
}

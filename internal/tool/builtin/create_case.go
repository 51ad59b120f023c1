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

	"sfdc-gateway/internal/salesforce"
	"sfdc-gateway/internal/tool"
)

// CreateCaseTool 实现 create_case：新建 Case，按需解析客户名称
type CreateCaseTool struct {
	client *salesforce.Client
}

// NewCreateCaseTool 创建 create_case 工具
func NewCreateCaseTool(client *salesforce.Client) *CreateCaseTool {
	return &CreateCaseTool{client: client}
}

// Name 实现 tool.Tool
func (t *CreateCaseTool) Name() string { return "create_case" }

// Description 实现 tool.Tool
func (t *CreateCaseTool) Description() string {
	return "Create a new Salesforce Case. The account may be given by id or by name, but not both; a name is resolved to the most recently created matching Account."
}

// Schema 实现 tool.Tool
func (t *CreateCaseTool) Schema() tool.Schema {
	return tool.Schema{
		Type: "object",
		Properties: map[string]tool.Property{
			"subject": {
				Type:        "string",
				Description: "Short summary of the case",
				MinLength:   intp(1),
				MaxLength:   intp(255),
			},
			"description": {
				Type:        "string",
				Description: "Full description of the issue",
				MaxLength:   intp(32000),
			},
			"origin": {
				Type:        "string",
				Description: "Channel the case came in through",
				Enum:        []string{"Web", "Phone", "Email"},
			},
			"priority": {
				Type:        "string",
				Description: "Case priority",
				Enum:        []string{"Low", "Medium", "High"},
			},
			"account_id": {
				Type:        "string",
				Description: "Salesforce Account record Id (15 or 18 characters)",
				MinLength:   intp(15),
				MaxLength:   intp(18),
			},
			"account_name": {
				Type:        "string",
				Description: "Account name to resolve; mutually exclusive with account_id",
				MinLength:   intp(1),
				MaxLength:   intp(255),
			},
		},
		Required: []string{"subject"},
	}
}

// Execute 实现 tool.Tool
func (t *CreateCaseTool) Execute(ctx context.Context, session *salesforce.Session, input map[string]any) (tool.Result, error) {
	accountID := tool.StringArg(input, "account_id")
	accountName := tool.StringArg(input, "account_name")
	if accountID != "" && accountName != "" {
		return tool.Errorf("provide either account_id or account_name, not both"), nil
	}

	if accountName != "" {
		resolved, result, err := t.resolveAccount(ctx, session, accountName)
		if err != nil || result.IsError {
			return result, err
		}
		accountID = resolved
	}

	fields := map[string]any{
		"Subject": tool.StringArg(input, "subject"),
	}
	if v := tool.StringArg(input, "description"); v != "" {
		fields["Description"] = v
	}
	if v := tool.StringArg(input, "origin"); v != "" {
		fields["Origin"] = v
	}
	if v := tool.StringArg(input, "priority"); v != "" {
		fields["Priority"] = v
	}
	if accountID != "" {
		fields["AccountId"] = accountID
	}

	res, err := t.client.Create(ctx, session, "Case", fields)
	if err != nil {
		var qe *salesforce.QueryError
		if errors.As(err, &qe) {
			return tool.Errorf("create failed: %s", qe.Error()), nil
		}
		return tool.Result{}, err
	}
	if !res.Success {
		return tool.Errorf("create rejected: %s", res.ErrorDetail()), nil
	}
	return tool.Text(fmt.Sprintf("Created case %s", res.ID)), nil
}

// resolveAccount 按名称精确匹配客户，多个匹配取创建时间最新的一个
func (t *CreateCaseTool) resolveAccount(ctx context.Context, session *salesforce.Session, name string) (string, tool.Result, error) {
	soql := "SELECT Id FROM Account WHERE Name = " + salesforce.QuoteSOQLString(name) +
		" ORDER BY CreatedDate DESC LIMIT 1"
	records, err := t.client.Query(ctx, session, soql)
	if err != nil {
		var qe *salesforce.QueryError
		if errors.As(err, &qe) {
			return "", tool.Errorf("account lookup failed: %s", qe.Error()), nil
		}
		return "", tool.Result{}, err
	}
	if len(records) == 0 {
		return "", tool.Errorf("no Account found with name %q", name), nil
	}
	id, _ := records[0]["Id"].(string)
	if id == "" {
		return "", tool.Errorf("account lookup for %q returned a record without an Id", name), nil
	}
	return id, tool.Result{}, nil
}

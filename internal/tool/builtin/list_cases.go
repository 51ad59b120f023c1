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

const (
	defaultCaseLimit = 10
	maxCaseLimit     = 20
)

// ListCasesTool 实现 list_cases_for_account：列出客户名下最近的 Case
type ListCasesTool struct {
	client *salesforce.Client
}

// NewListCasesTool 创建 list_cases_for_account 工具
func NewListCasesTool(client *salesforce.Client) *ListCasesTool {
	return &ListCasesTool{client: client}
}

// Name 实现 tool.Tool
func (t *ListCasesTool) Name() string { return "list_cases_for_account" }

// Description 实现 tool.Tool
func (t *ListCasesTool) Description() string {
	return "List the most recently created Cases for an Account, newest first."
}

// Schema 实现 tool.Tool
func (t *ListCasesTool) Schema() tool.Schema {
	return tool.Schema{
		Type: "object",
		Properties: map[string]tool.Property{
			"account_id": {
				Type:        "string",
				Description: "Salesforce Account record Id (15 or 18 characters)",
				MinLength:   intp(15),
				MaxLength:   intp(18),
			},
			"limit": {
				Type:        "integer",
				Description: fmt.Sprintf("Maximum number of cases to return (default %d, at most %d)", defaultCaseLimit, maxCaseLimit),
				Minimum:     intp(1),
				Maximum:     intp(maxCaseLimit),
			},
		},
		Required: []string{"account_id"},
	}
}

// Execute 实现 tool.Tool
func (t *ListCasesTool) Execute(ctx context.Context, session *salesforce.Session, input map[string]any) (tool.Result, error) {
	accountID := tool.StringArg(input, "account_id")
	limit := tool.IntArg(input, "limit", defaultCaseLimit)

	soql := fmt.Sprintf(
		"SELECT Id, CaseNumber, Subject, Status, Priority, Origin, CreatedDate FROM Case WHERE AccountId = %s ORDER BY CreatedDate DESC LIMIT %d",
		salesforce.QuoteSOQLString(accountID), limit,
	)
	records, err := t.client.Query(ctx, session, soql)
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

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

// WhoamiTool 实现 sfdc_whoami：返回当前集成身份的声明
type WhoamiTool struct {
	client *salesforce.Client
}

// NewWhoamiTool 创建 sfdc_whoami 工具
func NewWhoamiTool(client *salesforce.Client) *WhoamiTool {
	return &WhoamiTool{client: client}
}

// Name 实现 tool.Tool
func (t *WhoamiTool) Name() string { return "sfdc_whoami" }

// Description 实现 tool.Tool
func (t *WhoamiTool) Description() string {
	return "Return the identity claims of the authenticated integration user, including user and organization ids."
}

// Schema 实现 tool.Tool
func (t *WhoamiTool) Schema() tool.Schema {
	return tool.Schema{
		Type:       "object",
		Properties: map[string]tool.Property{},
	}
}

// Execute 实现 tool.Tool
func (t *WhoamiTool) Execute(ctx context.Context, session *salesforce.Session, _ map[string]any) (tool.Result, error) {
	claims, err := t.client.Identity(ctx, session)
	if err != nil {
		var qe *salesforce.QueryError
		if errors.As(err, &qe) {
			return tool.Errorf("identity lookup failed: %s", qe.Error()), nil
		}
		return tool.Result{}, err
	}
	return tool.JSONText(claims)
}

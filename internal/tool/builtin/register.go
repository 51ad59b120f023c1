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
	"sfdc-gateway/internal/salesforce"
	"sfdc-gateway/internal/tool/registry"
)

// RegisterBuiltin 将全部内置工具注册到 reg
func RegisterBuiltin(reg *registry.Registry, client *salesforce.Client) {
	reg.Register(NewSOQLQueryTool(client))
	reg.Register(NewGetCaseTool(client))
	reg.Register(NewWhoamiTool(client))
	reg.Register(NewCreateCaseTool(client))
	reg.Register(NewListCasesTool(client))
	reg.Register(NewUpdateCaseTool(client))
}

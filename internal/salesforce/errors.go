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
	"fmt"

	pkgerrors "sfdc-gateway/pkg/errors"
)

// AuthError token 交换失败：携带 token endpoint 的状态码与响应体，便于运维诊断
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("salesforce: token exchange failed: status %d: %s", e.StatusCode, e.Body)
}

// Unwrap 使 errors.Is(err, pkgerrors.ErrUnauthorized) 成立
func (e *AuthError) Unwrap() error { return pkgerrors.ErrUnauthorized }

// QueryError 后端拒绝请求（如 MALFORMED_QUERY、对象校验规则），携带后端错误详情
type QueryError struct {
	StatusCode int
	Body       string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("salesforce: request rejected: status %d: %s", e.StatusCode, e.Body)
}

// NotFoundError 按主键取记录时后端返回 404
type NotFoundError struct {
	ObjectType string
	ID         string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("salesforce: %s %s not found", e.ObjectType, e.ID)
}

// Unwrap 使 errors.Is(err, pkgerrors.ErrNotFound) 成立
func (e *NotFoundError) Unwrap() error { return pkgerrors.ErrNotFound }

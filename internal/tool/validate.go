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

package tool

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	pkgerrors "sfdc-gateway/pkg/errors"
)

// ValidationError 参数违反 schema（协议级错误，不进入工具执行）
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid arguments: " + strings.Join(e.Violations, "; ")
}

// Unwrap 使 errors.Is(err, pkgerrors.ErrInvalidArg) 成立
func (e *ValidationError) Unwrap() error { return pkgerrors.ErrInvalidArg }

// ValidateInput 在派发前校验入参。非法形态不得到达任何 Operation。
func ValidateInput(s Schema, input map[string]any) error {
	var violations []string

	for _, name := range s.Required {
		v, ok := input[name]
		if !ok || v == nil {
			violations = append(violations, fmt.Sprintf("%s: required", name))
			continue
		}
		if str, isStr := v.(string); isStr && strings.TrimSpace(str) == "" {
			violations = append(violations, fmt.Sprintf("%s: must not be empty", name))
		}
	}

	for name, prop := range s.Properties {
		v, ok := input[name]
		if !ok || v == nil {
			continue
		}
		switch prop.Type {
		case "string":
			str, isStr := v.(string)
			if !isStr {
				violations = append(violations, fmt.Sprintf("%s: must be a string", name))
				continue
			}
			if prop.MinLength != nil && len(str) < *prop.MinLength {
				violations = append(violations, fmt.Sprintf("%s: length must be >= %d", name, *prop.MinLength))
			}
			if prop.MaxLength != nil && len(str) > *prop.MaxLength {
				violations = append(violations, fmt.Sprintf("%s: length must be <= %d", name, *prop.MaxLength))
			}
			if len(prop.Enum) > 0 && !containsString(prop.Enum, str) {
				violations = append(violations, fmt.Sprintf("%s: must be one of [%s]", name, strings.Join(prop.Enum, ", ")))
			}
		case "integer":
			n, err := toInt(v)
			if err != nil {
				violations = append(violations, fmt.Sprintf("%s: must be an integer", name))
				continue
			}
			if prop.Minimum != nil && n < *prop.Minimum {
				violations = append(violations, fmt.Sprintf("%s: must be >= %d", name, *prop.Minimum))
			}
			if prop.Maximum != nil && n > *prop.Maximum {
				violations = append(violations, fmt.Sprintf("%s: must be <= %d", name, *prop.Maximum))
			}
		}
	}

	if len(violations) > 0 {
		sort.Strings(violations)
		return &ValidationError{Violations: violations}
	}
	return nil
}

// IntArg 从已校验入参中取整数，缺失时返回 def
func IntArg(input map[string]any, key string, def int) int {
	v, ok := input[key]
	if !ok || v == nil {
		return def
	}
	n, err := toInt(v)
	if err != nil {
		return def
	}
	return n
}

// StringArg 从已校验入参中取字符串，缺失或非字符串时返回空串
func StringArg(input map[string]any, key string) string {
	s, _ := input[key].(string)
	return s
}

// toInt 接受 JSON 解码产生的各种数值形态；非整数值报错
func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, err
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

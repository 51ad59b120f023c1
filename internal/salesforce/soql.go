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

import "strings"

// EscapeSOQLString 反斜杠转义字符串字面量中的 \ 与 '，防止调用方数据提前终止字面量。
// 所有将调用方数据嵌入 SOQL 的地方必须经过这里，不得各自拼接。
func EscapeSOQLString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// QuoteSOQLString 转义并包裹单引号，产出可直接嵌入 SOQL 的字符串字面量
func QuoteSOQLString(s string) string {
	return "'" + EscapeSOQLString(s) + "'"
}

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

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

func gatewayBaseURL() string {
	if u := os.Getenv("SFDC_GW_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func newClient() *resty.Client {
	c := resty.New().
		SetBaseURL(gatewayBaseURL()).
		SetTimeout(30 * time.Second).
		SetHeader("Content-Type", "application/json")
	if key := os.Getenv("SFDC_GW_API_KEY"); key != "" {
		c.SetHeader("X-API-Key", key)
	}
	return c
}

// toolResult 与网关返回的工具结果形态一致
type toolResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	IsError bool `json:"isError"`
}

func listTools() (map[string]interface{}, error) {
	var out map[string]interface{}
	resp, err := newClient().R().
		SetResult(&out).
		Get("/api/tools")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("GET /api/tools: %s", resp.String())
	}
	return out, nil
}

func callTool(name string, args map[string]interface{}) (*toolResult, error) {
	body := map[string]interface{}{
		"name":      name,
		"arguments": args,
	}
	var out toolResult
	resp, err := newClient().R().
		SetBody(body).
		SetResult(&out).
		Post("/api/tools/call")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("POST /api/tools/call: %s", resp.String())
	}
	return &out, nil
}

func checkHealth() (string, error) {
	resp, err := newClient().R().Get("/api/health")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("GET /api/health: %s", resp.String())
	}
	return resp.String(), nil
}

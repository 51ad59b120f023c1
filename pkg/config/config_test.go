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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
api:
  port: 9000
  host: "127.0.0.1"
  api_key: "topsecret"
salesforce:
  token_url: "https://login.example.com/services/oauth2/token"
  client_id: "cid"
  api_version: "v59.0"
log:
  level: "debug"
`
	path := filepath.Join(dir, "test.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.Port != 9000 {
		t.Errorf("API.Port: got %d", cfg.API.Port)
	}
	if cfg.API.APIKey != "topsecret" {
		t.Errorf("API.APIKey: got %q", cfg.API.APIKey)
	}
	if cfg.Salesforce.TokenURL != "https://login.example.com/services/oauth2/token" {
		t.Errorf("Salesforce.TokenURL: got %q", cfg.Salesforce.TokenURL)
	}
	if cfg.Salesforce.APIVersion != "v59.0" {
		t.Errorf("Salesforce.APIVersion: got %q", cfg.Salesforce.APIVersion)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level: got %q", cfg.Log.Level)
	}
}

func TestLoadConfig_EnvPlaceholder(t *testing.T) {
	dir := t.TempDir()
	yaml := `
salesforce:
  client_id: "${SFDC_TEST_CLIENT_ID}"
  client_secret: "${SFDC_TEST_CLIENT_SECRET}"
`
	path := filepath.Join(dir, "test.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	t.Setenv("SFDC_TEST_CLIENT_ID", "id-from-env")
	t.Setenv("SFDC_TEST_CLIENT_SECRET", "secret-from-env")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Salesforce.ClientID != "id-from-env" {
		t.Errorf("ClientID: got %q", cfg.Salesforce.ClientID)
	}
	if cfg.Salesforce.ClientSecret != "secret-from-env" {
		t.Errorf("ClientSecret: got %q", cfg.Salesforce.ClientSecret)
	}
}

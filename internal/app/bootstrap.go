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

package app

import (
	"context"
	"fmt"

	"sfdc-gateway/pkg/config"
	"sfdc-gateway/pkg/log"
	"sfdc-gateway/pkg/secrets"
)

// Bootstrap 统一初始化：日志与后端凭据，供 cmd 层复用
type Bootstrap struct {
	Config *config.Config
	Logger *log.Logger

	// ClientID / ClientSecret 已经过 secrets provider 解析的最终凭据
	ClientID     string
	ClientSecret string
}

// NewBootstrap 根据配置创建 Bootstrap
func NewBootstrap(cfg *config.Config) (*Bootstrap, error) {
	logCfg := &log.Config{}
	if cfg != nil {
		logCfg.Level = cfg.Log.Level
		logCfg.Format = cfg.Log.Format
		logCfg.File = cfg.Log.File
	}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	b := &Bootstrap{Config: cfg, Logger: logger}
	if cfg == nil {
		return b, nil
	}

	var store secrets.Store
	if cfg.Secrets.Provider != "" {
		store, err = secrets.NewStore(secrets.Config{
			Provider: cfg.Secrets.Provider,
			Config:   cfg.Secrets.Config,
		})
		if err != nil {
			return nil, fmt.Errorf("init secret store: %w", err)
		}
	}

	ctx := context.Background()
	b.ClientID, err = secrets.Resolve(ctx, store, cfg.Secrets.ClientIDKey, cfg.Salesforce.ClientID)
	if err != nil {
		return nil, fmt.Errorf("resolve client id: %w", err)
	}
	b.ClientSecret, err = secrets.Resolve(ctx, store, cfg.Secrets.ClientSecretKey, cfg.Salesforce.ClientSecret)
	if err != nil {
		return nil, fmt.Errorf("resolve client secret: %w", err)
	}
	return b, nil
}

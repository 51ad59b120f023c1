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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置结构体
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Salesforce SalesforceConfig `mapstructure:"salesforce"`
	Secrets    SecretsConfig    `mapstructure:"secrets"`
	Log        LogConfig        `mapstructure:"log"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

// APIConfig API 服务配置
type APIConfig struct {
	Port    int    `mapstructure:"port"`
	Host    string `mapstructure:"host"`
	Timeout string `mapstructure:"timeout"`
	// APIKey 共享密钥，请求需通过 X-API-Key 头携带；支持 ${ENV} 占位
	APIKey string     `mapstructure:"api_key"`
	CORS   CORSConfig `mapstructure:"cors"`
}

// SalesforceConfig Salesforce 后端配置
type SalesforceConfig struct {
	// TokenURL OAuth2 client-credentials token endpoint
	TokenURL string `mapstructure:"token_url"`
	// ClientID / ClientSecret 支持 ${ENV} 占位；也可经 secrets provider 解析
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	// APIVersion REST API 版本，如 "v59.0"，空则默认
	APIVersion string `mapstructure:"api_version"`
	// Timeout 单次后端调用超时，如 "30s"
	Timeout string `mapstructure:"timeout"`
	// TokenRateLimit token 交换限流（QPS），<=0 不限流
	TokenRateLimit      float64 `mapstructure:"token_rate_limit"`
	TokenRateLimitBurst int     `mapstructure:"token_rate_limit_burst"`
}

// SecretsConfig Secret 存储配置（client_id/client_secret 可从此解析）
type SecretsConfig struct {
	Provider string            `mapstructure:"provider"` // env | memory | vault
	Config   map[string]string `mapstructure:"config"`
	// ClientIDKey / ClientSecretKey 在 provider 中查找凭据的 key；空则使用 salesforce 节的内联值
	ClientIDKey     string `mapstructure:"client_id_key"`
	ClientSecretKey string `mapstructure:"client_secret_key"`
}

// CORSConfig CORS 配置
type CORSConfig struct {
	Enable       bool     `mapstructure:"enable"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// MonitoringConfig 监控配置
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

// TracingConfig 链路追踪配置（OpenTelemetry）
type TracingConfig struct {
	Enable         bool   `mapstructure:"enable"`
	ServiceName    string `mapstructure:"service_name"`
	ExportEndpoint string `mapstructure:"export_endpoint"`
	Insecure       bool   `mapstructure:"insecure"`
}

// PrometheusConfig Prometheus 配置
type PrometheusConfig struct {
	Enable bool `mapstructure:"enable"`
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("无法读取配置文件: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("无法解析配置文件: %w", err)
	}

	replaceEnvVars(&config)
	return &config, nil
}

// replaceEnvVars 替换配置中的 ${ENV} 占位（凭据与共享密钥）
func replaceEnvVars(config *Config) {
	config.API.APIKey = expandEnv(config.API.APIKey)
	config.Salesforce.ClientID = expandEnv(config.Salesforce.ClientID)
	config.Salesforce.ClientSecret = expandEnv(config.Salesforce.ClientSecret)
	config.Salesforce.TokenURL = expandEnv(config.Salesforce.TokenURL)
}

// expandEnv 将 "${VAR}" 形式的值替换为对应环境变量；非占位值原样返回
func expandEnv(v string) string {
	if !strings.HasPrefix(v, "${") || !strings.HasSuffix(v, "}") {
		return v
	}
	envVar := strings.TrimSuffix(strings.TrimPrefix(v, "${"), "}")
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return v
}

// LoadAPIConfig 加载 API 配置（仅 configs/api.yaml）
func LoadAPIConfig() (*Config, error) {
	return LoadConfig("configs/api.yaml")
}

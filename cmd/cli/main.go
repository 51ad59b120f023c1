package main

import (
	"encoding/json"
	"fmt"
	"os"

	"sfdc-gateway/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}
	cmd := os.Args[1]
	args := os.Args[2:]
	switch cmd {
	case "version":
		fmt.Println("sfdc-gateway cli 0.1.0")
	case "health":
		runHealth()
	case "config":
		runConfig()
	case "tools":
		runTools()
	case "call":
		if len(args) < 1 {
			fmt.Fprintf(os.Stderr, "Usage: sfdcgw call <tool> [json-args]\n")
			os.Exit(1)
		}
		rawArgs := "{}"
		if len(args) > 1 {
			rawArgs = args[1]
		}
		runCall(args[0], rawArgs)
	case "whoami":
		runCall("sfdc_whoami", "{}")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: sfdcgw <command> [args]")
	fmt.Println("  version            - 显示版本")
	fmt.Println("  health             - 网关健康检查")
	fmt.Println("  config             - 显示配置概要")
	fmt.Println("  tools              - 列出网关暴露的工具")
	fmt.Println("  call <tool> [json] - 调用工具，入参为 JSON 对象")
	fmt.Println("  whoami             - 显示后端集成身份")
	fmt.Println("环境变量: SFDC_GW_URL（默认 http://localhost:8080）、SFDC_GW_API_KEY")
}

func runHealth() {
	body, err := checkHealth()
	if err != nil {
		fmt.Fprintf(os.Stderr, "health: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(body)
}

func runConfig() {
	cfg, err := config.LoadAPIConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if cfg != nil {
		fmt.Printf("api.port=%d\n", cfg.API.Port)
		fmt.Printf("api.host=%s\n", cfg.API.Host)
		fmt.Printf("salesforce.token_url=%s\n", cfg.Salesforce.TokenURL)
		fmt.Printf("salesforce.api_version=%s\n", cfg.Salesforce.APIVersion)
	}
}

func runTools() {
	out, err := listTools()
	if err != nil {
		fmt.Fprintf(os.Stderr, "tools: %v\n", err)
		os.Exit(1)
	}
	pretty, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(pretty))
}

func runCall(name, rawArgs string) {
	var args map[string]interface{}
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		fmt.Fprintf(os.Stderr, "arguments must be a JSON object: %v\n", err)
		os.Exit(1)
	}
	res, err := callTool(name, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "call %s: %v\n", name, err)
		os.Exit(1)
	}
	for _, c := range res.Content {
		fmt.Println(c.Text)
	}
	if res.IsError {
		os.Exit(2)
	}
}

package mcp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads MCP server configurations from a file path or a raw
// JSON string.
//
// Files ending in .yaml or .yml are parsed as YAML, everything else as
// JSON. A value that is not a path to an existing file is treated as an
// inline JSON document. The document must contain a top-level
// "mcpServers" object keyed by server name.
func LoadConfig(pathOrJSON string) (map[string]ServerConfig, error) {
	trimmed := strings.TrimSpace(pathOrJSON)
	if trimmed == "" {
		return nil, fmt.Errorf("empty MCP config")
	}

	var (
		raw    []byte
		isYAML bool
	)

	if strings.HasPrefix(trimmed, "{") {
		raw = []byte(trimmed)
	} else {
		data, err := os.ReadFile(pathOrJSON)
		if err != nil {
			return nil, fmt.Errorf("read MCP config %s: %w", pathOrJSON, err)
		}

		raw = data

		switch filepath.Ext(pathOrJSON) {
		case ".yaml", ".yml":
			isYAML = true
		}
	}

	var doc struct {
		MCPServers map[string]map[string]any `json:"mcpServers" yaml:"mcpServers"`
	}

	if isYAML {
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse MCP config: %w", err)
		}
	} else {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parse MCP config: %w", err)
		}
	}

	if doc.MCPServers == nil {
		return nil, fmt.Errorf("MCP config missing 'mcpServers' section")
	}

	servers := make(map[string]ServerConfig, len(doc.MCPServers))

	for name, entry := range doc.MCPServers {
		cfg, err := serverConfigFromMap(entry)
		if err != nil {
			return nil, fmt.Errorf("server %q: %w", name, err)
		}

		servers[name] = cfg
	}

	return servers, nil
}

// serverConfigFromMap converts a decoded config entry into a typed
// ServerConfig based on its "type" discriminator. Entries without a type
// default to stdio, matching the common config-file shorthand.
func serverConfigFromMap(entry map[string]any) (ServerConfig, error) {
	serverType, _ := entry["type"].(string)

	switch ServerType(serverType) {
	case ServerTypeStdio, "":
		command, _ := entry["command"].(string)
		if command == "" {
			return nil, fmt.Errorf("stdio server requires 'command'")
		}

		cfg := &StdioServerConfig{Command: command}

		if serverType != "" {
			t := ServerType(serverType)
			cfg.Type = &t
		}

		if args, ok := entry["args"].([]any); ok {
			for _, a := range args {
				if s, ok := a.(string); ok {
					cfg.Args = append(cfg.Args, s)
				}
			}
		}

		cfg.Env = stringMap(entry["env"])

		return cfg, nil

	case ServerTypeSSE:
		url, _ := entry["url"].(string)
		if url == "" {
			return nil, fmt.Errorf("sse server requires 'url'")
		}

		return &SSEServerConfig{
			Type:    ServerTypeSSE,
			URL:     url,
			Headers: stringMap(entry["headers"]),
		}, nil

	case ServerTypeHTTP:
		url, _ := entry["url"].(string)
		if url == "" {
			return nil, fmt.Errorf("http server requires 'url'")
		}

		return &HTTPServerConfig{
			Type:    ServerTypeHTTP,
			URL:     url,
			Headers: stringMap(entry["headers"]),
		}, nil

	case ServerTypeSDK:
		return nil, fmt.Errorf("sdk servers cannot be configured from a file")

	default:
		return nil, fmt.Errorf("unknown server type: %q", serverType)
	}
}

// stringMap converts a decoded map with any values into map[string]string,
// skipping non-string values.
func stringMap(v any) map[string]string {
	raw, ok := v.(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}

	result := make(map[string]string, len(raw))

	for k, val := range raw {
		if s, ok := val.(string); ok {
			result[k] = s
		}
	}

	return result
}

package fixer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/aproctor/stitch/internal/toolrun"
)

// DefaultMaxRounds is the round budget when the config does not set one.
const DefaultMaxRounds = 10

// ToolCommand is a command vector in the tools config.
type ToolCommand struct {
	Command []string `json:"command" yaml:"command"`
}

// ToolsConfig names the external formatter and validator and the round
// budget for fix sessions. The validator is required; a missing formatter
// disables the formatting pass.
type ToolsConfig struct {
	Version   int         `json:"version" yaml:"version"`
	Formatter ToolCommand `json:"formatter,omitempty" yaml:"formatter,omitempty"`
	Validator ToolCommand `json:"validator" yaml:"validator"`
	MaxRounds int         `json:"max_rounds,omitempty" yaml:"max_rounds,omitempty"`
}

const toolsConfigSchema = `{
  "type": "object",
  "required": ["validator"],
  "properties": {
    "version": {"type": "integer"},
    "formatter": {
      "type": "object",
      "properties": {"command": {"type": "array", "items": {"type": "string"}}}
    },
    "validator": {
      "type": "object",
      "required": ["command"],
      "properties": {"command": {"type": "array", "minItems": 1, "items": {"type": "string"}}}
    },
    "max_rounds": {"type": "integer", "minimum": 1}
  }
}`

var compiledToolsSchema = jsonschema.MustCompileString("tools_config.json", toolsConfigSchema)

// LoadToolsConfig reads and validates a YAML tools config.
func LoadToolsConfig(path string) (*ToolsConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseToolsConfig(b)
}

// ParseToolsConfig decodes a YAML tools config, checks it against the
// embedded schema, and applies defaults.
func ParseToolsConfig(b []byte) (*ToolsConfig, error) {
	var raw any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("tools config: %w", err)
	}
	// Round-trip through JSON so the schema validator sees JSON-typed values.
	jb, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("tools config: %w", err)
	}
	var doc any
	if err := json.Unmarshal(jb, &doc); err != nil {
		return nil, fmt.Errorf("tools config: %w", err)
	}
	if err := compiledToolsSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("tools config: %w", err)
	}

	var cfg ToolsConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("tools config: %w", err)
	}
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = DefaultMaxRounds
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *ToolsConfig) check() error {
	if len(c.Validator.Command) == 0 {
		return fmt.Errorf("tools config: validator command is required")
	}
	for _, arg := range c.Validator.Command {
		if strings.TrimSpace(arg) == "" {
			return fmt.Errorf("tools config: validator command has an empty argument")
		}
	}
	return nil
}

// FormatterTool returns the configured formatter, or nil when none is set.
func (c *ToolsConfig) FormatterTool() *toolrun.Tool {
	if len(c.Formatter.Command) == 0 {
		return nil
	}
	return &toolrun.Tool{Command: c.Formatter.Command}
}

// ValidatorTool returns the configured validator.
func (c *ToolsConfig) ValidatorTool() toolrun.Tool {
	return toolrun.Tool{Command: c.Validator.Command}
}

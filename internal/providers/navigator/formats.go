package navigator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/NavFS/internal/shared/types"
	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// FormatOps handles structured file format commands.
type FormatOps struct {
	*NavigatorOps
}

// GetTools returns format tool definitions
func (f *FormatOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "fmt.read",
			Name:        "Read Structured",
			Description: "Parse a JSON, YAML, or TOML file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "format", Type: "string", Description: "json, yaml, or toml (default: by extension)", Required: false},
			},
			Returns: "object",
		},
		{
			ID:          "fmt.write",
			Name:        "Write Structured",
			Description: "Serialize data to a JSON, YAML, or TOML file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "data", Type: "object", Description: "Data to serialize", Required: true},
				{Name: "format", Type: "string", Description: "json, yaml, or toml (default: by extension)", Required: false},
			},
			Returns: "object",
		},
	}
}

func formatFor(path, explicit string) (string, error) {
	if explicit != "" {
		switch explicit {
		case "json", "yaml", "toml":
			return explicit, nil
		}
		return "", fmt.Errorf("unsupported format: %s", explicit)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json", nil
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	}
	return "", fmt.Errorf("cannot infer format from extension: %s", path)
}

// Read parses a structured file into the envelope.
func (f *FormatOps) Read(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	raw := getString(params, "path")
	if raw == "" {
		return Failure("path parameter required")
	}
	sess, err := f.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := f.ResolvePath(sess, raw)

	format, err := formatFor(path, getString(params, "format"))
	if err != nil {
		return Failure(err.Error())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FailErr(err)
	}

	var content interface{}
	switch format {
	case "json":
		err = sonic.Unmarshal(data, &content)
	case "yaml":
		err = yaml.Unmarshal(data, &content)
	case "toml":
		err = toml.Unmarshal(data, &content)
	}
	if err != nil {
		return Failure(fmt.Sprintf("%s parse failed: %v", format, err))
	}

	return Success(map[string]interface{}{
		"path":    path,
		"format":  format,
		"content": content,
	})
}

// Write serializes params["data"] to disk in the selected format.
func (f *FormatOps) Write(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	raw := getString(params, "path")
	if raw == "" {
		return Failure("path parameter required")
	}
	data, ok := params["data"]
	if !ok {
		return Failure("data parameter required")
	}
	sess, err := f.SessionFor(params, appCtx)
	if err != nil {
		return Failure(err.Error())
	}
	path := f.ResolvePath(sess, raw)
	if !f.Policy.IsSafe(path) {
		return Unsafe(path)
	}

	format, err := formatFor(path, getString(params, "format"))
	if err != nil {
		return Failure(err.Error())
	}

	var encoded []byte
	switch format {
	case "json":
		encoded, err = sonic.MarshalIndent(data, "", "  ")
	case "yaml":
		encoded, err = yaml.Marshal(data)
	case "toml":
		encoded, err = toml.Marshal(data)
	}
	if err != nil {
		return Failure(fmt.Sprintf("%s encode failed: %v", format, err))
	}

	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return FailErr(err)
	}
	return Success(map[string]interface{}{
		"path":   path,
		"format": format,
		"bytes":  len(encoded),
	})
}

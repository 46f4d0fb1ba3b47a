package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound     = errors.New("configuration file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidJSON      = errors.New("invalid JSON syntax")
	ErrInvalidYAML      = errors.New("invalid YAML syntax")
	ErrEmptyFile        = errors.New("configuration file is empty")
)

// EnvConfigPath names the environment variable that overrides discovery.
const EnvConfigPath = "MOCKSAUCE_CONFIG"

// DiscoveryOrder lists the file names tried in the working directory.
var DiscoveryOrder = []string{
	"mocksauce.yaml",
	"mocksauce.yml",
	"mocksauce.json",
}

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// LoadFromFile reads a project file. The format is chosen by extension
// (.yaml/.yml for YAML, anything else JSON). BaseDir is set to the file's
// directory.
func LoadFromFile(path string) (*ProjectConfig, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	var cfg *ProjectConfig
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		cfg, err = ParseYAML(data)
	} else {
		cfg, err = ParseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cfg.BaseDir = filepath.Dir(abs)
	return cfg, nil
}

// ParseYAML parses a YAML project file after environment expansion.
func ParseYAML(data []byte) (*ProjectConfig, error) {
	cfg := &ProjectConfig{}
	if err := yaml.Unmarshal([]byte(ExpandEnvVars(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// ParseJSON parses a JSON project file after environment expansion.
func ParseJSON(data []byte) (*ProjectConfig, error) {
	expanded := []byte(ExpandEnvVars(string(data)))
	if !json.Valid(expanded) {
		return nil, ErrInvalidJSON
	}
	cfg := &ProjectConfig{}
	if err := json.Unmarshal(expanded, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Discover finds the project file: $MOCKSAUCE_CONFIG if set, otherwise the
// first DiscoveryOrder name present in dir.
func Discover(dir string) (string, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s points to %s", ErrFileNotFound, EnvConfigPath, envPath)
	}

	for _, name := range DiscoveryOrder {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: no %s in %s, specify --config", ErrFileNotFound, DiscoveryOrder[0], dir)
}

// Load loads path, or the discovered project file when path is empty.
func Load(path string) (*ProjectConfig, error) {
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		path, err = Discover(cwd)
		if err != nil {
			return nil, err
		}
	}
	return LoadFromFile(path)
}

// ExpandEnvVars expands ${VAR_NAME} and ${VAR_NAME:-default} references.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		if val := os.Getenv(submatch[1]); val != "" {
			return val
		}
		if len(submatch) >= 3 {
			return submatch[2]
		}
		return ""
	})
}

// ResolvePath resolves targetPath against basePath unless it is absolute
// or starts with ~/.
func ResolvePath(basePath, targetPath string) string {
	if filepath.IsAbs(targetPath) {
		return targetPath
	}
	if strings.HasPrefix(targetPath, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, targetPath[2:])
		}
	}
	return filepath.Join(basePath, targetPath)
}

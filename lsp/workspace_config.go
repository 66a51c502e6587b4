package lsp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"bennypowers.dev/lessls/lsp/types"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ConfigFiles are the workspace-relative files configuration is read
// from, in order. package.json only counts when it has a
// lessLanguageServer key.
var ConfigFiles = []string{
	"package.json",
	filepath.Join(".config", "lessls.yaml"),
	filepath.Join(".config", "lessls.yml"),
}

// ReadWorkspaceConfig reads the configuration of the workspace at
// rootPath over the defaults. source names the file it came from and is
// empty when there was none.
func ReadWorkspaceConfig(rootPath string) (config types.ServerConfig, source string, err error) {
	config = types.DefaultConfig()
	if rootPath == "" {
		return config, "", nil
	}

	pkgPath := filepath.Join(rootPath, ConfigFiles[0])
	found, err := readPackageJSONConfig(pkgPath, &config)
	if err != nil {
		return types.DefaultConfig(), "", err
	}
	if found {
		return config, pkgPath, nil
	}

	for _, name := range ConfigFiles[1:] {
		p := filepath.Join(rootPath, name)
		found, err := readYAMLConfig(p, &config)
		if err != nil {
			return types.DefaultConfig(), "", err
		}
		if found {
			return config, p, nil
		}
	}
	return config, "", nil
}

// readPackageJSONConfig reads the lessLanguageServer key of package.json,
// which may contain comments
func readPackageJSONConfig(p string, config *types.ServerConfig) (bool, error) {
	data, err := os.ReadFile(p) //nolint:gosec // G304: workspace package.json
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkg map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkg); err != nil {
		return false, fmt.Errorf("failed to parse package.json: %w", err)
	}
	raw, ok := pkg[types.ConfigKey]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, config); err != nil {
		return false, fmt.Errorf("%s in package.json: %w", types.ConfigKey, err)
	}
	return true, nil
}

func readYAMLConfig(p string, config *types.ServerConfig) (bool, error) {
	data, err := os.ReadFile(p) //nolint:gosec // G304: workspace config file
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", filepath.Base(p), err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", filepath.Base(p), err)
	}
	return true, nil
}

// IsConfigFile reports whether path is one of the workspace configuration
// files
func (s *Server) IsConfigFile(path string) bool {
	root := s.RootPath()
	if root == "" {
		return false
	}
	clean := filepath.Clean(path)
	for _, name := range ConfigFiles {
		if clean == filepath.Join(root, name) {
			return true
		}
	}
	return false
}

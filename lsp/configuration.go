package lsp

import (
	"encoding/json"
	"fmt"

	"bennypowers.dev/lessls/internal/log"
	"bennypowers.dev/lessls/lsp/types"
)

// GetConfig returns a copy of the effective configuration
func (s *Server) GetConfig() types.ServerConfig {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.config.Clone()
}

// SetConfig replaces the effective configuration and rebuilds the session
// from it. Open documents keep their cached trees until invalidated.
func (s *Server) SetConfig(config types.ServerConfig) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.config = config.Clone()
	s.session = s.config.NewSession(s.rootPath)
}

// LoadWorkspaceConfig reads the workspace configuration file, then applies
// the last client settings over it
func (s *Server) LoadWorkspaceConfig() error {
	root := s.RootPath()
	config, source, err := ReadWorkspaceConfig(root)
	if err != nil {
		return err
	}
	if source != "" {
		log.Info("Loaded configuration from %s", source)
	}

	s.configMu.Lock()
	s.workspaceConfig = config
	settings := s.settings
	s.configMu.Unlock()

	return s.apply(settings)
}

// ApplySettings applies client settings, as sent with
// workspace/didChangeConfiguration, over the workspace configuration.
// Settings are read from the lessLanguageServer key; nil settings fall
// back to the workspace configuration alone.
func (s *Server) ApplySettings(settings any) error {
	ours, err := extractSettings(settings)
	if err != nil {
		return err
	}
	s.configMu.Lock()
	s.settings = ours
	s.configMu.Unlock()
	return s.apply(ours)
}

func (s *Server) apply(settings any) error {
	s.configMu.RLock()
	config := s.workspaceConfig.Clone()
	s.configMu.RUnlock()

	if settings != nil {
		data, err := json.Marshal(settings)
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("failed to unmarshal settings: %w", err)
		}
	}

	s.SetConfig(config)
	log.Debug("Configuration: %+v", config)
	return nil
}

// extractSettings finds our section of the client settings
func extractSettings(settings any) (any, error) {
	if settings == nil {
		return nil, nil
	}
	settingsMap, ok := settings.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("settings is not an object")
	}
	ours, ok := settingsMap[types.ConfigKey]
	if !ok || ours == nil {
		return nil, nil
	}
	if _, ok := ours.(map[string]any); !ok {
		return nil, fmt.Errorf("%s must be an object", types.ConfigKey)
	}
	return ours, nil
}

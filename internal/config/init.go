package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tyemirov/dirtree/internal/utils"
)

// InitTarget identifies where configuration should be initialized.
type InitTarget string

const (
	// InitTargetLocal writes configuration into the working directory.
	InitTargetLocal InitTarget = "local"
	// InitTargetGlobal writes configuration into the global configuration directory.
	InitTargetGlobal InitTarget = "global"

	defaultConfigurationTemplate = `tree:
  format: raw
  show_hidden: true
  dirs_only: false
  follow_symlinks: false
  clipboard: false
  pattern: ""
  ignore: []
  ignore_glob: []
`
)

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Target           InitTarget
	Force            bool
	WorkingDirectory string
}

// InitializeConfiguration writes the default configuration to the requested
// target and returns the written path. Existing files are kept unless Force is set.
func InitializeConfiguration(options InitOptions) (string, error) {
	destinationPath, resolveErr := initDestinationPath(options)
	if resolveErr != nil {
		return "", resolveErr
	}
	if err := os.MkdirAll(filepath.Dir(destinationPath), 0o755); err != nil {
		return "", fmt.Errorf("create configuration directory %s: %w", filepath.Dir(destinationPath), err)
	}

	if _, err := os.Stat(destinationPath); err == nil {
		if !options.Force {
			return "", fmt.Errorf("configuration file already exists at %s", destinationPath)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("inspect configuration path %s: %w", destinationPath, err)
	}

	if err := os.WriteFile(destinationPath, []byte(defaultConfigurationTemplate), 0o600); err != nil {
		return "", fmt.Errorf("write configuration to %s: %w", destinationPath, err)
	}

	return destinationPath, nil
}

func initDestinationPath(options InitOptions) (string, error) {
	switch options.Target {
	case "", InitTargetLocal:
		workingDirectory := options.WorkingDirectory
		if workingDirectory == "" {
			current, err := os.Getwd()
			if err != nil {
				return "", fmt.Errorf("determine working directory for configuration: %w", err)
			}
			workingDirectory = current
		}
		return filepath.Join(workingDirectory, utils.ConfigFileName), nil
	case InitTargetGlobal:
		globalPath := GlobalConfigurationPath()
		if globalPath == "" {
			return "", fmt.Errorf("resolve home directory for configuration")
		}
		return globalPath, nil
	default:
		return "", fmt.Errorf("unsupported init target %q", options.Target)
	}
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/tyemirov/dirtree/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds command defaults read from configuration files.
type ApplicationConfiguration struct {
	Tree TreeConfiguration `mapstructure:"tree"`
}

// TreeConfiguration defines defaults for rendering a tree. Pointer fields
// distinguish an unset value from an explicit false or zero.
type TreeConfiguration struct {
	Format         string   `mapstructure:"format"`
	MaxDepth       *int     `mapstructure:"max_depth"`
	ShowHidden     *bool    `mapstructure:"show_hidden"`
	DirsOnly       *bool    `mapstructure:"dirs_only"`
	Pattern        string   `mapstructure:"pattern"`
	Ignore         []string `mapstructure:"ignore"`
	IgnoreGlob     []string `mapstructure:"ignore_glob"`
	IgnoreFile     string   `mapstructure:"ignore_file"`
	FollowSymlinks *bool    `mapstructure:"follow_symlinks"`
	Clipboard      *bool    `mapstructure:"clipboard"`
}

// LoadApplicationConfiguration loads configuration from the global file and
// then overlays the local or explicitly requested file.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if globalPath := GlobalConfigurationPath(); globalPath != "" {
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	merged.Tree.Ignore = utils.DeduplicateNames(merged.Tree.Ignore)
	merged.Tree.IgnoreGlob = utils.DeduplicatePatterns(merged.Tree.IgnoreGlob)

	return merged, nil
}

// GlobalConfigurationPath returns the per-user configuration file path, or an
// empty string when the home directory cannot be determined.
func GlobalConfigurationPath() string {
	homeDirectory, err := os.UserHomeDir()
	if err != nil || homeDirectory == "" {
		return ""
	}
	return filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath
		}
		return filepath.Join(workingDirectory, explicitPath)
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName)
}

// loadConfigurationFromPath decodes the YAML file at path. A missing file is an
// empty configuration unless it was requested explicitly.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tree = result.Tree.merge(override.Tree)
	return result
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.MaxDepth != nil {
		result.MaxDepth = cloneInt(override.MaxDepth)
	}
	if override.ShowHidden != nil {
		result.ShowHidden = cloneBool(override.ShowHidden)
	}
	if override.DirsOnly != nil {
		result.DirsOnly = cloneBool(override.DirsOnly)
	}
	if override.Pattern != "" {
		result.Pattern = override.Pattern
	}
	if len(override.Ignore) > 0 {
		result.Ignore = append([]string{}, utils.DeduplicateNames(override.Ignore)...)
	}
	if len(override.IgnoreGlob) > 0 {
		result.IgnoreGlob = append([]string{}, utils.DeduplicatePatterns(override.IgnoreGlob)...)
	}
	if override.IgnoreFile != "" {
		result.IgnoreFile = override.IgnoreFile
	}
	if override.FollowSymlinks != nil {
		result.FollowSymlinks = cloneBool(override.FollowSymlinks)
	}
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tyemirov/dirtree/internal/config"
	"github.com/tyemirov/dirtree/internal/filter"
	"github.com/tyemirov/dirtree/internal/output"
	"github.com/tyemirov/dirtree/internal/services/clipboard"
	"github.com/tyemirov/dirtree/internal/types"
	"github.com/tyemirov/dirtree/internal/utils"
	"github.com/tyemirov/dirtree/internal/walker"
)

const (
	maxDepthFlagName       = "max-depth"
	hideDotFlagName        = "hide-dot"
	dirsOnlyFlagName       = "dirs-only"
	patternFlagName        = "pattern"
	ignoreFlagName         = "ignore"
	ignoreGlobFlagName     = "ignore-glob"
	ignoreFileFlagName     = "ignore-file"
	followSymlinksFlagName = "follow-symlinks"
	formatFlagName         = "format"
	clipboardFlagName      = "clipboard"
	configFlagName         = "config"
	verboseFlagName        = "verbose"
	versionFlagName        = "version"
	globalFlagName         = "global"
	forceFlagName          = "force"

	versionTemplate      = "%s version: %s\n"
	defaultPath          = "."
	rootUseTemplate      = "%s [path]"
	rootShortDescription = "print a recursive directory tree"
	rootLongDescription  = `dirtree prints the directory tree rooted at path (default: current directory).
Directories are listed before files and names are ordered case-insensitively.
Defaults may be stored in ~/.dirtree/config.yaml or ./.dirtree.yaml; flags override them.
A directory named like a subcommand (init, help) can be passed as ./init or ./help.`
	rootUsageExample = `  # Limit the tree to two levels and hide dot entries
  dirtree --max-depth 2 --hide-dot .

  # Only PDF files, skipping the build directory
  dirtree --pattern "*.pdf" --ignore build ~/docs

  # Follow symbolic links safely and emit JSON
  dirtree --follow-symlinks --format json /srv`

	initUse              = "init"
	initShortDescription = "write a default configuration file"

	maxDepthFlagDescription       = "limit recursion depth (0 prints the root only)"
	hideDotFlagDescription        = "hide hidden files/folders (starting with .)"
	dirsOnlyFlagDescription       = "show directories only"
	patternFlagDescription        = `only include names matching a glob, e.g. "*.pdf"`
	ignoreFlagDescription         = "ignore exact name (repeatable)"
	ignoreGlobFlagDescription     = "ignore glob (repeatable)"
	ignoreFileFlagDescription     = "read additional ignore globs from a file, one per line"
	followSymlinksFlagDescription = "follow directory symlinks (cycle-safe)"
	formatFlagDescription         = "output format: raw or json"
	clipboardFlagDescription      = "also copy the rendered tree to the clipboard"
	configFlagDescription         = "path to a configuration file"
	verboseFlagDescription        = "log skipped directories and entries"
	versionFlagDescription        = "display application version"
	globalFlagDescription         = "write the global configuration instead of the local one"
	forceFlagDescription          = "overwrite an existing configuration file"

	invalidFormatMessage       = "invalid format value '%s'"
	negativeMaxDepthMessage    = "max depth must not be negative, got %d"
	errorLoadConfigFormat      = "loading configuration: %w"
	errorFilterFormat          = "invalid filter: %w"
	errorLoggerFormat          = "creating logger: %w"
	errorRenderFormat          = "rendering tree: %w"
	initializedMessageTemplate = "configuration written to %s\n"
	warningClipboardFormat     = "Warning: %v\n"
)

// treeFlags holds raw flag values before they are merged with configuration.
type treeFlags struct {
	maxDepth       int
	hideDot        bool
	dirsOnly       bool
	pattern        string
	ignoreNames    []string
	ignoreGlobs    []string
	ignoreFile     string
	followSymlinks bool
	format         string
	clipboard      bool
	configPath     string
	verbose        bool
	showVersion    bool
}

// treeSettings is the resolved invocation after flags and configuration are combined.
type treeSettings struct {
	rootPath       string
	maxDepth       *int
	filterOptions  filter.Options
	ignoreFile     string
	followSymlinks bool
	format         string
	clipboard      bool
	verbose        bool
}

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON:
		return true
	default:
		return false
	}
}

// Execute runs the dirtree application.
func Execute() error {
	rootCommand := NewRootCommand(clipboard.NewService())
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command. The copier receives the
// rendered output when clipboard copying is enabled.
func NewRootCommand(copier clipboard.Copier) *cobra.Command {
	var flags treeFlags

	rootCommand := &cobra.Command{
		Use:           fmt.Sprintf(rootUseTemplate, utils.ApplicationName),
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			if flags.showVersion {
				fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.ApplicationName, utils.GetApplicationVersion())
				return nil
			}
			rootPath := defaultPath
			if len(arguments) == 1 {
				rootPath = arguments[0]
			}
			settings, settingsError := resolveTreeSettings(command.Flags(), flags, rootPath)
			if settingsError != nil {
				return settingsError
			}
			return runTree(command, settings, copier)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.IntVar(&flags.maxDepth, maxDepthFlagName, 0, maxDepthFlagDescription)
	registerBooleanFlag(flagSet, &flags.hideDot, hideDotFlagName, false, hideDotFlagDescription)
	registerBooleanFlag(flagSet, &flags.dirsOnly, dirsOnlyFlagName, false, dirsOnlyFlagDescription)
	flagSet.StringVar(&flags.pattern, patternFlagName, "", patternFlagDescription)
	flagSet.StringArrayVar(&flags.ignoreNames, ignoreFlagName, nil, ignoreFlagDescription)
	flagSet.StringArrayVar(&flags.ignoreGlobs, ignoreGlobFlagName, nil, ignoreGlobFlagDescription)
	flagSet.StringVar(&flags.ignoreFile, ignoreFileFlagName, "", ignoreFileFlagDescription)
	registerBooleanFlag(flagSet, &flags.followSymlinks, followSymlinksFlagName, false, followSymlinksFlagDescription)
	flagSet.StringVar(&flags.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	registerBooleanFlag(flagSet, &flags.clipboard, clipboardFlagName, false, clipboardFlagDescription)
	flagSet.StringVar(&flags.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flagSet, &flags.verbose, verboseFlagName, false, verboseFlagDescription)
	registerBooleanFlag(flagSet, &flags.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand())
	return rootCommand
}

// createInitCommand returns the init subcommand.
func createInitCommand() *cobra.Command {
	var writeGlobal bool
	var overwrite bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: overwrite})
			if initError != nil {
				return initError
			}
			fmt.Fprintf(command.OutOrStdout(), initializedMessageTemplate, writtenPath)
			return nil
		},
	}
	registerBooleanFlag(initCommand.Flags(), &writeGlobal, globalFlagName, false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &overwrite, forceFlagName, false, forceFlagDescription)
	return initCommand
}

// resolveTreeSettings overlays explicitly set flags on configuration file
// values, which in turn override built-in defaults.
func resolveTreeSettings(flagSet *pflag.FlagSet, flags treeFlags, rootPath string) (treeSettings, error) {
	applicationConfiguration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: flags.configPath})
	if loadError != nil {
		return treeSettings{}, fmt.Errorf(errorLoadConfigFormat, loadError)
	}
	treeConfiguration := applicationConfiguration.Tree

	settings := treeSettings{
		rootPath:       rootPath,
		maxDepth:       treeConfiguration.MaxDepth,
		format:         types.FormatRaw,
		ignoreFile:     treeConfiguration.IgnoreFile,
		followSymlinks: valueOrDefault(treeConfiguration.FollowSymlinks, false),
		clipboard:      valueOrDefault(treeConfiguration.Clipboard, false),
		verbose:        flags.verbose,
		filterOptions: filter.Options{
			ShowHidden:      valueOrDefault(treeConfiguration.ShowHidden, true),
			DirectoriesOnly: valueOrDefault(treeConfiguration.DirsOnly, false),
			NamePattern:     treeConfiguration.Pattern,
			IgnoreNames:     treeConfiguration.Ignore,
			IgnoreGlobs:     treeConfiguration.IgnoreGlob,
		},
	}
	if treeConfiguration.Format != "" {
		settings.format = treeConfiguration.Format
	}

	if flagSet.Changed(maxDepthFlagName) {
		maxDepth := flags.maxDepth
		settings.maxDepth = &maxDepth
	}
	if flagSet.Changed(hideDotFlagName) {
		settings.filterOptions.ShowHidden = !flags.hideDot
	}
	if flagSet.Changed(dirsOnlyFlagName) {
		settings.filterOptions.DirectoriesOnly = flags.dirsOnly
	}
	if flagSet.Changed(patternFlagName) {
		settings.filterOptions.NamePattern = flags.pattern
	}
	if flagSet.Changed(ignoreFileFlagName) {
		settings.ignoreFile = flags.ignoreFile
	}
	if flagSet.Changed(followSymlinksFlagName) {
		settings.followSymlinks = flags.followSymlinks
	}
	if flagSet.Changed(formatFlagName) {
		settings.format = flags.format
	}
	if flagSet.Changed(clipboardFlagName) {
		settings.clipboard = flags.clipboard
	}
	settings.filterOptions.IgnoreNames = utils.MergeNames(settings.filterOptions.IgnoreNames, flags.ignoreNames)
	settings.filterOptions.IgnoreGlobs = utils.MergePatterns(settings.filterOptions.IgnoreGlobs, flags.ignoreGlobs)

	settings.format = strings.ToLower(settings.format)
	if !isSupportedFormat(settings.format) {
		return treeSettings{}, fmt.Errorf(invalidFormatMessage, settings.format)
	}
	if settings.maxDepth != nil && *settings.maxDepth < 0 {
		return treeSettings{}, fmt.Errorf(negativeMaxDepthMessage, *settings.maxDepth)
	}
	if settings.ignoreFile != "" {
		filePatterns, ignoreFileError := config.LoadIgnoreFilePatterns(settings.ignoreFile)
		if ignoreFileError != nil {
			return treeSettings{}, fmt.Errorf(errorLoadConfigFormat, ignoreFileError)
		}
		settings.filterOptions.IgnoreGlobs = utils.MergePatterns(settings.filterOptions.IgnoreGlobs, filePatterns)
	}
	return settings, nil
}

// runTree walks the requested root and writes the rendered tree.
func runTree(command *cobra.Command, settings treeSettings, copier clipboard.Copier) error {
	filterConfiguration, filterError := filter.NewConfiguration(settings.filterOptions)
	if filterError != nil {
		return fmt.Errorf(errorFilterFormat, filterError)
	}

	logger, loggerError := newWalkLogger(settings.verbose)
	if loggerError != nil {
		return fmt.Errorf(errorLoggerFormat, loggerError)
	}
	defer func() {
		_ = logger.Sync()
	}()

	events, walkError := walker.Walk(settings.rootPath, walker.Options{
		Filter:         filterConfiguration,
		MaxDepth:       settings.maxDepth,
		FollowSymlinks: settings.followSymlinks,
		Logger:         logger,
	})
	if walkError != nil {
		return walkError
	}

	renderedLines, renderError := renderEvents(events, settings.format)
	if renderError != nil {
		return fmt.Errorf(errorRenderFormat, renderError)
	}
	if writeError := output.WriteLines(command.OutOrStdout(), renderedLines); writeError != nil {
		return writeError
	}

	if settings.clipboard && copier != nil {
		if copyError := copier.Copy(output.JoinLines(renderedLines)); copyError != nil {
			fmt.Fprintf(command.ErrOrStderr(), warningClipboardFormat, copyError)
		}
	}
	return nil
}

func renderEvents(events []types.RenderEvent, format string) ([]string, error) {
	if format == types.FormatJSON {
		encoded, jsonError := output.RenderJSON(events)
		if jsonError != nil {
			return nil, jsonError
		}
		return []string{encoded}, nil
	}
	return output.RenderLines(events), nil
}

// newWalkLogger only builds a real logger when verbose output was requested.
func newWalkLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return utils.NewApplicationLogger(true)
}

func valueOrDefault(value *bool, defaultValue bool) bool {
	if value == nil {
		return defaultValue
	}
	return *value
}

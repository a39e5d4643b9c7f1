package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion         = "unknown"
	develBuildVersion      = "(devel)"
	gitExecutableName      = "git"
	errorGitNotFoundFormat = ".git directory not found in or above %s"
)

var gitDescribeArgumentSets = [][]string{
	{"describe", "--tags", "--exact-match"},
	{"describe", "--tags", "--long", "--dirty"},
}

// GetApplicationVersion reports the module version recorded in the binary, falling
// back to git describe when running from a source checkout.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != develBuildVersion {
		return buildInfo.Main.Version
	}

	repositoryDirectory, gitDirectoryError := findGitDirectory(".")
	if gitDirectoryError != nil {
		return unknownVersion
	}
	for _, describeArguments := range gitDescribeArgumentSets {
		if describedVersion := runGitDescribe(repositoryDirectory, describeArguments); describedVersion != "" {
			return describedVersion
		}
	}
	return unknownVersion
}

func runGitDescribe(repositoryDirectory string, describeArguments []string) string {
	// #nosec G204
	describeCommand := exec.Command(gitExecutableName, describeArguments...)
	describeCommand.Dir = repositoryDirectory
	describeOutput, describeError := describeCommand.Output()
	if describeError != nil {
		return ""
	}
	return strings.TrimSpace(string(describeOutput))
}

// findGitDirectory searches upward from startDirectory for a directory containing .git.
func findGitDirectory(startDirectory string) (string, error) {
	absoluteStartDirectory, errorAbsolute := filepath.Abs(startDirectory)
	if errorAbsolute != nil {
		return "", fmt.Errorf("failed to get absolute path for %s: %w", startDirectory, errorAbsolute)
	}

	for currentDirectory := absoluteStartDirectory; ; {
		fileInformation, errorStat := os.Stat(filepath.Join(currentDirectory, GitDirectoryName))
		if errorStat == nil && fileInformation.IsDir() {
			return currentDirectory, nil
		}
		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			break
		}
		currentDirectory = parentDirectory
	}

	return "", fmt.Errorf(errorGitNotFoundFormat, absoluteStartDirectory)
}

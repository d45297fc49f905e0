package version

import (
	"bytes"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// mavenVersionRegex matches output like "Apache Maven 3.9.6 (...)".
var mavenVersionRegex = regexp.MustCompile(`\d+\.\d+\.\d+`)

// MavenBinaryInfo contains Maven binary information.
type MavenBinaryInfo struct {
	// Version is the Maven binary version.
	Version string `json:"version"`

	// Path is the path to the mvn binary.
	Path string `json:"path"`

	// Found indicates if a mvn binary was found.
	Found bool `json:"found"`

	// Message provides additional information when detection fails.
	Message string `json:"message,omitempty"`
}

// DetectMavenBinary finds and inspects the Maven installation used for the
// post-generation build.
func DetectMavenBinary() MavenBinaryInfo {
	path, err := exec.LookPath("mvn")
	if err != nil {
		return MavenBinaryInfo{
			Found:   false,
			Message: "mvn binary not found in PATH",
		}
	}

	version, err := getMavenVersion(path)
	if err != nil {
		return MavenBinaryInfo{
			Path:    path,
			Found:   true,
			Message: "failed to get Maven version: " + err.Error(),
		}
	}

	return MavenBinaryInfo{
		Version: version,
		Path:    path,
		Found:   true,
	}
}

// getMavenVersion executes 'mvn --version' and extracts the version string.
func getMavenVersion(mvnPath string) (string, error) {
	cmd := exec.Command(mvnPath, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", err
	}

	return extractVersion(out.String())
}

// extractVersion pulls the first semantic version out of version output.
func extractVersion(output string) (string, error) {
	match := mavenVersionRegex.FindString(strings.TrimSpace(output))
	if match == "" {
		return "", fmt.Errorf("no version found in output: %q", output)
	}
	return match, nil
}

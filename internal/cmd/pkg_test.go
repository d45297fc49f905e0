package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adobe/generator-aem-sub001/internal/errors"
)

func TestPackageWithoutConfigFails(t *testing.T) {
	fsys := afero.NewMemMapFs()
	newProject(t, fsys)

	err := runCLI(t, fsys, "package", "ui.apps", "--dir", "proj")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrPrecondition)
	assert.Contains(t, err.Error(), "Config Module found")

	// Nothing was written.
	exists, statErr := afero.DirExists(fsys, filepath.Join("proj", "ui.apps"))
	require.NoError(t, statErr)
	assert.False(t, exists)
}

func TestPackageWiresBundleDependencies(t *testing.T) {
	fsys := afero.NewMemMapFs()
	newProject(t, fsys)
	require.NoError(t, runCLI(t, fsys, "bundle", "core", "--dir", "proj"))
	require.NoError(t, runCLI(t, fsys, "config", "--dir", "proj"))

	require.NoError(t, runCLI(t, fsys, "package", "ui.apps", "--dir", "proj"))

	content, err := afero.ReadFile(fsys, filepath.Join("proj", "ui.apps", "pom.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<artifactId>myapp.core</artifactId>")
	assert.Contains(t, string(content), "<version>${project.version}</version>")
	assert.Contains(t, string(content), "/apps/myapp")
}

func TestPackageRerunKeepsSingleDependencyEntry(t *testing.T) {
	fsys := afero.NewMemMapFs()
	newProject(t, fsys)
	require.NoError(t, runCLI(t, fsys, "bundle", "core", "--dir", "proj"))
	require.NoError(t, runCLI(t, fsys, "config", "--dir", "proj"))
	require.NoError(t, runCLI(t, fsys, "package", "ui.apps", "--dir", "proj"))
	require.NoError(t, runCLI(t, fsys, "package", "ui.apps", "--dir", "proj"))

	content, err := afero.ReadFile(fsys, filepath.Join("proj", "ui.apps", "pom.xml"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(content), "<artifactId>myapp.core</artifactId>"))
}

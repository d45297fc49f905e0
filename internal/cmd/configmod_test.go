package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adobe/generator-aem-sub001/internal/errors"
	"github.com/adobe/generator-aem-sub001/internal/state"
)

func TestConfigDefaultDirectory(t *testing.T) {
	fsys := afero.NewMemMapFs()
	newProject(t, fsys)

	require.NoError(t, runCLI(t, fsys, "config", "--dir", "proj"))

	sidecar, err := state.LoadSidecar(fsys, filepath.Join("proj", "ui.config"))
	require.NoError(t, err)
	entry := sidecar.Entry(state.TypeConfig)
	require.NotNil(t, entry)
	assert.Equal(t, "myapp.ui.config", entry.String(state.PropArtifactID))
}

func TestSingletonConflictWritesNothing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	newProject(t, fsys)
	require.NoError(t, runCLI(t, fsys, "config", "ui.config", "--dir", "proj"))

	err := runCLI(t, fsys, "config", "other", "--dir", "proj")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConflict)
	assert.Contains(t, err.Error(), "only one is permitted")

	exists, statErr := afero.DirExists(fsys, filepath.Join("proj", "other"))
	require.NoError(t, statErr)
	assert.False(t, exists)
}

func TestSingletonRerunExtendsExisting(t *testing.T) {
	fsys := afero.NewMemMapFs()
	newProject(t, fsys)
	require.NoError(t, runCLI(t, fsys, "config", "--dir", "proj"))
	require.NoError(t, runCLI(t, fsys, "config", "--dir", "proj"))

	root, err := state.LoadSidecar(fsys, filepath.Join("proj", "ui.config"))
	require.NoError(t, err)
	assert.True(t, root.HasType(state.TypeConfig))
}

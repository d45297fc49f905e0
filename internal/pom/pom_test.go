package pom

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalPom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
    <modelVersion>4.0.0</modelVersion>
    <parent>
        <groupId>com.example</groupId>
        <artifactId>myapp</artifactId>
        <version>1.0.0-SNAPSHOT</version>
        <relativePath>../pom.xml</relativePath>
    </parent>
    <artifactId>myapp.core</artifactId>
    <name>My App - Core</name>
    <packaging>bundle</packaging>
</project>
`

func TestParse(t *testing.T) {
	t.Run("rejects markup without a project root", func(t *testing.T) {
		_, err := Parse(`<pom><artifactId>x</artifactId></pom>`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing <project> root")
	})

	t.Run("rejects malformed markup", func(t *testing.T) {
		_, err := Parse(`<project><artifactId>`)
		assert.Error(t, err)
	})
}

func TestCoordinates(t *testing.T) {
	d, err := Parse(minimalPom)
	require.NoError(t, err)

	t.Run("group and version fall back to the parent reference", func(t *testing.T) {
		c := d.Coordinates()
		assert.Equal(t, "com.example", c.GroupID)
		assert.Equal(t, "myapp.core", c.ArtifactID)
		assert.Equal(t, "1.0.0-SNAPSHOT", c.Version)
	})

	t.Run("parent coordinates read from the parent section", func(t *testing.T) {
		p := d.Parent()
		assert.Equal(t, Coordinates{GroupID: "com.example", ArtifactID: "myapp", Version: "1.0.0-SNAPSHOT"}, p)
	})

	t.Run("string form", func(t *testing.T) {
		assert.Equal(t, "com.example:myapp.core:1.0.0-SNAPSHOT", d.Coordinates().String())
		assert.Equal(t, "g:a", Coordinates{GroupID: "g", ArtifactID: "a"}.String())
	})

	t.Run("name and packaging", func(t *testing.T) {
		assert.Equal(t, "My App - Core", d.Name())
		assert.Equal(t, "bundle", d.Packaging())
	})
}

func TestModules(t *testing.T) {
	d, err := Parse(`<project><modules><module>core</module><module>ui.apps</module></modules></project>`)
	require.NoError(t, err)

	t.Run("lists declared modules in order", func(t *testing.T) {
		assert.Equal(t, []string{"core", "ui.apps"}, d.Modules())
	})

	t.Run("AddModule is idempotent", func(t *testing.T) {
		d.AddModule("ui.apps")
		d.AddModule("all")
		assert.Equal(t, []string{"core", "ui.apps", "all"}, d.Modules())
	})

	t.Run("AddModule creates the list when absent", func(t *testing.T) {
		bare, err := Parse(`<project/>`)
		require.NoError(t, err)
		bare.AddModule("core")
		assert.Equal(t, []string{"core"}, bare.Modules())
	})
}

func TestSerializeRoundTrip(t *testing.T) {
	d, err := Parse(minimalPom)
	require.NoError(t, err)

	out, err := d.Serialize()
	require.NoError(t, err)

	t.Run("sibling order is preserved", func(t *testing.T) {
		parentIdx := strings.Index(out, "<parent>")
		artifactIdx := strings.Index(out, "<artifactId>myapp.core</artifactId>")
		nameIdx := strings.Index(out, "<name>")
		require.True(t, parentIdx >= 0 && artifactIdx >= 0 && nameIdx >= 0)
		assert.Less(t, parentIdx, artifactIdx)
		assert.Less(t, artifactIdx, nameIdx)
	})

	t.Run("no self-closing elements survive the fixups", func(t *testing.T) {
		empty, err := Parse(`<project><modules></modules></project>`)
		require.NoError(t, err)
		text, err := empty.Serialize()
		require.NoError(t, err)
		assert.NotContains(t, text, "<modules/>")
		assert.Contains(t, text, "<modules></modules>")
	})
}

func TestLoadAndSave(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("myapp/core", 0o755))
	require.NoError(t, afero.WriteFile(fsys, "myapp/core/pom.xml", []byte(minimalPom), 0o644))

	t.Run("loads from a module directory", func(t *testing.T) {
		d, err := Load(fsys, "myapp/core")
		require.NoError(t, err)
		assert.Equal(t, "myapp.core", d.Coordinates().ArtifactID)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(fsys, "myapp/missing")
		assert.Error(t, err)
	})

	t.Run("exists", func(t *testing.T) {
		assert.True(t, Exists(fsys, "myapp/core"))
		assert.False(t, Exists(fsys, "myapp/missing"))
	})

	t.Run("save writes the fixed-up serialization", func(t *testing.T) {
		d, err := Load(fsys, "myapp/core")
		require.NoError(t, err)
		d.AddModule("it.tests")
		require.NoError(t, d.Save(fsys, "myapp/core"))

		content, err := afero.ReadFile(fsys, "myapp/core/pom.xml")
		require.NoError(t, err)
		assert.Contains(t, string(content), "<module>it.tests</module>")
	})
}

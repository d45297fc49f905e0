package pom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const existingBundlePom = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
    <modelVersion>4.0.0</modelVersion>
    <artifactId>myapp.core</artifactId>
    <properties>
        <java.version>8</java.version>
    </properties>
    <dependencies>
        <dependency>
            <groupId>com.acme</groupId>
            <artifactId>hand-added</artifactId>
            <version>2.0</version>
        </dependency>
    </dependencies>
</project>
`

const bundleFragment = `<project>
    <artifactId>myapp.core</artifactId>
    <properties>
        <java.version>11</java.version>
        <aem.version>cloud</aem.version>
    </properties>
    <dependencies>
        <dependency>
            <groupId>org.osgi</groupId>
            <artifactId>org.osgi.annotation.versioning</artifactId>
        </dependency>
    </dependencies>
    <build>
        <plugins>
            <plugin>
                <groupId>biz.aQute.bnd</groupId>
                <artifactId>bnd-maven-plugin</artifactId>
            </plugin>
        </plugins>
    </build>
</project>
`

func TestDescriptorMerge(t *testing.T) {
	t.Run("custom dependency survives regeneration", func(t *testing.T) {
		existing, err := Parse(existingBundlePom)
		require.NoError(t, err)
		fragment, err := Parse(bundleFragment)
		require.NoError(t, err)

		existing.Merge(fragment)

		deps := FindSection(existing.Project(), "dependencies")
		require.NotNil(t, deps)
		children := deps.ChildElements()
		require.Len(t, children, 2)
		assert.Equal(t, "hand-added", childText(children[0], "artifactId"))
		assert.Equal(t, "org.osgi.annotation.versioning", childText(children[1], "artifactId"))
	})

	t.Run("existing property values win over the fragment", func(t *testing.T) {
		existing, err := Parse(existingBundlePom)
		require.NoError(t, err)
		fragment, err := Parse(bundleFragment)
		require.NoError(t, err)

		existing.Merge(fragment)

		props := FindSection(existing.Project(), "properties")
		require.NotNil(t, props)
		assert.Equal(t, "8", childText(props, "java.version"))
		assert.Equal(t, "cloud", childText(props, "aem.version"))
	})

	t.Run("fragment-only sections are copied in", func(t *testing.T) {
		existing, err := Parse(existingBundlePom)
		require.NoError(t, err)
		fragment, err := Parse(bundleFragment)
		require.NoError(t, err)

		existing.Merge(fragment)

		plugins := FindSection(existing.Project(), "build", "plugins")
		require.NotNil(t, plugins)
		require.Len(t, plugins.ChildElements(), 1)
		assert.Equal(t, "bnd-maven-plugin", childText(plugins.ChildElements()[0], "artifactId"))
	})

	t.Run("merge is idempotent", func(t *testing.T) {
		existing, err := Parse(existingBundlePom)
		require.NoError(t, err)
		fragment, err := Parse(bundleFragment)
		require.NoError(t, err)

		existing.Merge(fragment)
		first, err := existing.Serialize()
		require.NoError(t, err)

		fragment2, err := Parse(bundleFragment)
		require.NoError(t, err)
		existing.Merge(fragment2)
		second, err := existing.Serialize()
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestDescriptorMergeFilters(t *testing.T) {
	existingPom := `<project>
    <artifactId>myapp.ui.apps</artifactId>
    <build>
        <plugins>
            <plugin>
                <groupId>org.apache.jackrabbit</groupId>
                <artifactId>filevault-package-maven-plugin</artifactId>
                <configuration>
                    <filters>
                        <filter><root>/apps/myapp</root></filter>
                        <filter><root>/conf/legacy</root></filter>
                    </filters>
                </configuration>
            </plugin>
        </plugins>
    </build>
</project>
`
	fragmentPom := `<project>
    <artifactId>myapp.ui.apps</artifactId>
    <build>
        <plugins>
            <plugin>
                <groupId>org.apache.jackrabbit</groupId>
                <artifactId>filevault-package-maven-plugin</artifactId>
                <configuration>
                    <filters>
                        <filter><root>/apps/myapp</root></filter>
                        <filter><root>/content/myapp</root></filter>
                    </filters>
                </configuration>
            </plugin>
        </plugins>
    </build>
</project>
`

	existing, err := Parse(existingPom)
	require.NoError(t, err)
	fragment, err := Parse(fragmentPom)
	require.NoError(t, err)

	existing.Merge(fragment)

	out, err := existing.Serialize()
	require.NoError(t, err)

	// Generated filters lead in template order; the hand-added one is
	// appended behind the retained-entry comment.
	appsIdx := strings.Index(out, "/apps/myapp")
	contentIdx := strings.Index(out, "/content/myapp")
	legacyIdx := strings.Index(out, "/conf/legacy")
	require.True(t, appsIdx >= 0 && contentIdx >= 0 && legacyIdx >= 0)
	assert.Less(t, appsIdx, contentIdx)
	assert.Less(t, contentIdx, legacyIdx)
	assert.Contains(t, out, retainedFilterComment)

	// Single-root filters collapse onto one line.
	assert.Contains(t, out, "<filter><root>/apps/myapp</root></filter>")
}

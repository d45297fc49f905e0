package pom

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// element parses a snippet and returns its root element.
func element(t *testing.T, snippet string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(snippet))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

// serialize renders an element for structural comparison in assertions.
func serialize(t *testing.T, el *etree.Element) string {
	t.Helper()
	doc := etree.NewDocument()
	doc.AddChild(el.Copy())
	doc.Indent(4)
	text, err := doc.WriteToString()
	require.NoError(t, err)
	return text
}

func TestFindSection(t *testing.T) {
	root := element(t, `<project><build><plugins><plugin/></plugins></build></project>`)

	t.Run("descends through each tag in order", func(t *testing.T) {
		plugins := FindSection(root, "build", "plugins")
		require.NotNil(t, plugins)
		assert.Equal(t, "plugins", plugins.Tag)
	})

	t.Run("missing intermediate segment returns nil without panicking", func(t *testing.T) {
		assert.Nil(t, FindSection(root, "reporting", "plugins"))
		assert.Nil(t, FindSection(root, "build", "pluginManagement", "plugins"))
	})

	t.Run("nil start returns nil", func(t *testing.T) {
		assert.Nil(t, FindSection(nil, "build"))
	})

	t.Run("first match wins with repeated siblings", func(t *testing.T) {
		dup := element(t, `<project><profiles><profile><id>a</id></profile><profile><id>b</id></profile></profiles></project>`)
		profile := FindSection(dup, "profiles", "profile")
		require.NotNil(t, profile)
		assert.Equal(t, "a", childText(profile, "id"))
	})
}

func TestMergeSection(t *testing.T) {
	byTag := func(a, b *etree.Element) bool { return a.Tag == b.Tag }

	t.Run("appends unmatched entries in incoming order", func(t *testing.T) {
		target := element(t, `<properties><aem.version>cloud</aem.version></properties>`)
		incoming := element(t, `<properties><java.version>11</java.version><node.version>18</node.version></properties>`)

		MergeSection(target, incoming.ChildElements(), byTag)

		children := target.ChildElements()
		require.Len(t, children, 3)
		assert.Equal(t, "aem.version", children[0].Tag)
		assert.Equal(t, "java.version", children[1].Tag)
		assert.Equal(t, "node.version", children[2].Tag)
	})

	t.Run("matched entries suppress insertion without updating", func(t *testing.T) {
		target := element(t, `<properties><java.version>8</java.version></properties>`)
		incoming := element(t, `<properties><java.version>11</java.version></properties>`)

		MergeSection(target, incoming.ChildElements(), byTag)

		children := target.ChildElements()
		require.Len(t, children, 1)
		assert.Equal(t, "8", children[0].Text())
	})

	t.Run("merging the same list twice is idempotent", func(t *testing.T) {
		target := element(t, `<properties/>`)
		incoming := element(t, `<properties><a>1</a><b>2</b></properties>`)

		MergeSection(target, incoming.ChildElements(), byTag)
		first := serialize(t, target)
		MergeSection(target, incoming.ChildElements(), byTag)

		assert.Equal(t, first, serialize(t, target))
	})

	t.Run("nil target is a no-op", func(t *testing.T) {
		incoming := element(t, `<properties><a>1</a></properties>`)
		MergeSection(nil, incoming.ChildElements(), byTag)
	})
}

func TestMergeDependencies(t *testing.T) {
	t.Run("identity is the group and artifact pair", func(t *testing.T) {
		target := element(t, `<dependencies>
			<dependency><groupId>org.osgi</groupId><artifactId>osgi.core</artifactId><version>8.0.0</version></dependency>
		</dependencies>`)
		incoming := element(t, `<dependencies>
			<dependency><groupId>org.osgi</groupId><artifactId>osgi.core</artifactId><version>9.0.0</version></dependency>
			<dependency><groupId>org.osgi</groupId><artifactId>osgi.annotation</artifactId><version>8.1.0</version></dependency>
		</dependencies>`)

		MergeDependencies(target, incoming.ChildElements(), nil)

		children := target.ChildElements()
		require.Len(t, children, 2)
		// The pre-existing entry keeps its version.
		assert.Equal(t, "8.0.0", childText(children[0], "version"))
		assert.Equal(t, "osgi.annotation", childText(children[1], "artifactId"))
	})

	t.Run("existing entry is byte-identical after a suppressed merge", func(t *testing.T) {
		target := element(t, `<dependencies>
			<dependency><groupId>com.adobe.aem</groupId><artifactId>uber-jar</artifactId><scope>provided</scope><exclusions><exclusion><groupId>x</groupId><artifactId>y</artifactId></exclusion></exclusions></dependency>
		</dependencies>`)
		before := serialize(t, target.ChildElements()[0])

		incoming := element(t, `<dependencies>
			<dependency><groupId>com.adobe.aem</groupId><artifactId>uber-jar</artifactId><version>6.5.0</version></dependency>
		</dependencies>`)
		MergeDependencies(target, incoming.ChildElements(), nil)

		require.Len(t, target.ChildElements(), 1)
		assert.Equal(t, before, serialize(t, target.ChildElements()[0]))
	})

	t.Run("override rewrites incoming coordinates before the identity check", func(t *testing.T) {
		target := element(t, `<dependencies>
			<dependency><groupId>com.adobe.aem</groupId><artifactId>aem-sdk-api</artifactId><version>2024.1</version></dependency>
		</dependencies>`)
		incoming := element(t, `<dependencies>
			<dependency><groupId>__groupId__</groupId><artifactId>__artifactId__</artifactId></dependency>
		</dependencies>`)

		MergeDependencies(target, incoming.ChildElements(), &Coordinates{
			GroupID:    "com.adobe.aem",
			ArtifactID: "aem-sdk-api",
		})

		// The placeholder resolved to an already-present dependency.
		assert.Len(t, target.ChildElements(), 1)
	})

	t.Run("merge is idempotent", func(t *testing.T) {
		target := element(t, `<dependencies/>`)
		incoming := element(t, `<dependencies>
			<dependency><groupId>g</groupId><artifactId>a</artifactId><version>1</version></dependency>
		</dependencies>`)

		MergeDependencies(target, incoming.ChildElements(), nil)
		first := serialize(t, target)
		MergeDependencies(target, incoming.ChildElements(), nil)

		assert.Equal(t, first, serialize(t, target))
	})
}

func TestRemoveDependencies(t *testing.T) {
	t.Run("removes matching entries by coordinates", func(t *testing.T) {
		target := element(t, `<dependencies>
			<dependency><groupId>com.adobe.aem</groupId><artifactId>uber-jar</artifactId><version>6.5.0</version></dependency>
			<dependency><groupId>org.osgi</groupId><artifactId>osgi.core</artifactId></dependency>
		</dependencies>`)
		remove := element(t, `<dependencies>
			<dependency><groupId>com.adobe.aem</groupId><artifactId>uber-jar</artifactId></dependency>
		</dependencies>`)

		RemoveDependencies(target, remove.ChildElements())

		children := target.ChildElements()
		require.Len(t, children, 1)
		assert.Equal(t, "osgi.core", childText(children[0], "artifactId"))
	})

	t.Run("remove then merge restores a structurally equal entry", func(t *testing.T) {
		original := `<dependencies>
			<dependency><groupId>com.adobe.aem</groupId><artifactId>uber-jar</artifactId><version>6.5.0</version><scope>provided</scope></dependency>
		</dependencies>`
		target := element(t, original)
		replacement := element(t, original)

		RemoveDependencies(target, replacement.ChildElements())
		require.Empty(t, target.ChildElements())

		MergeDependencies(target, replacement.ChildElements(), nil)
		require.Len(t, target.ChildElements(), 1)
		assert.True(t, DeepEqual(element(t, original).ChildElements()[0], target.ChildElements()[0]))
	})
}

func TestMergeFilters(t *testing.T) {
	t.Run("appends unmatched filters behind a retained comment", func(t *testing.T) {
		target := element(t, `<filters><filter><root>/apps/myapp</root></filter></filters>`)
		incoming := element(t, `<filters>
			<filter><root>/apps/myapp</root></filter>
			<filter><root>/content/dam/myapp</root></filter>
		</filters>`)

		MergeFilters(target, incoming.ChildElements())

		children := target.ChildElements()
		require.Len(t, children, 2)
		assert.Equal(t, "/content/dam/myapp", childText(children[1], "root"))

		text := serialize(t, target)
		assert.Contains(t, text, "<!--"+retainedFilterComment+"-->")
	})

	t.Run("equality is full structural equality", func(t *testing.T) {
		target := element(t, `<filters><filter><root>/apps/myapp</root><mode>merge</mode></filter></filters>`)
		incoming := element(t, `<filters><filter><root>/apps/myapp</root></filter></filters>`)

		MergeFilters(target, incoming.ChildElements())

		// Differs structurally, so the incoming entry is appended.
		assert.Len(t, target.ChildElements(), 2)
	})
}

func TestSameCoordinates(t *testing.T) {
	t.Run("plugin groupId defaults to the Maven plugin group", func(t *testing.T) {
		a := element(t, `<plugin><artifactId>maven-surefire-plugin</artifactId></plugin>`)
		b := element(t, `<plugin><groupId>org.apache.maven.plugins</groupId><artifactId>maven-surefire-plugin</artifactId></plugin>`)
		assert.True(t, SameCoordinates(a, b))
	})

	t.Run("dependency groupId has no default", func(t *testing.T) {
		a := element(t, `<dependency><artifactId>a</artifactId></dependency>`)
		b := element(t, `<dependency><groupId>org.apache.maven.plugins</groupId><artifactId>a</artifactId></dependency>`)
		assert.False(t, SameCoordinates(a, b))
	})
}

func TestDeepEqual(t *testing.T) {
	t.Run("whitespace and comments are ignored", func(t *testing.T) {
		a := element(t, `<filter><root> /apps/x </root></filter>`)
		b := element(t, `<filter><!-- note --><root>/apps/x</root></filter>`)
		assert.True(t, DeepEqual(a, b))
	})

	t.Run("child order matters", func(t *testing.T) {
		a := element(t, `<e><x>1</x><y>2</y></e>`)
		b := element(t, `<e><y>2</y><x>1</x></e>`)
		assert.False(t, DeepEqual(a, b))
	})

	t.Run("attributes must match", func(t *testing.T) {
		a := element(t, `<e k="1"/>`)
		b := element(t, `<e k="2"/>`)
		assert.False(t, DeepEqual(a, b))
	})
}

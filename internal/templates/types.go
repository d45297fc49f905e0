// Package templates provides the embedded module templates and rendering.
package templates

// Data holds the values substituted into template files.
type Data struct {
	// GroupID is the Maven group identifier of the project.
	GroupID string

	// ArtifactID is the module's artifact identifier.
	ArtifactID string

	// Version is the shared project version.
	Version string

	// Name is the human-readable module name.
	Name string

	// AppID is the project-wide application identifier (root artifact id).
	AppID string

	// Package is the Java package for bundle code.
	Package string

	// AemVersion is the target platform version ("cloud" or a 6.5.x value).
	AemVersion string

	// SdkVersion is the resolved aem-sdk-api version for cloud targets.
	SdkVersion string

	// JavaVersion is the Java release the build targets.
	JavaVersion string

	// Parent holds the root project's coordinates for <parent> references.
	Parent ParentRef
}

// ParentRef carries the parent coordinates rendered into module descriptors.
type ParentRef struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// Cloud reports whether the target platform is AEM as a Cloud Service,
// which selects aem-sdk-api over uber-jar in rendered descriptors.
func (d Data) Cloud() bool {
	return d.AemVersion == "cloud"
}

// File is one rendered template file.
type File struct {
	// TargetPath is the output path relative to the module directory, with
	// the .tmpl suffix removed and package placeholders expanded.
	TargetPath string

	// Content is the rendered content.
	Content []byte
}

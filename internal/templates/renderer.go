package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed all:project all:bundle all:package all:config all:all all:tests all:structure
var templateFS embed.FS

// packagePlaceholder is the path segment in template trees replaced by the
// slash-form Java package of the module being generated.
const packagePlaceholder = "__package__"

// Names returns the embedded template tree names.
func Names() []string {
	return []string{"project", "bundle", "package", "config", "all", "tests", "structure"}
}

// Has reports whether a template tree exists for the given module type.
func Has(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}

// RenderString renders a single template string against data. Used for the
// descriptor fragments that are merged rather than written wholesale.
func RenderString(content string, data Data) (string, error) {
	tmpl, err := template.New("inline").Parse(content)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), nil
}

// Render renders every file of the named template tree against data.
// File paths ending in .tmpl lose the suffix; a __package__ path segment
// expands to the slash form of data.Package.
func Render(name string, data Data) ([]File, error) {
	if !Has(name) {
		return nil, fmt.Errorf("unknown template %q; valid templates: %s", name, strings.Join(Names(), ", "))
	}

	var files []File
	err := fs.WalkDir(templateFS, name, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		content, err := fs.ReadFile(templateFS, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		rendered := content
		if strings.HasSuffix(path, ".tmpl") {
			text, err := RenderString(string(content), data)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", path, err)
			}
			rendered = []byte(text)
		}

		targetPath := strings.TrimPrefix(path, name+"/")
		targetPath = strings.TrimSuffix(targetPath, ".tmpl")
		if strings.Contains(targetPath, packagePlaceholder) {
			packagePath := strings.ReplaceAll(data.Package, ".", "/")
			targetPath = strings.ReplaceAll(targetPath, packagePlaceholder, packagePath)
		}

		files = append(files, File{TargetPath: targetPath, Content: rendered})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking template %s: %w", name, err)
	}

	return files, nil
}

package maven

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/adobe/generator-aem-sub001/internal/errors"
)

// DefaultRepositoryURL is the public repository queried for artifact
// metadata when no override is configured.
const DefaultRepositoryURL = "https://repo1.maven.org/maven2"

// MetadataClient resolves released artifact versions against a Maven
// repository's maven-metadata.xml endpoint.
type MetadataClient struct {
	baseURL string
	client  *http.Client
}

// NewMetadataClient creates a client for the given repository base URL,
// falling back to DefaultRepositoryURL when blank.
func NewMetadataClient(baseURL string) *MetadataClient {
	if baseURL == "" {
		baseURL = DefaultRepositoryURL
	}
	return &MetadataClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// LatestVersion resolves the latest released version of an artifact.
// It prefers the metadata's <latest> field and falls back to the last
// entry of the <versions> list. Failures are surfaced to the caller
// without retrying.
func (c *MetadataClient) LatestVersion(ctx context.Context, groupID, artifactID string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s/maven-metadata.xml",
		c.baseURL, strings.ReplaceAll(groupID, ".", "/"), artifactID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building metadata request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.NewExternalError("fetching metadata for "+groupID+":"+artifactID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.NewExternalError(
			fmt.Sprintf("fetching metadata for %s:%s", groupID, artifactID),
			fmt.Errorf("unexpected status %s from %s", resp.Status, url),
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewExternalError("reading metadata response", err)
	}

	version, err := parseLatestVersion(body)
	if err != nil {
		return "", errors.NewExternalError("parsing metadata for "+groupID+":"+artifactID, err)
	}
	return version, nil
}

func parseLatestVersion(body []byte) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return "", err
	}
	root := doc.Root()
	if root == nil {
		return "", fmt.Errorf("empty metadata document")
	}

	versioning := root.SelectElement("versioning")
	if versioning == nil {
		return "", fmt.Errorf("metadata has no versioning section")
	}

	if latest := versioning.SelectElement("latest"); latest != nil {
		if v := strings.TrimSpace(latest.Text()); v != "" {
			return v, nil
		}
	}

	versions := versioning.SelectElement("versions")
	if versions != nil {
		entries := versions.SelectElements("version")
		if len(entries) > 0 {
			return strings.TrimSpace(entries[len(entries)-1].Text()), nil
		}
	}

	return "", fmt.Errorf("metadata lists no versions")
}

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	assert.Equal(t, Version, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.String(), "aemgen")
}

func TestExtractVersion(t *testing.T) {
	t.Run("maven version banner", func(t *testing.T) {
		v, err := extractVersion("Apache Maven 3.9.6 (bc0240f3c744dd6b6ec2920b3cd08dcc295161ae)\nMaven home: /usr/share/maven")
		require.NoError(t, err)
		assert.Equal(t, "3.9.6", v)
	})

	t.Run("no version present", func(t *testing.T) {
		_, err := extractVersion("command not found")
		assert.Error(t, err)
	})
}

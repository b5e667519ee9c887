package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionString(t *testing.T) {
	v := Version{Major: "1", Minor: "2", Patch: "3", Metadata: "rc1", Build: "abcdef"}
	assert.Equal(t, "Version: 1.2.3-rc1\nBuild: abcdef", v.String())

	v.Metadata = ""
	assert.Equal(t, "Version: 1.2.3\nBuild: abcdef", v.String())
}

func TestBuildInfo(t *testing.T) {
	assert.True(t, strings.HasPrefix(BuildInfo(), runtime.Version()+"\n"))
}

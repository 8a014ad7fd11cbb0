package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	i := Info{CommitHash: "0123456789abcdef", BuildTime: "2026-01-02", Version: "v1.2.3"}
	assert.Equal(t, "0123456", i.Short())
	assert.Equal(t, "tspoet v1.2.3 (commit 0123456, built 2026-01-02)", i.String())

	assert.Equal(t, "dev", Info{CommitHash: "dev"}.Short())
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
}

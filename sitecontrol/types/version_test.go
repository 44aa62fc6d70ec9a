package types

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionInfoString(t *testing.T) {
	info := &VersionInfo{
		Version:   "v0.3.0",
		Commit:    "abc123",
		BuildTime: "2026-10-01T10:00:00Z",
		Go:        GoInfo{Version: "go1.25.1", OS: "linux", Arch: "amd64"},
		Dirty:     true,
		Renderer: map[string]string{
			"github.com/chasefleming/elem-go": "v0.31.0",
		},
	}

	want := "lyrasite version v0.3.0-dirty\n" +
		"commit: abc123\n" +
		"build time: 2026-10-01T10:00:00Z\n" +
		"built with: go1.25.1 linux/amd64\n" +
		"github.com/chasefleming/elem-go: v0.31.0\n"

	assert.Equal(t, want, info.String())
}

func TestGetVersionInfo(t *testing.T) {
	info := GetVersionInfo()

	assert.NotEmpty(t, info.Version)
	assert.Equal(t, runtime.Version(), info.Go.Version)
	assert.Equal(t, runtime.GOOS, info.Go.OS)
	assert.Same(t, info, GetVersionInfo())
}

func TestVersionFrom(t *testing.T) {
	assert.Equal(t, "dev", versionFrom(nil).Version)

	bi := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/lyralogics/lyrasite", Version: "v0.3.0"},
		Deps: []*debug.Module{
			{Path: "github.com/chasefleming/elem-go", Version: "v0.31.0"},
			{Path: "github.com/spf13/cobra", Version: "v1.10.2"},
			{Path: "github.com/gorilla/mux", Version: "v1.8.1"},
		},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2026-10-01T10:00:00Z"},
		},
	}

	info := versionFrom(bi)
	assert.Equal(t, "v0.3.0", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, "2026-10-01T10:00:00Z", info.BuildTime)
	assert.True(t, info.Dirty)
	assert.Equal(t, map[string]string{
		"github.com/chasefleming/elem-go": "v0.31.0",
		"github.com/gorilla/mux":          "v1.8.1",
	}, info.Renderer)

	bi.Main.Version = "(devel)"
	assert.Equal(t, "dev", versionFrom(bi).Version)
}

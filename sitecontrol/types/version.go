package types

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
)

type GoInfo struct {
	Version string `json:"version"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	Go        GoInfo `json:"go"`
	Dirty     bool   `json:"dirty"`
	// Renderer holds the versions of the modules that shape the markup,
	// keyed by module path.
	Renderer map[string]string `json:"renderer,omitempty"`
}

// rendererModules are reported because an update of any of them can change
// the rendered bytes.
var rendererModules = []string{
	"github.com/chasefleming/elem-go",
	"github.com/gorilla/mux",
	"github.com/microcosm-cc/bluemonday",
}

func (v *VersionInfo) String() string {
	version := v.Version
	if v.Dirty && !strings.HasSuffix(version, "-dirty") {
		version += "-dirty"
	}

	lines := []string{
		"lyrasite version " + version,
		"commit: " + v.Commit,
		"build time: " + v.BuildTime,
		fmt.Sprintf("built with: %s %s/%s", v.Go.Version, v.Go.OS, v.Go.Arch),
	}
	for _, path := range rendererModules {
		if modVersion, ok := v.Renderer[path]; ok {
			lines = append(lines, path+": "+modVersion)
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

// GetVersionInfo reads the build information once and caches it.
var GetVersionInfo = sync.OnceValue(func() *VersionInfo {
	bi, _ := debug.ReadBuildInfo()

	return versionFrom(bi)
})

// versionFrom extracts the version, the VCS stamp and the renderer module
// versions from bi. A nil bi yields the development defaults.
func versionFrom(bi *debug.BuildInfo) *VersionInfo {
	info := &VersionInfo{
		Version:   "dev",
		Commit:    "unknown",
		BuildTime: "unknown",
		Go: GoInfo{
			Version: runtime.Version(),
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
		},
	}
	if bi == nil {
		return info
	}

	if v := bi.Main.Version; v != "" && v != "(devel)" {
		info.Version = v
	}

	for _, dep := range bi.Deps {
		for _, path := range rendererModules {
			if dep.Path != path {
				continue
			}
			if info.Renderer == nil {
				info.Renderer = make(map[string]string, len(rendererModules))
			}
			info.Renderer[path] = dep.Version
		}
	}

	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.Commit = setting.Value
		case "vcs.modified":
			info.Dirty = setting.Value == "true"
		case "vcs.time":
			info.BuildTime = setting.Value
		}
	}

	return info
}

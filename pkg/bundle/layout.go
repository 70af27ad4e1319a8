// Package bundle lays out a VST3 bundle directory around a built binary.
package bundle

import (
	"fmt"
	"path/filepath"
)

// Layout is the set of paths inside one platform's bundle, relative to the
// directory that contains the bundle
type Layout struct {
	Root       string
	Binary     string
	ModuleInfo string
	// Plist and PkgInfo are only set on darwin
	Plist   string
	PkgInfo string
}

var linuxArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "aarch64",
	"386":   "i386",
	"arm":   "armv7l",
}

var windowsArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "x86",
}

// NewLayout computes the bundle structure for a platform
func NewLayout(name, goos, goarch string) (Layout, error) {
	if name == "" {
		return Layout{}, fmt.Errorf("bundle name is empty")
	}

	root := name + ".vst3"
	contents := filepath.Join(root, "Contents")
	l := Layout{
		Root:       root,
		ModuleInfo: filepath.Join(contents, "Resources", "moduleinfo.json"),
	}

	switch goos {
	case "linux":
		arch, ok := linuxArch[goarch]
		if !ok {
			return Layout{}, fmt.Errorf("unsupported linux arch %q", goarch)
		}
		l.Binary = filepath.Join(contents, arch+"-linux", name+".so")
	case "windows":
		arch, ok := windowsArch[goarch]
		if !ok {
			return Layout{}, fmt.Errorf("unsupported windows arch %q", goarch)
		}
		l.Binary = filepath.Join(contents, arch+"-win", name+".vst3")
	case "darwin":
		l.Binary = filepath.Join(contents, "MacOS", name)
		l.Plist = filepath.Join(contents, "Info.plist")
		l.PkgInfo = filepath.Join(contents, "PkgInfo")
	default:
		return Layout{}, fmt.Errorf("unsupported os %q", goos)
	}
	return l, nil
}

package jdk

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/provide-io/jpackfx/pkg/errs"
	"howett.net/plist"
)

// BundleInfo is the subset of a macOS JDK bundle's Info.plist jpackfx reads.
type BundleInfo struct {
	Name       string `plist:"CFBundleName"`
	Identifier string `plist:"CFBundleIdentifier"`
	JavaVM     struct {
		Version         string `plist:"JVMVersion"`
		Vendor          string `plist:"JVMVendor"`
		PlatformVersion string `plist:"JVMPlatformVersion"`
	} `plist:"JavaVM"`
}

// ReadBundleInfo reads <root>/Contents/Info.plist.
func ReadBundleInfo(root string) (*BundleInfo, error) {
	path := filepath.Join(root, "Contents", "Info.plist")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NotFound(err, "reading %s", path)
	}
	var info BundleInfo
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return nil, errs.BadFile(err, "decoding %s", path)
	}
	return &info, nil
}

// SuggestName derives a display label for a JDK root: the bundle name and
// version for macOS bundles, the directory name otherwise.
func SuggestName(root string, system OperatingSystem) string {
	if system == OSX {
		if info, err := ReadBundleInfo(root); err == nil && info.Name != "" {
			if info.JavaVM.Version != "" {
				return info.Name + " " + info.JavaVM.Version
			}
			return info.Name
		}
	}
	name := filepath.Base(filepath.Clean(root))
	return strings.TrimSuffix(name, ".jdk")
}

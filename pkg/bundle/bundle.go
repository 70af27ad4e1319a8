package bundle

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/r-cha/drumsynth/pkg/framework/plugin"
)

// ErrBinaryNotFound is returned when the built plugin binary is missing.
var ErrBinaryNotFound = errors.New("plugin binary not found")

// sdkVersion is the VST3 SDK version recorded in moduleinfo.json
const sdkVersion = "VST 3.7.9"

// Bundler writes bundles for one target platform
type Bundler struct {
	OutDir string
	GOOS   string
	GOARCH string
	Logger *zap.Logger
}

// Create copies binary into a fresh bundle for info and writes its
// metadata. It returns the bundle root path. An existing bundle with the
// same name is replaced.
func (b *Bundler) Create(binary string, info plugin.Info) (string, error) {
	log := b.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if err := info.Validate(); err != nil {
		return "", fmt.Errorf("plugin info: %w", err)
	}
	st, err := os.Stat(binary)
	if err != nil || st.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrBinaryNotFound, binary)
	}

	layout, err := NewLayout(info.Name, b.GOOS, b.GOARCH)
	if err != nil {
		return "", err
	}

	root := filepath.Join(b.OutDir, layout.Root)
	if err := os.RemoveAll(root); err != nil {
		return "", fmt.Errorf("remove old bundle: %w", err)
	}

	if err := copyFile(binary, filepath.Join(b.OutDir, layout.Binary), 0o755); err != nil {
		return "", fmt.Errorf("copy binary: %w", err)
	}

	moduleInfo, err := ModuleInfo(info)
	if err != nil {
		return "", err
	}
	if err := writeFile(filepath.Join(b.OutDir, layout.ModuleInfo), moduleInfo); err != nil {
		return "", err
	}

	if layout.Plist != "" {
		plist, err := InfoPlist(info)
		if err != nil {
			return "", err
		}
		if err := writeFile(filepath.Join(b.OutDir, layout.Plist), plist); err != nil {
			return "", err
		}
		if err := writeFile(filepath.Join(b.OutDir, layout.PkgInfo), []byte("BNDL????")); err != nil {
			return "", err
		}
	}

	log.Info("bundle created",
		zap.String("path", root),
		zap.String("os", b.GOOS),
		zap.String("arch", b.GOARCH),
	)
	return root, nil
}

type factoryInfo struct {
	Vendor string          `json:"Vendor"`
	URL    string          `json:"URL"`
	Email  string          `json:"E-Mail"`
	Flags  map[string]bool `json:"Flags"`
}

type classInfo struct {
	CID           string   `json:"CID"`
	Category      string   `json:"Category"`
	Name          string   `json:"Name"`
	Vendor        string   `json:"Vendor"`
	Version       string   `json:"Version"`
	SDKVersion    string   `json:"SDKVersion"`
	SubCategories []string `json:"Sub Categories"`
	ClassFlags    int      `json:"Class Flags"`
	Cardinality   int      `json:"Cardinality"`
	Snapshots     []string `json:"Snapshots"`
}

type moduleInfo struct {
	Name        string      `json:"Name"`
	Version     string      `json:"Version"`
	FactoryInfo factoryInfo `json:"Factory Info"`
	Classes     []classInfo `json:"Classes"`
}

// ModuleInfo renders Contents/Resources/moduleinfo.json
func ModuleInfo(info plugin.Info) ([]byte, error) {
	uid := info.UID()
	mi := moduleInfo{
		Name:    info.Name,
		Version: info.Version,
		FactoryInfo: factoryInfo{
			Vendor: info.Vendor,
			URL:    info.URL,
			Email:  info.Email,
			Flags: map[string]bool{
				"Unicode":                   true,
				"Classes Discardable":       false,
				"Component Non Discardable": false,
			},
		},
		Classes: []classInfo{{
			CID:           strings.ToUpper(hex.EncodeToString(uid[:])),
			Category:      "Audio Module Class",
			Name:          info.Name,
			Vendor:        info.Vendor,
			Version:       info.Version,
			SDKVersion:    sdkVersion,
			SubCategories: info.SubCategories,
			Cardinality:   0x7FFFFFFF,
			Snapshots:     []string{},
		}},
	}

	data, err := json.MarshalIndent(mi, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode moduleinfo: %w", err)
	}
	return append(data, '\n'), nil
}

var plistTemplate = template.Must(template.New("plist").Funcs(template.FuncMap{"xml": xmlEscape}).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleDevelopmentRegion</key>
	<string>English</string>
	<key>CFBundleExecutable</key>
	<string>{{xml .Name}}</string>
	<key>CFBundleIdentifier</key>
	<string>{{xml .ID}}</string>
	<key>CFBundleName</key>
	<string>{{xml .Name}}</string>
	<key>CFBundleDisplayName</key>
	<string>{{xml .Name}}</string>
	<key>CFBundlePackageType</key>
	<string>BNDL</string>
	<key>CFBundleSignature</key>
	<string>????</string>
	<key>CFBundleShortVersionString</key>
	<string>{{xml .Version}}</string>
	<key>CFBundleVersion</key>
	<string>{{xml .Version}}</string>
	<key>NSHumanReadableCopyright</key>
	<string>{{xml .Vendor}}</string>
	<key>NSHighResolutionCapable</key>
	<true/>
</dict>
</plist>
`))

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// InfoPlist renders Contents/Info.plist for macOS bundles
func InfoPlist(info plugin.Info) ([]byte, error) {
	var buf bytes.Buffer
	if err := plistTemplate.Execute(&buf, info); err != nil {
		return nil, fmt.Errorf("render Info.plist: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func copyFile(src, dst string, mode os.FileMode) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

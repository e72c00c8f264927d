// Package project models one installer-build project and stores it as
// projects/<name>.json under the base directory.
package project

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/jdk"
)

// Installer types understood by jpackage.
const (
	TypeAppImage = "app-image"
	TypeEXE      = "exe"
	TypeMSI      = "msi"
	TypeDMG      = "dmg"
	TypePKG      = "pkg"
	TypeDEB      = "deb"
	TypeRPM      = "rpm"
)

// InstallerTypes lists the installer types valid on each platform.
var InstallerTypes = map[jdk.OperatingSystem][]string{
	jdk.Windows: {TypeAppImage, TypeEXE, TypeMSI},
	jdk.OSX:     {TypeAppImage, TypeDMG, TypePKG},
	jdk.Linux:   {TypeAppImage, TypeDEB, TypeRPM},
}

// MacOptions are the macOS specific jpackage settings.
type MacOptions struct {
	Sign                 bool   `json:"sign"`
	SigningKeychain      string `json:"signing-keychain,omitempty"`
	SigningKeyUserName   string `json:"signing-key-user-name,omitempty"`
	PackageIdentifier    string `json:"package-identifier,omitempty"`
	PackageName          string `json:"package-name,omitempty"`
	PackageSigningPrefix string `json:"package-signing-prefix,omitempty"`
}

// WindowsOptions are the Windows specific jpackage settings.
type WindowsOptions struct {
	Console        bool   `json:"console"`
	DirChooser     bool   `json:"dir-chooser"`
	Menu           bool   `json:"menu"`
	MenuGroup      string `json:"menu-group,omitempty"`
	Shortcut       bool   `json:"shortcut"`
	PerUserInstall bool   `json:"per-user-install"`
	UpgradeUUID    string `json:"upgrade-uuid,omitempty"`
}

// LinuxOptions are the Linux specific jpackage settings.
type LinuxOptions struct {
	PackageName string `json:"package-name,omitempty"`
	MenuGroup   string `json:"menu-group,omitempty"`
	Shortcut    bool   `json:"shortcut"`
	AppCategory string `json:"app-category,omitempty"`
}

// InstallProject is everything needed to build one application image and
// installer.
type InstallProject struct {
	Name          string `json:"name"`
	Version       string `json:"version,omitempty"`
	Copyright     string `json:"copyright,omitempty"`
	Vendor        string `json:"vendor,omitempty"`
	Description   string `json:"description,omitempty"`
	InstallerType string `json:"installer-type,omitempty"`

	// InstallJDK is bundled as the application runtime when it differs from
	// PackageJDK; PackageJDK provides jpackage and jdeps.
	InstallJDK *jdk.JDK `json:"install-jdk,omitempty"`
	PackageJDK *jdk.JDK `json:"jpackage-jdk,omitempty"`

	ModulePath    []string `json:"module-path,omitempty"`
	ClassPath     []string `json:"class-path,omitempty"`
	AddModules    []string `json:"add-modules,omitempty"`
	JavaFXLib     string   `json:"javafx-lib,omitempty"`
	JavaFXModules string   `json:"javafx-modules,omitempty"`

	MainJar   string `json:"main-jar,omitempty"`
	MainClass string `json:"main-class,omitempty"`

	ImageBuildDirectory string `json:"image-build-directory,omitempty"`
	InstallerDirectory  string `json:"installer-directory,omitempty"`
	InputDirectory      string `json:"input-directory,omitempty"`

	Icon        string `json:"icon,omitempty"`
	JavaOptions string `json:"java-options,omitempty"`
	Arguments   string `json:"arguments,omitempty"`

	Mac     MacOptions     `json:"mac"`
	Windows WindowsOptions `json:"windows"`
	Linux   LinuxOptions   `json:"linux"`

	ImageStructure ImageStructure `json:"-"`
}

// New returns a project with the defaults of a fresh "New Project".
func New(name string) *InstallProject {
	structure, _ := NewSimpleStructure(nil, nil, "")
	return &InstallProject{
		Name:           strings.TrimSpace(name),
		Version:        "1.0.0",
		InstallerType:  TypeAppImage,
		Windows:        WindowsOptions{Menu: true, Shortcut: true, UpgradeUUID: uuid.NewString()},
		ImageStructure: structure,
	}
}

// Validate checks the preconditions for saving: a non-blank name that is
// usable as a file name.
func (p *InstallProject) Validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return errs.Validation("project name is required")
	}
	if strings.ContainsAny(name, `/\:`) || name == "." || name == ".." {
		return errs.Validation("project name %q cannot be used as a file name", p.Name)
	}
	return nil
}

// Equal compares field by field, JDKs by identity. Nil and empty lists are
// the same.
func (p *InstallProject) Equal(other *InstallProject) bool {
	if p == nil || other == nil {
		return p == other
	}
	if !p.InstallJDK.Equal(other.InstallJDK) || !p.PackageJDK.Equal(other.PackageJDK) {
		return false
	}
	a, b := p.normalized(), other.normalized()
	return reflect.DeepEqual(a, b)
}

func (p *InstallProject) normalized() InstallProject {
	c := *p
	c.InstallJDK, c.PackageJDK = nil, nil
	c.ModulePath = emptyToNil(c.ModulePath)
	c.ClassPath = emptyToNil(c.ClassPath)
	c.AddModules = emptyToNil(c.AddModules)
	return c
}

func emptyToNil(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	return values
}

type projectAlias InstallProject

type projectJSON struct {
	*projectAlias
	ImageStructure json.RawMessage `json:"image-structure,omitempty"`
}

// MarshalJSON embeds the image structure with its type discriminator.
func (p *InstallProject) MarshalJSON() ([]byte, error) {
	doc := projectJSON{projectAlias: (*projectAlias)(p)}
	if p.ImageStructure != nil {
		data, err := json.Marshal(p.ImageStructure)
		if err != nil {
			return nil, err
		}
		doc.ImageStructure = data
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes the image structure through the type registry.
func (p *InstallProject) UnmarshalJSON(data []byte) error {
	doc := projectJSON{projectAlias: (*projectAlias)(p)}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	p.ImageStructure = nil
	if len(doc.ImageStructure) > 0 && string(doc.ImageStructure) != "null" {
		s, err := decodeStructure(doc.ImageStructure)
		if err != nil {
			return err
		}
		p.ImageStructure = s
	}
	return nil
}

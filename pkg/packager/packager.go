// Package packager turns an install project into jpackage and jdeps runs:
// it assembles the command lines, stages the input directory, checks disk
// space and records build stamps so installers are only built from current
// images.
package packager

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/jpackfx/internal/stamp"
	"github.com/provide-io/jpackfx/pkg/archive"
	"github.com/provide-io/jpackfx/pkg/config"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/jdeps"
	"github.com/provide-io/jpackfx/pkg/process"
	"github.com/provide-io/jpackfx/pkg/project"
)

// Result is the outcome of one jpackage run.
type Result struct {
	// Path is the produced image or the installer output directory.
	Path   string
	Output *process.Output
	// Skipped is set when a current image was reused.
	Skipped bool
}

// Packager runs the JDK tools for projects.
type Packager struct {
	runner    process.Runner
	logger    hclog.Logger
	freeSpace func(path string) (int64, error)

	// Timeout bounds every jpackage run, in seconds.
	Timeout int
	// WorkDir holds staged input directories. Empty means the system temp
	// directory.
	WorkDir string
}

// New creates a packager that starts processes through runner.
func New(runner process.Runner, logger hclog.Logger) *Packager {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Packager{
		runner:    runner,
		logger:    logger.Named("packager"),
		freeSpace: getAvailableDiskSpace,
		Timeout:   JPackageTimeout,
	}
}

// Dependencies runs jdeps over the main jar of p and returns the modules it
// needs besides java.base.
func (k *Packager) Dependencies(ctx context.Context, p *project.InstallProject, cfg *config.Configuration) ([]string, error) {
	if p.PackageJDK == nil {
		return nil, errs.Validation("project %q has no jpackage JDK", p.Name)
	}
	if strings.TrimSpace(p.MainJar) == "" {
		return nil, errs.Validation("project %q has no main jar", p.Name)
	}

	modulePath := nonBlank(p.ModulePath)
	if p.JavaFXLib != "" {
		lib, err := cfg.JavaFXLib(p.JavaFXLib)
		if err != nil {
			return nil, err
		}
		modulePath = append(modulePath, lib)
	}

	opts := jdeps.Options{
		ModulePath: modulePath,
		ClassPath:  p.ClassPath,
		Target:     sourceJar(p),
	}
	k.logger.Info("🔍 Analyzing dependencies", "project", p.Name, "jar", opts.Target)
	modules, err := jdeps.Analyze(ctx, k.runner, p.PackageJDK, opts, JdepsTimeout)
	if err != nil {
		return nil, err
	}
	k.logger.Debug("🔍 Dependencies", "modules", modules)
	return modules, nil
}

func mainJarPath(p *project.InstallProject) string {
	if filepath.IsAbs(p.MainJar) || p.InputDirectory == "" {
		return p.MainJar
	}
	return filepath.Join(p.InputDirectory, p.MainJar)
}

// sourceJar is the main jar a build of p packages, before staging.
func sourceJar(p *project.InstallProject) string {
	if p.ImageStructure != nil && p.ImageStructure.MainJar() != "" {
		return p.ImageStructure.MainJar()
	}
	return mainJarPath(p)
}

// BuildImage stages the input directory, replaces any previous image and
// runs jpackage. On success the image directory gets a build stamp.
func (k *Packager) BuildImage(ctx context.Context, p *project.InstallProject, cfg *config.Configuration) (*Result, error) {
	build := *p
	cleanup, err := k.stageInput(&build)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	cmd, err := ImageCommand(&build, cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(build.ImageBuildDirectory, 0o755); err != nil {
		return nil, errs.Processing(err, "creating %s", build.ImageBuildDirectory)
	}
	if err := k.checkDiskSpace(build.ImageBuildDirectory, build.InputDirectory); err != nil {
		return nil, err
	}

	image := ImagePath(&build)
	if err := stamp.Clear(build.ImageBuildDirectory); err != nil {
		return nil, errs.Processing(err, "clearing build stamp")
	}
	// jpackage refuses to overwrite an existing image
	if err := os.RemoveAll(image); err != nil {
		return nil, errs.Processing(err, "removing previous image %s", image)
	}

	k.logger.Info("📦 Building application image", "project", p.Name, "dest", build.ImageBuildDirectory)
	out, err := k.run(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if err := stamp.Write(build.ImageBuildDirectory, imageStamp(p, cfg)); err != nil {
		k.logger.Warn("⚠️ Could not write build stamp", "error", err)
	}
	k.logger.Info("✅ Application image built", "path", image)
	return &Result{Path: image, Output: out}, nil
}

// ImageIsCurrent reports whether the image of p was built from the current
// main jar and the same image settings.
func (k *Packager) ImageIsCurrent(p *project.InstallProject, cfg *config.Configuration) bool {
	return stamp.IsCurrent(p.ImageBuildDirectory, ImagePath(p), imageStamp(p, cfg))
}

// imageStamp describes the image p builds. The settings digest covers the
// unstaged image command and the image structure.
func imageStamp(p *project.InstallProject, cfg *config.Configuration) stamp.Stamp {
	parts := []string{}
	if cmd, err := ImageCommand(p, cfg); err == nil {
		parts = append(parts, cmd.ShellString())
	}
	if s := p.ImageStructure; s != nil {
		parts = append(parts, "main-jar="+s.MainJar())
		for _, f := range s.Files() {
			parts = append(parts, "file="+f)
		}
		for _, d := range s.Directories() {
			parts = append(parts, "dir="+d)
		}
	}
	return stamp.Stamp{
		Project:  p.Name,
		Version:  p.Version,
		Checksum: stamp.Checksum(sourceJar(p)),
		Settings: stamp.Digest(parts...),
	}
}

// BuildInstaller wraps the image of p into an installer, building the image
// first when it is missing or stale.
func (k *Packager) BuildInstaller(ctx context.Context, p *project.InstallProject, cfg *config.Configuration) (*Result, error) {
	if _, err := InstallerCommand(p, cfg); err != nil {
		return nil, err
	}
	if k.ImageIsCurrent(p, cfg) {
		k.logger.Debug("♻️ Reusing current application image", "path", ImagePath(p))
	} else if _, err := k.BuildImage(ctx, p, cfg); err != nil {
		return nil, err
	}
	return k.buildInstaller(ctx, p, cfg)
}

func (k *Packager) buildInstaller(ctx context.Context, p *project.InstallProject, cfg *config.Configuration) (*Result, error) {
	cmd, err := InstallerCommand(p, cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.InstallerDirectory, 0o755); err != nil {
		return nil, errs.Processing(err, "creating %s", p.InstallerDirectory)
	}
	if err := k.checkDiskSpace(p.InstallerDirectory, ImagePath(p)); err != nil {
		return nil, err
	}

	k.logger.Info("📦 Building installer", "project", p.Name, "type", p.InstallerType)
	out, err := k.run(ctx, cmd)
	if err != nil {
		return nil, err
	}
	k.logger.Info("✅ Installer built", "dest", p.InstallerDirectory)
	return &Result{Path: p.InstallerDirectory, Output: out}, nil
}

// Build rebuilds the image and then the installer. An app-image project
// stops after the image.
func (k *Packager) Build(ctx context.Context, p *project.InstallProject, cfg *config.Configuration) ([]*Result, error) {
	image, err := k.BuildImage(ctx, p, cfg)
	if err != nil {
		return nil, err
	}
	results := []*Result{image}
	if ImageOnly(p) {
		return results, nil
	}
	installer, err := k.buildInstaller(ctx, p, cfg)
	if err != nil {
		return results, err
	}
	return append(results, installer), nil
}

// ImageOnly reports whether p builds no installer.
func ImageOnly(p *project.InstallProject) bool {
	return p.InstallerType == "" || p.InstallerType == ImageKind
}

// ArchiveImage packs the built image of p into dest using the named archive
// format ("tar", "tar.gz", "tar.bz2"). An empty dest puts the archive next
// to the image.
func (k *Packager) ArchiveImage(p *project.InstallProject, cfg *config.Configuration, dest, format string) (string, error) {
	chain, err := archive.ParseChain(format)
	if err != nil {
		return "", err
	}
	image := ImagePath(p)
	if !k.ImageIsCurrent(p, cfg) {
		k.logger.Warn("⚠️ Archiving an image that may be stale", "path", image)
	}
	if dest == "" {
		dest = filepath.Join(p.ImageBuildDirectory, fmt.Sprintf("%s-%s%s", p.Name, p.Version, chain.Extension()))
	}
	k.logger.Info("🗜️ Archiving image", "path", image, "dest", dest, "chain", chain.String())
	if err := archive.Create(image, dest, chain); err != nil {
		return "", err
	}
	return dest, nil
}

func (k *Packager) run(ctx context.Context, cmd *process.Command) (*process.Output, error) {
	out, err := k.runner.Run(ctx, cmd, k.Timeout)
	if err != nil {
		return nil, err
	}
	if out.TimedOut {
		return out, errs.Processing(nil, "jpackage timed out after %d seconds", k.Timeout)
	}
	if !out.Success() {
		return out, errs.Processing(nil, "jpackage failed: %s", strings.Join(out.Errors(), "; "))
	}
	return out, nil
}

// stageInput copies the image structure of p into a fresh input directory
// when the structure names anything, and points p at it.
func (k *Packager) stageInput(p *project.InstallProject) (func(), error) {
	s := p.ImageStructure
	if s == nil || (s.MainJar() == "" && len(s.Files()) == 0 && len(s.Directories()) == 0) {
		return func() {}, nil
	}
	dir, err := os.MkdirTemp(k.WorkDir, "jpackfx-input-")
	if err != nil {
		return nil, errs.Processing(err, "creating input directory")
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			k.logger.Warn("⚠️ Could not remove staged input", "path", dir, "error", err)
		}
	}
	if p.InputDirectory != "" {
		if err := copyTree(p.InputDirectory, dir); err != nil {
			cleanup()
			return nil, err
		}
	}
	if err := s.Stage(dir); err != nil {
		cleanup()
		return nil, err
	}
	if s.MainJar() != "" {
		p.MainJar = filepath.Base(s.MainJar())
	}
	k.logger.Debug("📋 Staged input directory", "path", dir)
	p.InputDirectory = dir
	return cleanup, nil
}

func copyTree(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return errs.NotFound(err, "input directory %s", src)
	}
	var files, dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(src, e.Name()))
		} else {
			files = append(files, filepath.Join(src, e.Name()))
		}
	}
	structure, err := project.NewSimpleStructure(files, dirs, "")
	if err != nil {
		return err
	}
	return structure.Stage(dst)
}

func (k *Packager) checkDiskSpace(dest, input string) error {
	needed := int64(MinFreeSpace) + DiskSpaceMultiplier*dirSize(input)

	available, err := k.freeSpace(dest)
	if err != nil {
		k.logger.Warn("⚠️ Could not check disk space", "error", err)
		return nil
	}

	neededGB := float64(needed) / (1024 * 1024 * 1024)
	availableGB := float64(available) / (1024 * 1024 * 1024)
	k.logger.Debug("💾 Disk space check", "needed_gb", fmt.Sprintf("%.2f", neededGB), "available_gb", fmt.Sprintf("%.2f", availableGB))

	if available < needed {
		return errs.Validation("insufficient disk space in %s: need %.2f GB, have %.2f GB", dest, neededGB, availableGB)
	}
	return nil
}

func dirSize(root string) int64 {
	var total int64
	_ = filepath.Walk(root, func(_ string, info os.FileInfo, err error) error {
		if err == nil && info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	return total
}

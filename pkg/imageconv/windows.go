package imageconv

import (
	"context"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/tc-hib/winres"
)

// ICOSizes are the square sizes written into a Windows icon.
var ICOSizes = []int{16, 24, 32, 48, 64, 128, 256}

// WindowsLogoBuilder encodes a multi-size .ico.
type WindowsLogoBuilder struct {
	Logger hclog.Logger
}

func (b *WindowsLogoBuilder) Extension() string { return ".ico" }

func (b *WindowsLogoBuilder) Build(ctx context.Context, src, dst string) error {
	if sameFormat(src, b.Extension()) {
		b.Logger.Debug("📋 Source is already .ico, copying", "src", src)
		return copyVerbatim(src, dst)
	}

	img, err := decode(src)
	if err != nil {
		return err
	}
	icon, err := winres.NewIconFromResizedImage(img, ICOSizes)
	if err != nil {
		return errs.Processing(err, "rendering icon sizes for %s", src)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".jpackfx-*.ico")
	if err != nil {
		return errs.Processing(err, "creating temporary icon")
	}
	defer os.Remove(tmp.Name())

	if err := icon.SaveICO(tmp); err != nil {
		tmp.Close()
		return errs.Processing(err, "encoding %s", dst)
	}
	if err := tmp.Close(); err != nil {
		return errs.Processing(err, "closing %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return errs.Processing(err, "moving icon to %s", dst)
	}
	b.Logger.Info("🎨 Built ico", "dst", dst, "sizes", len(ICOSizes))
	return nil
}

// LinuxIconSize is the edge of the PNG icon used on Linux.
const LinuxIconSize = 512

// LinuxLogoBuilder scales the source to a square PNG.
type LinuxLogoBuilder struct {
	Logger hclog.Logger
}

func (b *LinuxLogoBuilder) Extension() string { return ".png" }

func (b *LinuxLogoBuilder) Build(ctx context.Context, src, dst string) error {
	img, err := decode(src)
	if err != nil {
		return err
	}
	if err := writePNG(resized(img, LinuxIconSize), dst); err != nil {
		return err
	}
	b.Logger.Info("🎨 Built png icon", "dst", dst)
	return nil
}

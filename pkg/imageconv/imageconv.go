// Package imageconv resizes raster images and builds the platform icon
// bundles jpackage expects (.icns on macOS, .ico on Windows, .png on Linux).
package imageconv

import (
	"context"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/jdk"
	"github.com/provide-io/jpackfx/pkg/process"
)

var validExtensions = map[string]bool{
	".png":  true,
	".jpeg": true,
	".jpg":  true,
	".ico":  true,
	".icns": true,
}

// IsValidImage reports whether path is a non-empty regular file with an
// image extension jpackfx accepts.
func IsValidImage(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if !validExtensions[strings.ToLower(filepath.Ext(path))] {
		return false
	}
	return info.Size() > 0
}

// Resize decodes src, scales it to width x height and writes a PNG to dst.
func Resize(src string, width, height int, dst string) error {
	img, err := decode(src)
	if err != nil {
		return err
	}
	return writePNG(imaging.Resize(img, width, height, imaging.Lanczos), dst)
}

func decode(src string) (image.Image, error) {
	img, err := imaging.Open(src)
	if err != nil {
		return nil, errs.Processing(err, "decoding image %s", src)
	}
	return img, nil
}

// resized scales img to fit a size x size square, keeping the aspect ratio
// and centering it on a transparent canvas. Smaller images are scaled up.
func resized(img image.Image, size int) image.Image {
	b := img.Bounds()
	var fit image.Image
	if b.Dx() >= b.Dy() {
		fit = imaging.Resize(img, size, 0, imaging.Lanczos)
	} else {
		fit = imaging.Resize(img, 0, size, imaging.Lanczos)
	}
	canvas := imaging.New(size, size, image.Transparent)
	return imaging.PasteCenter(canvas, fit)
}

func writePNG(img image.Image, dst string) error {
	f, err := os.Create(dst)
	if err != nil {
		return errs.Processing(err, "creating %s", dst)
	}
	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		f.Close()
		os.Remove(dst)
		return errs.Processing(err, "encoding %s", dst)
	}
	if err := f.Close(); err != nil {
		return errs.Processing(err, "closing %s", dst)
	}
	return nil
}

// LogoBuilder turns a source image into the icon format of one platform.
type LogoBuilder interface {
	// Extension is the file extension of the produced icon, e.g. ".icns".
	Extension() string
	// Build writes the icon for src to dst. A source already in the target
	// format is copied unchanged.
	Build(ctx context.Context, src, dst string) error
}

// BuilderFor returns the logo builder for system.
func BuilderFor(system jdk.OperatingSystem, runner process.Runner, logger hclog.Logger) (LogoBuilder, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("imageconv")
	switch system {
	case jdk.OSX:
		return &OSXLogoBuilder{Runner: runner, Logger: logger}, nil
	case jdk.Windows:
		return &WindowsLogoBuilder{Logger: logger}, nil
	case jdk.Linux:
		return &LinuxLogoBuilder{Logger: logger}, nil
	}
	return nil, errs.Validation("no icon builder for %q", system)
}

func sameFormat(src, ext string) bool {
	return strings.EqualFold(filepath.Ext(src), ext)
}

func copyVerbatim(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errs.Processing(err, "opening %s", src)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return errs.Processing(err, "creating %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errs.Processing(err, "copying %s", src)
	}
	if err := out.Close(); err != nil {
		return errs.Processing(err, "closing %s", dst)
	}
	return nil
}

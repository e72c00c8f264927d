package imageconv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/provide-io/jpackfx/pkg/errs"
	"github.com/provide-io/jpackfx/pkg/process"
)

// IconutilTimeout is how long iconutil may run, in seconds.
const IconutilTimeout = 60

// iconsetEntries are the ten images iconutil expects in an .iconset.
var iconsetEntries = []struct {
	base  int
	scale int
}{
	{16, 1}, {16, 2},
	{32, 1}, {32, 2},
	{128, 1}, {128, 2},
	{256, 1}, {256, 2},
	{512, 1}, {512, 2},
}

func iconsetName(base, scale int) string {
	if scale == 1 {
		return fmt.Sprintf("icon_%dx%d.png", base, base)
	}
	return fmt.Sprintf("icon_%dx%d@%dx.png", base, base, scale)
}

// OSXLogoBuilder renders an .iconset and folds it into .icns with iconutil.
type OSXLogoBuilder struct {
	Runner process.Runner
	Logger hclog.Logger
	// Iconutil overrides the iconutil executable.
	Iconutil string
}

func (b *OSXLogoBuilder) Extension() string { return ".icns" }

func (b *OSXLogoBuilder) Build(ctx context.Context, src, dst string) error {
	if sameFormat(src, b.Extension()) {
		b.Logger.Debug("📋 Source is already .icns, copying", "src", src)
		return copyVerbatim(src, dst)
	}

	img, err := decode(src)
	if err != nil {
		return err
	}

	work, err := os.MkdirTemp("", "jpackfx-icon-")
	if err != nil {
		return errs.Processing(err, "creating iconset directory")
	}
	defer func() {
		if err := os.RemoveAll(work); err != nil {
			b.Logger.Warn("⚠️ Could not remove iconset", "path", work, "error", err)
		}
	}()

	iconset := filepath.Join(work, "icon.iconset")
	if err := os.Mkdir(iconset, 0o755); err != nil {
		return errs.Processing(err, "creating %s", iconset)
	}
	for _, e := range iconsetEntries {
		size := e.base * e.scale
		if err := writePNG(resized(img, size), filepath.Join(iconset, iconsetName(e.base, e.scale))); err != nil {
			return err
		}
	}

	tool := b.Iconutil
	if tool == "" {
		tool = "iconutil"
	}
	cmd := process.NewCommand(tool)
	cmd.Args.Add("-c", "icns").Add("-o", dst).AddFlag(iconset)

	out, err := b.Runner.Run(ctx, cmd, IconutilTimeout)
	if err != nil {
		return err
	}
	if !out.Success() {
		os.Remove(dst)
		return errs.Processing(nil, "iconutil failed: %s", strings.Join(out.Errors(), "; "))
	}
	b.Logger.Info("🎨 Built icns", "dst", dst)
	return nil
}

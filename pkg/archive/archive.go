package archive

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/provide-io/jpackfx/pkg/errs"
)

// Create writes the tree under srcDir to dest through chain. Entry names are
// relative to the parent of srcDir so the archive unpacks into one folder.
func Create(srcDir, dest string, chain *Chain) (err error) {
	info, err := os.Stat(srcDir)
	if err != nil {
		return errs.NotFound(err, "archive source %s", srcDir)
	}
	if !info.IsDir() {
		return errs.Validation("archive source %s is not a directory", srcDir)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return errs.Processing(err, "creating %s", filepath.Dir(dest))
	}

	f, err := os.Create(dest)
	if err != nil {
		return errs.Processing(err, "creating archive %s", dest)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errs.Processing(cerr, "closing archive %s", dest)
		}
		if err != nil {
			os.Remove(dest)
		}
	}()

	// stages[i] feeds stages[i-1]; the tar writer feeds the last stage.
	var w io.Writer = f
	var stages []io.WriteCloser
	for i := len(chain.Operations) - 1; i >= 0; i-- {
		wc, err := chain.Operations[i].Apply(w)
		if err != nil {
			return err
		}
		stages = append(stages, wc)
		w = wc
	}

	tw := tar.NewWriter(w)
	if err := writeTree(tw, srcDir); err != nil {
		return err
	}
	if err := tw.Close(); err != nil {
		return errs.Processing(err, "finishing tar stream")
	}
	for i := len(stages) - 1; i >= 0; i-- {
		if err := stages[i].Close(); err != nil {
			return errs.Processing(err, "flushing archive %s", dest)
		}
	}
	return nil
}

func writeTree(tw *tar.Writer, srcDir string) error {
	base := filepath.Dir(filepath.Clean(srcDir))
	return filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errs.Processing(err, "walking %s", path)
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return errs.Processing(err, "relative path of %s", path)
		}

		link := ""
		if info.Mode()&os.ModeSymlink != 0 {
			if link, err = os.Readlink(path); err != nil {
				return errs.Processing(err, "reading link %s", path)
			}
		}
		hdr, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return errs.Processing(err, "tar header for %s", path)
		}
		hdr.Name = filepath.ToSlash(rel)
		if info.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return errs.Processing(err, "writing tar header for %s", path)
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		in, err := os.Open(path)
		if err != nil {
			return errs.Processing(err, "opening %s", path)
		}
		defer in.Close()
		if _, err := io.Copy(tw, in); err != nil {
			return errs.Processing(err, "archiving %s", path)
		}
		return nil
	})
}

// Extract unpacks src into destDir through chain. Entries that would land
// outside destDir are rejected.
func Extract(src, destDir string, chain *Chain) error {
	f, err := os.Open(src)
	if err != nil {
		return errs.NotFound(err, "archive %s", src)
	}
	defer f.Close()

	var r io.Reader = f
	for i := len(chain.Operations) - 1; i >= 0; i-- {
		rc, err := chain.Operations[i].Reverse(r)
		if err != nil {
			return err
		}
		defer rc.Close()
		r = rc
	}

	root, err := filepath.Abs(destDir)
	if err != nil {
		return errs.Processing(err, "resolving %s", destDir)
	}
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errs.BadFile(err, "reading archive %s", src)
		}
		if err := extractEntry(tr, hdr, root); err != nil {
			return err
		}
	}
}

func extractEntry(tr *tar.Reader, hdr *tar.Header, root string) error {
	target := filepath.Join(root, filepath.FromSlash(hdr.Name))
	if !within(root, target) {
		return errs.BadFile(nil, "archive entry %q escapes the destination", hdr.Name)
	}
	if err := noLinkedParents(root, target); err != nil {
		return err
	}
	mode := os.FileMode(hdr.Mode).Perm()

	switch hdr.Typeflag {
	case tar.TypeDir:
		return mkdir(target, mode|0o700)
	case tar.TypeSymlink:
		if filepath.IsAbs(hdr.Linkname) || !within(root, filepath.Join(filepath.Dir(target), hdr.Linkname)) {
			return errs.BadFile(nil, "archive link %q -> %q escapes the destination", hdr.Name, hdr.Linkname)
		}
		if err := mkdir(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.Symlink(hdr.Linkname, target); err != nil {
			return errs.Processing(err, "linking %s", target)
		}
		return nil
	case tar.TypeReg:
		if err := mkdir(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if info, err := os.Lstat(target); err == nil && info.Mode()&os.ModeSymlink != 0 {
			return errs.BadFile(nil, "archive entry %q overwrites a link", hdr.Name)
		}
		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
		if err != nil {
			return errs.Processing(err, "creating %s", target)
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return errs.Processing(err, "extracting %s", target)
		}
		if err := out.Close(); err != nil {
			return errs.Processing(err, "closing %s", target)
		}
		return nil
	default:
		return nil
	}
}

func within(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

// noLinkedParents fails when a directory between root and target is a
// symlink, since writing through it could leave root.
func noLinkedParents(root, target string) error {
	rel, err := filepath.Rel(root, filepath.Dir(target))
	if err != nil || rel == "." {
		return nil
	}
	dir := root
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		dir = filepath.Join(dir, part)
		info, err := os.Lstat(dir)
		if err != nil {
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return errs.BadFile(nil, "archive entry %s is under link %s", target, dir)
		}
	}
	return nil
}

func mkdir(dir string, mode os.FileMode) error {
	if err := os.MkdirAll(dir, mode); err != nil {
		return errs.Processing(err, "creating %s", dir)
	}
	return nil
}

package subst

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// RewriteFile rewrites path line by line through rw. Transformed lines are
// written to a temporary file in the same directory, which replaces the
// original via rename only after a complete, synced write — the target is
// never observed truncated or half-written. Line terminators are preserved
// exactly, including a final line without one. On any failure the
// temporary file is removed and the original is left untouched.
func RewriteFile(path string, rw *Rewriter) (err error) {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = src.Close() }()

	info, err := src.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.new")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(info.Mode().Perm()); err != nil {
		return fmt.Errorf("setting mode on %s: %w", tmp.Name(), err)
	}

	reader := bufio.NewReader(src)
	writer := bufio.NewWriter(tmp)
	for {
		line, readErr := reader.ReadString('\n')
		if line != "" {
			if _, werr := writer.WriteString(rw.Line(line)); werr != nil {
				err = fmt.Errorf("writing %s: %w", tmp.Name(), werr)
				return err
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			err = fmt.Errorf("reading %s: %w", path, readErr)
			return err
		}
	}

	if err = writer.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmp.Name(), err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

package scan

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/src-d/enry/v2"
)

// A candidate source file found while walking the tree.
type File struct {
	Path string // Absolute
	Rel  string // Relative to the scan root, slash separated
	Ext  string
}

// Decides which parts of the tree are walked.
type Filter struct {
	Supports   func(ext string) bool
	Exclude    []string // doublestar patterns matched against File.Rel
	SkipVendor bool
}

func (f Filter) excluded(rel string) bool {
	for _, pattern := range f.Exclude {
		matched, err := doublestar.Match(pattern, rel)
		if err != nil {
			logger().Debug("bad exclude pattern", "pattern", pattern, "err", err)
			continue
		}

		if matched {
			return true
		}
	}

	return false
}

func (f Filter) skipDir(name string, rel string) bool {
	if name == ".git" {
		return true
	}

	if f.excluded(rel) {
		return true
	}

	return f.SkipVendor && enry.IsVendor(rel+"/")
}

func (f Filter) skipFile(file File) bool {
	if !f.Supports(file.Ext) {
		return true
	}

	if f.excluded(file.Rel) {
		return true
	}

	return f.SkipVendor && enry.IsVendor(file.Rel)
}

// Returns a single-use iterator over candidate files under root.
//
// Unreadable subdirectories are skipped. The returned function reports an
// error only if root itself could not be walked; call it after iterating.
func Walk(root string, filter Filter) (iter.Seq[File], func() error) {
	var iterErr error

	seq := func(yield func(File) bool) {
		root, err := filepath.Abs(root)
		if err != nil {
			iterErr = err
			return
		}

		info, err := os.Stat(root)
		if err != nil {
			iterErr = err
			return
		}

		if !info.IsDir() {
			iterErr = fmt.Errorf("%s is not a directory", root)
			return
		}

		err = filepath.WalkDir(root, func(
			path string,
			d fs.DirEntry,
			err error,
		) error {
			if err != nil {
				if path == root {
					return err
				}

				logger().Debug("skipping unreadable path", "path", path, "err", err)
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if path != root && filter.skipDir(d.Name(), rel) {
					return filepath.SkipDir
				}

				return nil
			}

			file := File{
				Path: path,
				Rel:  rel,
				Ext:  filepath.Ext(d.Name()),
			}
			if filter.skipFile(file) {
				return nil
			}

			if !yield(file) {
				return filepath.SkipAll
			}

			return nil
		})

		iterErr = err
	}

	finish := func() error {
		if iterErr != nil {
			iterErr = fmt.Errorf("error walking directory: %w", iterErr)
		}

		return iterErr
	}

	return seq, finish
}

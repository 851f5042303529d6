// Package assets locates the files the front door serves: images under a
// fixed root directory and the page document.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a requested name resolves outside the root.
var ErrOutsideRoot = errors.New("path escapes root directory")

// Resolve maps the slash-separated name onto a regular file below root and
// returns its canonical path. The name may address nested directories.
//
// Both the lexical path and the symlink-evaluated path must stay below the
// symlink-evaluated root. Missing files and non-regular files report
// fs.ErrNotExist.
func Resolve(root, name string) (string, error) {
	if strings.IndexByte(name, 0) >= 0 {
		return "", ErrOutsideRoot
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}

	target := filepath.Join(absRoot, filepath.FromSlash(strings.TrimLeft(name, "/")))
	if !within(absRoot, target) {
		return "", ErrOutsideRoot
	}

	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", err
	}
	realTarget, err := filepath.EvalSymlinks(target)
	if err != nil {
		// Walking through a file, an overlong name or a symlink loop cannot
		// reach a servable file either. Only permission failures pass.
		if errors.Is(err, fs.ErrPermission) {
			return "", err
		}
		return "", fs.ErrNotExist
	}
	if !within(realRoot, realTarget) {
		return "", ErrOutsideRoot
	}

	info, err := os.Stat(realTarget)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fs.ErrNotExist
	}
	return realTarget, nil
}

// IsNotFound reports whether err from Resolve should be answered as a
// missing file. Escapes and misses are deliberately the same answer.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrOutsideRoot)
}

// within reports whether path is root itself or a descendant of it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}

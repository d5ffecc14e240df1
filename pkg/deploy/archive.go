/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package deploy

import (
	"archive/tar"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// Archiver creates the tar.gz of a project directory skipping the
// paths that match the exclude patterns.
type Archiver struct {
	Excludes   []string
	IgnoreFile string

	globs []glob.Glob
}

func NewArchiver(excludes []string, ignoreFile string) *Archiver {
	return &Archiver{
		Excludes:   excludes,
		IgnoreFile: ignoreFile,
	}
}

func (a *Archiver) compile(patterns []string) error {
	a.globs = []glob.Glob{}
	for _, p := range patterns {
		p = strings.TrimSuffix(strings.TrimSpace(p), "/")
		p = strings.TrimPrefix(p, "./")
		if p == "" {
			continue
		}

		variants := []string{p}
		if strings.HasPrefix(p, "**/") {
			variants = append(variants, p[3:])
		}

		for _, v := range variants {
			g, err := glob.Compile(v, '/')
			if err != nil {
				return fmt.Errorf("invalid exclude pattern %q: %s", p, err.Error())
			}
			a.globs = append(a.globs, g)
		}
	}
	return nil
}

// readIgnoreFile returns the patterns of the ignore file. Empty lines
// and comments are skipped.
func readIgnoreFile(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	defer f.Close()

	ans := []string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ans = append(ans, line)
	}

	return ans, scanner.Err()
}

// IsExcluded checks the relative path in slash format. A pattern
// without separator matches also the base name.
func (a *Archiver) IsExcluded(rel string) bool {
	base := rel
	if idx := strings.LastIndex(rel, "/"); idx >= 0 {
		base = rel[idx+1:]
	}

	for _, g := range a.globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// Create writes the archive of srcDir to target and returns the number
// of entries added.
func (a *Archiver) Create(srcDir, target string) (int, error) {
	srcDir, err := filepath.Abs(srcDir)
	if err != nil {
		return 0, &ArchiveError{Dir: srcDir, Err: err}
	}
	target, err = filepath.Abs(target)
	if err != nil {
		return 0, &ArchiveError{Dir: srcDir, Err: err}
	}

	fi, err := os.Stat(srcDir)
	if err != nil {
		return 0, &ArchiveError{Dir: srcDir, Err: err}
	}
	if !fi.IsDir() {
		return 0, &ArchiveError{Dir: srcDir, Err: fmt.Errorf("not a directory")}
	}

	patterns := append([]string{}, a.Excludes...)
	if a.IgnoreFile != "" {
		ignores, err := readIgnoreFile(filepath.Join(srcDir, a.IgnoreFile))
		if err != nil {
			return 0, &ArchiveError{Dir: srcDir, Err: errors.Wrap(err, "error on read ignore file")}
		}
		patterns = append(patterns, ignores...)
	}
	if err := a.compile(patterns); err != nil {
		return 0, &ArchiveError{Dir: srcDir, Err: err}
	}

	out, err := os.Create(target)
	if err != nil {
		return 0, &ArchiveError{Dir: srcDir, Err: err}
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	tw := tar.NewWriter(gw)

	n, err := a.walk(srcDir, target, tw)
	if err != nil {
		return n, &ArchiveError{Dir: srcDir, Err: err}
	}

	if err := tw.Close(); err != nil {
		return n, &ArchiveError{Dir: srcDir, Err: err}
	}
	if err := gw.Close(); err != nil {
		return n, &ArchiveError{Dir: srcDir, Err: err}
	}

	return n, nil
}

func (a *Archiver) walk(srcDir, target string, tw *tar.Writer) (int, error) {
	n := 0

	err := filepath.Walk(srcDir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk path for %s: %s", p, err)
		}

		if p == srcDir || p == target {
			return nil
		}

		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if a.IsExcluded(rel) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		mode := info.Mode()
		link := ""
		switch {
		case mode.IsRegular(), mode.IsDir():
		case mode&os.ModeSymlink != 0:
			link, err = os.Readlink(p)
			if err != nil {
				return err
			}
		default:
			// Sockets, devices and pipes aren't part of a project.
			return nil
		}

		header, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return err
		}
		header.Name = rel
		if info.IsDir() {
			header.Name += "/"
		}

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		n++

		if !mode.IsRegular() {
			return nil
		}

		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(tw, f)
		return err
	})

	return n, err
}

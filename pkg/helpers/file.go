/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package helpers

import (
	"os"
	"path/filepath"
)

var composeFiles = []string{
	"docker-compose.yml",
	"docker-compose.yaml",
	"compose.yml",
	"compose.yaml",
}

// Exists reports whether the named file or directory exists.
func Exists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// FindComposeFile returns the first compose file found under dir.
// When files is not empty only these files are checked.
func FindComposeFile(dir string, files []string) (string, bool) {
	candidates := files
	if len(candidates) == 0 {
		candidates = composeFiles
	}

	for _, f := range candidates {
		p := f
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, f)
		}
		if Exists(p) {
			return p, true
		}
	}

	return "", false
}

/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package executor

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	log "github.com/MottainaiCI/ddc-shob/pkg/logger"

	"github.com/pkg/errors"
)

func (s *DdcSshExecutor) RecursiveMkdir(dir string, mode os.FileMode) error {
	if s.SftpClient == nil {
		return fmt.Errorf("Sftp client not initialized.")
	}

	// special case, every node has /, we don't need to do anything
	if dir == "/" || dir == "" {
		return nil
	}

	pclean := path.Clean(dir)
	parts := strings.Split(strings.TrimPrefix(pclean, "/"), "/")
	prefix := ""
	if strings.HasPrefix(pclean, "/") {
		prefix = "/"
	}

	for i := 1; i <= len(parts); i++ {
		cur := prefix + path.Join(parts[:i]...)

		// SFTP goes in error if the directory is already present.
		fi, _ := s.SftpClient.Stat(cur)
		if fi != nil {
			if !fi.IsDir() {
				return fmt.Errorf("%s is already present but is not a directory",
					cur)
			}
			continue
		}

		if err := s.SftpClient.Mkdir(cur); err != nil {
			return err
		}

		s.Emitter.DebugLog(false, fmt.Sprintf("Creating %s (%s)", cur, "directory"))

		if err := s.SftpClient.Chmod(cur, mode); err != nil {
			return err
		}
	}

	return nil
}

// Upload copies the local file to the remote path creating the
// missing parent directories.
func (s *DdcSshExecutor) Upload(source, target string) error {
	if err := s.SetupSftp(); err != nil {
		return errors.Wrap(err, "error on setup sftp client")
	}

	fi, err := os.Stat(source)
	if err != nil {
		return err
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("'%s' isn't a regular file", source)
	}

	if err := s.RecursiveMkdir(path.Dir(target), os.FileMode(0755)); err != nil {
		return errors.Wrapf(err, "error on create dir %s", path.Dir(target))
	}

	f, err := os.Open(source)
	if err != nil {
		return err
	}
	defer f.Close()

	dstFile, err := s.SftpClient.Create(target)
	if err != nil {
		return errors.Wrapf(err, "error on create remote file %s", target)
	}
	defer dstFile.Close()

	n, err := io.Copy(dstFile, f)
	if err != nil {
		return errors.Wrapf(err, "error on copy %s", source)
	}

	if err := s.SftpClient.Chmod(target, fi.Mode().Perm()); err != nil {
		return err
	}

	logger := log.GetDefaultLogger()
	s.Emitter.InfoLog(true,
		logger.Aurora.Italic(
			logger.Aurora.BrightMagenta(
				fmt.Sprintf(">>> [%s] Pushed %s -> %s (%d bytes)",
					s.Endpoint, source, target, n))))

	return nil
}

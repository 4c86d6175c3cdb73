package repository

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/base/log"
	"github.com/x-xyz/metagen/domain"
)

type FsWriterRepoCfg struct {
	Fs      afero.Fs
	BaseDir string
}

type fsWriterRepo struct {
	fs      afero.Fs
	baseDir string
}

// NewFsWriterRepo stores resources as files below BaseDir, replacing existing files.
func NewFsWriterRepo(cfg *FsWriterRepoCfg) domain.WebResourceWriterRepository {
	return &fsWriterRepo{
		fs:      cfg.Fs,
		baseDir: cfg.BaseDir,
	}
}

// EnsureDir creates dir below BaseDir when it does not exist yet.
func (r *fsWriterRepo) EnsureDir(c bCtx.Ctx, dir string) (string, error) {
	fullPath := filepath.Join(r.baseDir, filepath.FromSlash(dir))
	if err := r.fs.MkdirAll(fullPath, 0755); err != nil {
		c.WithFields(log.Fields{"path": fullPath, "err": err}).Error("fs.MkdirAll failed")
		return "", err
	}
	return fullPath, nil
}

func (r *fsWriterRepo) Store(c bCtx.Ctx, path string, body []byte, contentType string) (string, error) {
	fullPath := filepath.Join(r.baseDir, filepath.FromSlash(path))
	if err := r.fs.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		c.WithFields(log.Fields{"path": fullPath, "err": err}).Error("fs.MkdirAll failed")
		return "", err
	}

	f, err := r.fs.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		c.WithFields(log.Fields{"path": fullPath, "err": err}).Error("fs.OpenFile failed")
		return "", err
	}
	if _, err := f.Write(body); err != nil {
		f.Close()
		c.WithFields(log.Fields{"path": fullPath, "err": err}).Error("failed to write")
		return "", err
	}
	// the file has to be on disk before the next item starts
	if err := f.Sync(); err != nil {
		f.Close()
		c.WithFields(log.Fields{"path": fullPath, "err": err}).Error("failed to sync")
		return "", err
	}
	if err := f.Close(); err != nil {
		c.WithFields(log.Fields{"path": fullPath, "err": err}).Error("failed to close file")
		return "", err
	}
	return fullPath, nil
}

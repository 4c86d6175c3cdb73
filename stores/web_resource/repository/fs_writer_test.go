package repository

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/domain"
)

func Test_fsWriterRepo_Store(t *testing.T) {
	req := require.New(t)
	ctx := bCtx.Background()
	fs := afero.NewMemMapFs()
	w := NewFsWriterRepo(&FsWriterRepoCfg{Fs: fs, BaseDir: "out"})

	got, err := w.Store(ctx, "assets/0.json", []byte(`{"name":"first version"}`), domain.ContentTypeJson)
	req.NoError(err)
	req.Equal(filepath.Join("out", "assets", "0.json"), got)

	// overwrite with a shorter body
	_, err = w.Store(ctx, "assets/0.json", []byte(`{}`), domain.ContentTypeJson)
	req.NoError(err)

	body, err := afero.ReadFile(fs, got)
	req.NoError(err)
	req.Equal(`{}`, string(body))
}

func Test_fsWriterRepo_Store_readOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	w := NewFsWriterRepo(&FsWriterRepoCfg{Fs: fs, BaseDir: "out"})
	_, err := w.Store(bCtx.Background(), "0.json", []byte(`{}`), "")
	require.Error(t, err)
}

func Test_fsWriterRepo_EnsureDir(t *testing.T) {
	req := require.New(t)
	fs := afero.NewMemMapFs()
	w := NewFsWriterRepo(&FsWriterRepoCfg{Fs: fs, BaseDir: "out"}).(domain.WebResourceDirectoryRepository)

	for i := 0; i < 2; i++ {
		got, err := w.EnsureDir(bCtx.Background(), "assets")
		req.NoError(err)
		req.Equal(filepath.Join("out", "assets"), got)
	}
	exists, err := afero.DirExists(fs, filepath.Join("out", "assets"))
	req.NoError(err)
	req.True(exists)
}

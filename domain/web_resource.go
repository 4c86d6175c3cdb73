package domain

import (
	"github.com/x-xyz/metagen/base/ctx"
)

// WebResourceWriterRepository persists body at path and returns where it can be
// found afterwards (a file path, an object url or an ipfs uri).
type WebResourceWriterRepository interface {
	Store(ctx.Ctx, string, []byte, string) (string, error)
}

const (
	ContentTypeJson = "application/json"
)

// WebResourceDirectoryRepository is implemented by writers backed by a real
// directory tree. Object stores have no directories and skip it.
type WebResourceDirectoryRepository interface {
	EnsureDir(ctx.Ctx, string) (string, error)
}

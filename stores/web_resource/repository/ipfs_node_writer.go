package repository

import (
	"bytes"
	"time"

	ipfsapi "github.com/ipfs/go-ipfs-api"
	"github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/base/log"
	"github.com/x-xyz/metagen/domain"
)

const ipfsScheme = "ipfs://"

type ipfsNodeWriterRepo struct {
	shell *ipfsapi.Shell
}

// NewIpfsNodeWriterRepo adds and pins resources on an ipfs node. The path only shows up
// in logs since content is addressed by its cid.
func NewIpfsNodeWriterRepo(s *ipfsapi.Shell, timeout time.Duration) domain.WebResourceWriterRepository {
	s.SetTimeout(timeout)
	return &ipfsNodeWriterRepo{shell: s}
}

func (r *ipfsNodeWriterRepo) Store(c ctx.Ctx, path string, body []byte, contentType string) (string, error) {
	cid, err := r.shell.Add(bytes.NewReader(body), ipfsapi.Pin(true))
	if err != nil {
		c.WithFields(log.Fields{"path": path, "err": err}).Error("shell.Add failed")
		return "", err
	}
	c.WithFields(log.Fields{"path": path, "cid": cid}).Debug("shell.Add success")
	return ipfsScheme + cid, nil
}

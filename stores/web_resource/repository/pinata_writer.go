package repository

import (
	"bytes"
	"encoding/json"
	"path"

	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/base/log"
	"github.com/x-xyz/metagen/domain"
	"github.com/x-xyz/metagen/service/pinata"
)

type pinataWriterRepo struct {
	pinata     pinata.Service
	cidVersion pinata.CidVersion
}

// NewPinataWriterRepo pins resources through pinata. JSON bodies are pinned as JSON
// documents, everything else as files.
func NewPinataWriterRepo(p pinata.Service, cidVersion pinata.CidVersion) domain.WebResourceWriterRepository {
	return &pinataWriterRepo{
		pinata:     p,
		cidVersion: cidVersion,
	}
}

func (r *pinataWriterRepo) Store(c bCtx.Ctx, p string, body []byte, contentType string) (string, error) {
	kvs := map[string]interface{}{"path": p}
	if runId, ok := c.Value("runId").(string); ok {
		kvs["runId"] = runId
	}
	opts := []pinata.PinOption{
		pinata.WithName(p),
		pinata.WithKeyValues(kvs),
		pinata.WithCidVersion(r.cidVersion),
	}

	var (
		hash string
		err  error
	)
	if contentType == domain.ContentTypeJson && json.Valid(body) {
		hash, err = r.pinata.PinJson(c, json.RawMessage(body), opts...)
	} else {
		hash, err = r.pinata.Pin(c, bytes.NewReader(body), path.Base(p), opts...)
	}
	if err != nil {
		c.WithFields(log.Fields{"path": p, "err": err}).Error("pinata failed")
		return "", err
	}
	c.WithFields(log.Fields{"path": p, "hash": hash}).Debug("pinata success")
	return ipfsScheme + hash, nil
}

package repository

import (
	"encoding/json"
	"os"

	"github.com/spf13/afero"
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/base/log"
	bValidator "github.com/x-xyz/metagen/base/validator"
	"github.com/x-xyz/metagen/domain"
	"github.com/x-xyz/metagen/domain/manifest"
	"golang.org/x/xerrors"
)

type JsonFileRepoCfg struct {
	Fs        afero.Fs
	Path      string
	Validator *bValidator.CustomValidator
}

type jsonFileRepo struct {
	fs        afero.Fs
	path      string
	validator *bValidator.CustomValidator
}

// NewJsonFileRepo reads the manifest from a JSON array of trait records.
func NewJsonFileRepo(cfg *JsonFileRepoCfg) manifest.Repository {
	v := cfg.Validator
	if v == nil {
		v = bValidator.New()
	}
	return &jsonFileRepo{
		fs:        cfg.Fs,
		path:      cfg.Path,
		validator: v,
	}
}

func (r *jsonFileRepo) Get(c bCtx.Ctx) (manifest.Manifest, error) {
	data, err := afero.ReadFile(r.fs, r.path)
	if os.IsNotExist(err) {
		c.WithField("path", r.path).Error("manifest not found")
		return nil, xerrors.Errorf("manifest %s: %w", r.path, domain.ErrNotFound)
	} else if err != nil {
		c.WithFields(log.Fields{"path": r.path, "err": err}).Error("afero.ReadFile failed")
		return nil, err
	}

	m := manifest.Manifest{}
	if err := json.Unmarshal(data, &m); err != nil {
		c.WithFields(log.Fields{"path": r.path, "err": err}).Error("json.Unmarshal failed")
		return nil, xerrors.Errorf("manifest %s: %w", r.path, err)
	}

	for i, record := range m {
		if err := r.validator.Validate(record); err != nil {
			c.WithFields(log.Fields{"index": i, "tokenId": record.TokenId, "err": err}).Error("invalid trait record")
			return nil, xerrors.Errorf("manifest %s item %d: %w", r.path, i, err)
		}
	}
	return m, nil
}

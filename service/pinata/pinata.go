// Package pinata is a small client of the pinata pinning api.
package pinata

import (
	"errors"
	"io"

	"github.com/x-xyz/metagen/base/ctx"
	"golang.org/x/xerrors"
)

var (
	ErrRequestFailed = errors.New("request failed")
	ErrInvalidOption = errors.New("invalid pin option")
)

// CidVersion selects the cid encoding of the returned hash.
type CidVersion uint8

const (
	CidV0 CidVersion = 0
	CidV1 CidVersion = 1
)

// Metadata is attached to a pin and searchable in the pinata dashboard.
type Metadata struct {
	Name      string                 `json:"name,omitempty"`
	KeyValues map[string]interface{} `json:"keyvalues,omitempty"`
}

type pinOptions struct {
	CidVersion CidVersion `json:"cidVersion"`
}

// pinRequest is the body of a json pin. File pins send Metadata and Options as form fields.
type pinRequest struct {
	Metadata *Metadata   `json:"pinataMetadata,omitempty"`
	Options  *pinOptions `json:"pinataOptions,omitempty"`
	Content  interface{} `json:"pinataContent"`
}

type PinOption func(*pinRequest) error

func newPinRequest(opts []PinOption) (*pinRequest, error) {
	req := &pinRequest{}
	for _, opt := range opts {
		if err := opt(req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

func (r *pinRequest) metadata() *Metadata {
	if r.Metadata == nil {
		r.Metadata = &Metadata{}
	}
	return r.Metadata
}

// WithName names the pin.
func WithName(name string) PinOption {
	return func(r *pinRequest) error {
		r.metadata().Name = name
		return nil
	}
}

// WithKeyValues tags the pin. Values must be strings, booleans or numbers.
func WithKeyValues(kvs map[string]interface{}) PinOption {
	return func(r *pinRequest) error {
		m := r.metadata()
		if m.KeyValues == nil {
			m.KeyValues = make(map[string]interface{}, len(kvs))
		}
		for k, v := range kvs {
			switch v.(type) {
			case string, bool, int, int32, int64, uint, uint32, uint64, float32, float64:
				m.KeyValues[k] = v
			default:
				return xerrors.Errorf("keyvalue %s of type %T: %w", k, v, ErrInvalidOption)
			}
		}
		return nil
	}
}

func WithCidVersion(v CidVersion) PinOption {
	return func(r *pinRequest) error {
		if v != CidV0 && v != CidV1 {
			return xerrors.Errorf("cid version %d: %w", v, ErrInvalidOption)
		}
		r.Options = &pinOptions{CidVersion: v}
		return nil
	}
}

// Service pins content on IPFS and returns its hash.
type Service interface {
	// Pin uploads file under filename.
	Pin(c ctx.Ctx, file io.Reader, filename string, opts ...PinOption) (string, error)
	// PinJson uploads value as a json document.
	PinJson(c ctx.Ctx, value interface{}, opts ...PinOption) (string, error)
}

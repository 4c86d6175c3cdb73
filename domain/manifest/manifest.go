package manifest

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/domain"
	"golang.org/x/xerrors"
)

// TokenIdKey is the record key holding the token id. Every other key is a trait category.
const TokenIdKey = "tokenId"

type TraitValue struct {
	Name string `json:"name"`
}

type Trait struct {
	Category string
	Value    TraitValue
}

// TraitRecord is one generated item. Traits keep the key order of the manifest file
// so the generated attributes come out in the same order on every run.
type TraitRecord struct {
	TokenId int64   `validate:"min=1"`
	Traits  []Trait `validate:"dive"`
}

// FileNumber is the zero based index used to address the item's outputs.
func (r TraitRecord) FileNumber() int64 {
	return r.TokenId - 1
}

func (r *TraitRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if tok, err := dec.Token(); err != nil {
		return err
	} else if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return domain.ErrInvalidJsonFormat
	}

	record := TraitRecord{}
	index := map[string]int{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		if key == TokenIdKey {
			var n json.Number
			if err := dec.Decode(&n); err != nil {
				return xerrors.Errorf("%s: %w", TokenIdKey, domain.ErrInvalidTokenId)
			}
			id, err := strconv.ParseInt(n.String(), 10, 64)
			if err != nil {
				return xerrors.Errorf("%s %q: %w", TokenIdKey, n.String(), domain.ErrInvalidTokenId)
			}
			record.TokenId = id
			continue
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		value, err := decodeTraitValue(raw)
		if err != nil {
			return xerrors.Errorf("trait %q: %w", key, err)
		}
		// a repeated key keeps its first position and its last value
		if i, ok := index[key]; ok {
			record.Traits[i].Value = value
			continue
		}
		index[key] = len(record.Traits)
		record.Traits = append(record.Traits, Trait{Category: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = record
	return nil
}

func decodeTraitValue(raw json.RawMessage) (TraitValue, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return TraitValue{}, domain.ErrInvalidTraitValue
	}
	v := struct {
		Name *string `json:"name"`
	}{}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return TraitValue{}, domain.ErrMissingTraitName
	}
	if v.Name == nil {
		return TraitValue{}, domain.ErrMissingTraitName
	}
	return TraitValue{Name: *v.Name}, nil
}

type Manifest []TraitRecord

// DuplicateTokenIds lists token ids used by more than one record, in order of
// their second appearance.
func (m Manifest) DuplicateTokenIds() []int64 {
	seen := make(map[int64]int, len(m))
	dups := []int64{}
	for _, r := range m {
		seen[r.TokenId]++
		if seen[r.TokenId] == 2 {
			dups = append(dups, r.TokenId)
		}
	}
	return dups
}

type Repository interface {
	Get(ctx.Ctx) (Manifest, error)
}

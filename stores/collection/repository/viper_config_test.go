package repository

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/domain"
	"github.com/x-xyz/metagen/domain/collection"
	"golang.org/x/xerrors"
)

func newViper(t *testing.T, typ, content string) *viper.Viper {
	v := viper.New()
	v.SetConfigType(typ)
	require.NoError(t, v.ReadConfig(strings.NewReader(content)))
	return v
}

func Test_viperConfigRepo_Get(t *testing.T) {
	tests := []struct {
		name    string
		typ     string
		content string
		want    *collection.Config
		wantErr bool
	}{
		{
			name: "json",
			typ:  "json",
			content: `{
				"name": "Collection",
				"symbol": "COL",
				"description": "A collection",
				"sellerFeeBasisPoints": 500,
				"externalUrl": "https://example.com",
				"collection": {"name": "Collection", "family": "Family"},
				"creators": [{"address": "Creator1", "share": 60, "verified": true}, {"address": "Creator2", "share": 40}]
			}`,
			want: &collection.Config{
				Name:                 "Collection",
				Symbol:               "COL",
				Description:          "A collection",
				SellerFeeBasisPoints: 500,
				ExternalUrl:          "https://example.com",
				Collection:           collection.Collection{Name: "Collection", Family: "Family"},
				Creators: []collection.Creator{
					{"address": "Creator1", "share": float64(60), "verified": true},
					{"address": "Creator2", "share": float64(40)},
				},
			},
		},
		{
			name: "yaml with legacy external url and no symbol",
			typ:  "yaml",
			content: `
name: Collection
sellerFeeBasisPoints: 0
external_url: https://example.com
`,
			want: &collection.Config{
				Name:        "Collection",
				ExternalUrl: "https://example.com",
				Creators:    []collection.Creator{},
			},
		},
		{
			name:    "missing name",
			typ:     "json",
			content: `{"symbol": "COL"}`,
			wantErr: true,
		},
		{
			name:    "fee out of range",
			typ:     "json",
			content: `{"name": "Collection", "sellerFeeBasisPoints": 10001}`,
			wantErr: true,
		},
		{
			name:    "creators keep unknown fields and key case",
			typ:     "json",
			content: `{"name": "Collection", "creators": [{"address": "A", "share": 100, "note": "x", "payoutWallet": {"chainId": 1}}]}`,
			want: &collection.Config{
				Name: "Collection",
				Creators: []collection.Creator{
					{"address": "A", "share": float64(100), "note": "x", "payoutWallet": map[string]interface{}{"chainId": float64(1)}},
				},
			},
		},
		{
			name:    "shares that do not add up are kept",
			typ:     "json",
			content: `{"name": "Collection", "creators": [{"address": "A", "share": 50}]}`,
			want: &collection.Config{
				Name:     "Collection",
				Creators: []collection.Creator{{"address": "A", "share": float64(50)}},
			},
		},
		{
			name:    "creator without address is kept",
			typ:     "json",
			content: `{"name": "Collection", "creators": [{"share": 100}]}`,
			want: &collection.Config{
				Name:     "Collection",
				Creators: []collection.Creator{{"share": float64(100)}},
			},
		},
		{
			name:    "royalty percent",
			typ:     "json",
			content: `{"name": "Collection", "royaltyPercent": "5.5"}`,
			want: &collection.Config{
				Name:                 "Collection",
				SellerFeeBasisPoints: 550,
				Creators:             []collection.Creator{},
			},
		},
		{
			name:    "basis points win over royalty percent",
			typ:     "json",
			content: `{"name": "Collection", "sellerFeeBasisPoints": 100, "royaltyPercent": "5.5"}`,
			want: &collection.Config{
				Name:                 "Collection",
				SellerFeeBasisPoints: 100,
				Creators:             []collection.Creator{},
			},
		},
		{
			name:    "royalty percent finer than a basis point",
			typ:     "json",
			content: `{"name": "Collection", "royaltyPercent": "5.555"}`,
			wantErr: true,
		},
		{
			name:    "royalty percent above 100",
			typ:     "json",
			content: `{"name": "Collection", "royaltyPercent": "150"}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			r := NewViperConfigRepo(&ViperConfigRepoCfg{Viper: newViper(t, tt.typ, tt.content)})
			got, err := r.Get(bCtx.Background())
			if tt.wantErr {
				req.Error(err)
				req.True(xerrors.Is(err, domain.ErrBadParamInput))
				return
			}
			req.NoError(err)
			req.Equal(tt.want, got)
		})
	}
}

func Test_viperConfigRepo_Get_yamlCreators(t *testing.T) {
	req := require.New(t)
	v := newViper(t, "yaml", `
name: Collection
creators:
  - address: A
    share: 100
    payoutWallet:
      chainId: 1
`)
	got, err := NewViperConfigRepo(&ViperConfigRepoCfg{Viper: v}).Get(bCtx.Background())
	req.NoError(err)

	body, err := json.Marshal(got.Creators)
	req.NoError(err)
	req.JSONEq(`[{"address": "A", "share": 100, "payoutWallet": {"chainId": 1}}]`, string(body))
}

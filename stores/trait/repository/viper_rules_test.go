package repository

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/domain"
	"github.com/x-xyz/metagen/domain/trait"
	"golang.org/x/xerrors"
)

func Test_viperRulesRepo_Get(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    func() trait.Rules
		wantErr bool
	}{
		{
			name:    "defaults",
			content: `{"name": "Collection"}`,
			want:    trait.DefaultRules,
		},
		{
			name:    "partial override",
			content: `{"traits": {"exclude": ["Background"], "dynamic": ["Level"], "hiddenPrefix": "X-"}}`,
			want: func() trait.Rules {
				r := trait.DefaultRules()
				r.Exclude = []string{"Background"}
				r.Dynamic = []string{"Level"}
				r.HiddenPrefix = "X-"
				return r
			},
		},
		{
			name:    "split category without delimiter",
			content: `{"traits": {"splitCategory": "Eyes", "splitDelimiter": ""}}`,
			wantErr: true,
		},
		{
			name:    "split category is also dynamic",
			content: `{"traits": {"dynamic": ["Location", "Face"]}}`,
			wantErr: true,
		},
		{
			name:    "no split category",
			content: `{"traits": {"splitCategory": "", "dynamic": ["Face"]}}`,
			want: func() trait.Rules {
				r := trait.DefaultRules()
				r.SplitCategory = ""
				r.Dynamic = []string{"Face"}
				return r
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			v := viper.New()
			v.SetConfigType("json")
			req.NoError(v.ReadConfig(strings.NewReader(tt.content)))

			got, err := NewViperRulesRepo(v, nil).Get(bCtx.Background())
			if tt.wantErr {
				req.True(xerrors.Is(err, domain.ErrBadParamInput), err)
				return
			}
			req.NoError(err)
			want := tt.want()
			req.ElementsMatch(want.Include, got.Include)
			req.ElementsMatch(want.Exclude, got.Exclude)
			req.Equal(want.Sentinels, got.Sentinels)
			req.Equal(want.Dynamic, got.Dynamic)
			req.Equal(want.SplitCategory, got.SplitCategory)
			req.Equal(want.SplitDelimiter, got.SplitDelimiter)
			req.Equal(want.SplitSecondary, got.SplitSecondary)
			req.Equal(want.HiddenPrefix, got.HiddenPrefix)
		})
	}
}

package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/domain"
	"github.com/x-xyz/metagen/domain/collection"
	"github.com/x-xyz/metagen/domain/manifest"
	"github.com/x-xyz/metagen/domain/metadata"
	"github.com/x-xyz/metagen/domain/trait"
	traitUsecase "github.com/x-xyz/metagen/stores/trait/usecase"
)

func testConfig() *collection.Config {
	return &collection.Config{
		Name:                 "Collection",
		Symbol:               "",
		Description:          "desc",
		SellerFeeBasisPoints: 500,
		ExternalUrl:          "https://example.com",
		Collection:           collection.Collection{Name: "Collection", Family: "Family"},
		Creators:             []collection.Creator{{"address": "Creator1", "share": 100}},
	}
}

func record(tokenId int64, kvs ...string) manifest.TraitRecord {
	r := manifest.TraitRecord{TokenId: tokenId}
	for i := 0; i+1 < len(kvs); i += 2 {
		r.Traits = append(r.Traits, manifest.Trait{Category: kvs[i], Value: manifest.TraitValue{Name: kvs[i+1]}})
	}
	return r
}

func TestBuilder_Build(t *testing.T) {
	req := require.New(t)
	c := bCtx.Background()
	b := NewBuilder(&BuilderCfg{
		Config:     testConfig(),
		Classifier: traitUsecase.NewClassifierFromRules(trait.DefaultRules()),
	})

	res, err := b.Build(c, record(1, "Location", "Forest", "Face", "Round-Full", "Hat", "H-Crown", "Ghost", "Notrait"))
	req.NoError(err)
	req.Equal(int64(0), res.FileNumber)
	req.Equal(&metadata.Token{
		Name:                 "Collection #1",
		Symbol:               "",
		Description:          "desc",
		SellerFeeBasisPoints: 500,
		Image:                "image.png",
		AnimationUrl:         "text.html",
		ExternalUrl:          "https://example.com",
		Attributes: metadata.Attributes{
			{TraitType: "Face", Value: "Round"},
			{TraitType: "Beard", Value: "Full"},
			{TraitType: "Hat", Value: "Crown"},
		},
		Collection: collection.Collection{Name: "Collection", Family: "Family"},
		Properties: metadata.Properties{
			Category: "image",
			Creators: []collection.Creator{{"address": "Creator1", "share": 100}},
			Files: []metadata.File{
				{Uri: "0.png", Type: "image/png"},
				{Uri: "0.html", Type: "text/html"},
			},
		},
	}, res.Token)
	req.Equal(&metadata.DynamicData{
		Name:              "Collection #1",
		DynamicAttributes: metadata.Attributes{{TraitType: "Location", Value: "Forest"}},
	}, res.DynamicData)
	req.Equal(metadata.Stats{Static: 3, Dynamic: 1, Sentinel: 1}, res.Stats)
}

func TestBuilder_BuildEdgeCases(t *testing.T) {
	tests := []struct {
		name        string
		record      manifest.TraitRecord
		wantAttrs   metadata.Attributes
		wantDynamic metadata.Attributes
		wantStats   metadata.Stats
	}{
		{
			name:        "no traits",
			record:      record(7),
			wantAttrs:   metadata.Attributes{},
			wantDynamic: metadata.Attributes{},
		},
		{
			name:        "sentinels only",
			record:      record(2, "Hat", "Notrait", "Wave", "H-Notrait"),
			wantAttrs:   metadata.Attributes{},
			wantDynamic: metadata.Attributes{},
			wantStats:   metadata.Stats{Sentinel: 2},
		},
		{
			name:        "dynamic values are kept as is",
			record:      record(3, "Board", "H-Oak", "Wave", "Big"),
			wantAttrs:   metadata.Attributes{},
			wantDynamic: metadata.Attributes{{TraitType: "Board", Value: "H-Oak"}, {TraitType: "Wave", Value: "Big"}},
			wantStats:   metadata.Stats{Dynamic: 2},
		},
		{
			name:        "face without beard",
			record:      record(4, "Face", "Smile-"),
			wantAttrs:   metadata.Attributes{{TraitType: "Face", Value: "Smile"}},
			wantDynamic: metadata.Attributes{},
			wantStats:   metadata.Stats{Static: 1},
		},
		{
			name:        "token id key is never a trait",
			record:      record(5, manifest.TokenIdKey, "5", "Eyes", "Blue"),
			wantAttrs:   metadata.Attributes{{TraitType: "Eyes", Value: "Blue"}},
			wantDynamic: metadata.Attributes{},
			wantStats:   metadata.Stats{Static: 1, Excluded: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			b := NewBuilder(&BuilderCfg{
				Config:     testConfig(),
				Classifier: traitUsecase.NewClassifierFromRules(trait.DefaultRules()),
			})
			res, err := b.Build(bCtx.Background(), tt.record)
			req.NoError(err)
			req.Equal(tt.record.TokenId-1, res.FileNumber)
			req.Equal(tt.wantAttrs, res.Token.Attributes)
			req.Equal(tt.wantDynamic, res.DynamicData.DynamicAttributes)
			req.Equal(tt.wantStats, res.Stats)
			req.Equal(res.Token.Name, res.DynamicData.Name)
		})
	}
}

func TestBuilder_BuildNilCreators(t *testing.T) {
	req := require.New(t)
	conf := testConfig()
	conf.Creators = nil
	b := NewBuilder(&BuilderCfg{Config: conf, Classifier: traitUsecase.NewClassifierFromRules(trait.DefaultRules())})

	res, err := b.Build(bCtx.Background(), record(1))
	req.NoError(err)
	req.NotNil(res.Token.Properties.Creators)
	req.Len(res.Token.Properties.Creators, 0)
}

func TestBuilder_BuildInvalidTokenId(t *testing.T) {
	req := require.New(t)
	b := NewBuilder(&BuilderCfg{Config: testConfig(), Classifier: traitUsecase.NewClassifierFromRules(trait.DefaultRules())})

	_, err := b.Build(bCtx.Background(), record(0, "Hat", "Crown"))
	req.ErrorIs(err, domain.ErrInvalidTokenId)
}

func TestBuilder_CustomAssets(t *testing.T) {
	req := require.New(t)
	b := NewBuilder(&BuilderCfg{
		Config:        testConfig(),
		Classifier:    traitUsecase.NewClassifierFromRules(trait.DefaultRules()),
		ImageName:     "cover",
		ImageType:     "image/gif",
		AnimationName: "scene",
		AnimationType: "video/mp4",
		Category:      "video",
	})

	res, err := b.Build(bCtx.Background(), record(10))
	req.NoError(err)
	req.Equal("cover.gif", res.Token.Image)
	req.Equal("scene.mp4", res.Token.AnimationUrl)
	req.Equal("video", res.Token.Properties.Category)
	req.Equal([]metadata.File{{Uri: "9.gif", Type: "image/gif"}, {Uri: "9.mp4", Type: "video/mp4"}}, res.Token.Properties.Files)
}

func TestBuilder_BuildPassesCreatorsThrough(t *testing.T) {
	req := require.New(t)
	conf := testConfig()
	conf.Creators = []collection.Creator{{"address": "A", "share": 50, "note": "x"}, {"share": 50}}
	b := NewBuilder(&BuilderCfg{Config: conf, Classifier: traitUsecase.NewClassifierFromRules(trait.DefaultRules())})

	res, err := b.Build(bCtx.Background(), record(1))
	req.NoError(err)
	req.Equal(conf.Creators, res.Token.Properties.Creators)
}

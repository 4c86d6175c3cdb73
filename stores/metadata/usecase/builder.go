package usecase

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/domain"
	"github.com/x-xyz/metagen/domain/collection"
	"github.com/x-xyz/metagen/domain/manifest"
	"github.com/x-xyz/metagen/domain/metadata"
	"github.com/x-xyz/metagen/domain/trait"
	"golang.org/x/xerrors"
)

const (
	defaultImageName     = "image"
	defaultImageType     = "image/png"
	defaultAnimationName = "text"
	defaultAnimationType = "text/html"
	defaultCategory      = "image"
)

type BuilderCfg struct {
	Config     *collection.Config
	Classifier trait.Classifier

	// asset references, defaults to image.png and text.html
	ImageName     string
	ImageType     string
	AnimationName string
	AnimationType string
	Category      string
}

type builder struct {
	config     *collection.Config
	classifier trait.Classifier

	imageName     string
	imageType     string
	animationName string
	animationType string
	category      string
}

func NewBuilder(cfg *BuilderCfg) metadata.Builder {
	b := &builder{
		config:        cfg.Config,
		classifier:    cfg.Classifier,
		imageName:     cfg.ImageName,
		imageType:     cfg.ImageType,
		animationName: cfg.AnimationName,
		animationType: cfg.AnimationType,
		category:      cfg.Category,
	}
	if b.imageName == "" {
		b.imageName = defaultImageName
	}
	if b.imageType == "" {
		b.imageType = defaultImageType
	}
	if b.animationName == "" {
		b.animationName = defaultAnimationName
	}
	if b.animationType == "" {
		b.animationType = defaultAnimationType
	}
	if b.category == "" {
		b.category = defaultCategory
	}
	return b
}

// extension returns the file extension registered for a mime type, ".png" for "image/png".
func extension(mimeType string) string {
	if m := mimetype.Lookup(mimeType); m != nil {
		return m.Extension()
	}
	return ""
}

func (b *builder) Build(c bCtx.Ctx, record manifest.TraitRecord) (*metadata.Result, error) {
	if record.TokenId < 1 {
		c.WithField("tokenId", record.TokenId).Error("invalid token id")
		return nil, xerrors.Errorf("tokenId %d: %w", record.TokenId, domain.ErrInvalidTokenId)
	}

	number := record.FileNumber()
	name := fmt.Sprintf("%s #%d", b.config.Name, record.TokenId)
	imageExt := extension(b.imageType)
	animationExt := extension(b.animationType)

	creators := b.config.Creators
	if creators == nil {
		creators = []collection.Creator{}
	}

	token := &metadata.Token{
		Name:                 name,
		Symbol:               b.config.Symbol,
		Description:          b.config.Description,
		SellerFeeBasisPoints: b.config.SellerFeeBasisPoints,
		Image:                b.imageName + imageExt,
		AnimationUrl:         b.animationName + animationExt,
		ExternalUrl:          b.config.ExternalUrl,
		Attributes:           metadata.Attributes{},
		Collection:           b.config.Collection,
		Properties: metadata.Properties{
			Category: b.category,
			Creators: creators,
			Files: []metadata.File{
				{Uri: fmt.Sprintf("%d%s", number, imageExt), Type: b.imageType},
				{Uri: fmt.Sprintf("%d%s", number, animationExt), Type: b.animationType},
			},
		},
	}
	dynamic := &metadata.DynamicData{
		Name:              name,
		DynamicAttributes: metadata.Attributes{},
	}

	stats := metadata.Stats{}
	for _, t := range record.Traits {
		out := b.classifier.Classify(t)
		switch out.Decision {
		case trait.DecisionExcluded:
			stats.Excluded++
		case trait.DecisionSentinel:
			stats.Sentinel++
		}
		token.Attributes = append(token.Attributes, out.Static...)
		dynamic.DynamicAttributes = append(dynamic.DynamicAttributes, out.Dynamic...)
		stats.Static += len(out.Static)
		stats.Dynamic += len(out.Dynamic)
	}

	return &metadata.Result{
		FileNumber:  number,
		Token:       token,
		DynamicData: dynamic,
		Stats:       stats,
	}, nil
}

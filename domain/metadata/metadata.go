package metadata

import (
	"github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/domain/collection"
	"github.com/x-xyz/metagen/domain/manifest"
)

type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

type Attributes = []Attribute

type File struct {
	Uri  string `json:"uri"`
	Type string `json:"type"`
}

type Properties struct {
	Category string               `json:"category"`
	Creators []collection.Creator `json:"creators"`
	Files    []File               `json:"files"`
}

// Token is the static per item document. Field order is the serialized key order.
type Token struct {
	Name                 string                `json:"name"`
	Symbol               string                `json:"symbol"`
	Description          string                `json:"description"`
	SellerFeeBasisPoints int                   `json:"seller_fee_basis_points"`
	Image                string                `json:"image"`
	AnimationUrl         string                `json:"animation_url"`
	ExternalUrl          string                `json:"external_url"`
	Attributes           Attributes            `json:"attributes"`
	Collection           collection.Collection `json:"collection"`
	Properties           Properties            `json:"properties"`
}

// DynamicData collects the attributes that are expected to change after mint.
type DynamicData struct {
	Name              string     `json:"name"`
	DynamicAttributes Attributes `json:"dynamic_attributes"`
}

type Result struct {
	FileNumber  int64
	Token       *Token
	DynamicData *DynamicData
	Stats       Stats
}

// Stats counts classification outcomes, per item or summed over a run.
type Stats struct {
	Static   int `json:"static"`
	Dynamic  int `json:"dynamic"`
	Excluded int `json:"excluded"`
	Sentinel int `json:"sentinel"`
}

func (s *Stats) Add(o Stats) {
	s.Static += o.Static
	s.Dynamic += o.Dynamic
	s.Excluded += o.Excluded
	s.Sentinel += o.Sentinel
}

type Report struct {
	RunId     string   `json:"runId"`
	Items     int      `json:"items"`
	Stats     Stats    `json:"stats"`
	Locations []string `json:"locations"`
	// IndexLocation is where the asset index was stored, empty when none was written.
	IndexLocation string `json:"indexLocation,omitempty"`
}

// AssetLocation maps an output address to where the writer put it. For content
// addressed backends the uri is the only way back to `<fileNumber>.json`.
type AssetLocation struct {
	FileNumber int64  `json:"fileNumber"`
	TokenId    int64  `json:"tokenId"`
	Path       string `json:"path"`
	Uri        string `json:"uri"`
}

type DynamicLocation struct {
	Path string `json:"path"`
	Uri  string `json:"uri"`
}

// AssetIndex lists the stored outputs of one run, one entry per file number.
type AssetIndex struct {
	RunId             string          `json:"runId"`
	Assets            []AssetLocation `json:"assets"`
	DynamicAttributes DynamicLocation `json:"dynamicAttributes"`
}

// Builder turns one trait record into its static and dynamic documents.
type Builder interface {
	Build(c ctx.Ctx, record manifest.TraitRecord) (*Result, error)
}

// Generator runs the whole manifest through the builder and stores the outputs.
type Generator interface {
	Generate(c ctx.Ctx) (*Report, error)
}

// ProgressReporter receives human readable status lines. It has no effect on output.
type ProgressReporter interface {
	Report(c ctx.Ctx, msg string)
}

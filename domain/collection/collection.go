package collection

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/domain"
	"golang.org/x/xerrors"
)

// Collection groups the generated items on marketplaces.
type Collection struct {
	Name   string `json:"name" mapstructure:"name"`
	Family string `json:"family" mapstructure:"family"`
}

// Creator is a royalty recipient as configured. The object is written to every token
// unchanged, fields the generator does not know about included.
type Creator map[string]interface{}

// Share returns the creator's share when it is set and numeric.
func (c Creator) Share() (float64, bool) {
	v, ok := c["share"]
	if !ok {
		return 0, false
	}
	share, err := cast.ToFloat64E(v)
	return share, err == nil
}

// Config holds the collection level constants shared by every token.
type Config struct {
	Name                 string     `json:"name" mapstructure:"name" validate:"required"`
	Symbol               string     `json:"symbol" mapstructure:"symbol"`
	Description          string     `json:"description" mapstructure:"description"`
	SellerFeeBasisPoints int        `json:"sellerFeeBasisPoints" mapstructure:"sellerFeeBasisPoints" validate:"min=0,max=10000"`
	ExternalUrl          string     `json:"externalUrl" mapstructure:"externalUrl"`
	Collection           Collection `json:"collection" mapstructure:"collection"`
	Creators             []Creator  `json:"creators" mapstructure:"creators"`
}

// RoyaltyPercent converts the basis points into a percentage, 500 -> 5.
func (c Config) RoyaltyPercent() decimal.Decimal {
	return decimal.New(int64(c.SellerFeeBasisPoints), -2)
}

// BasisPointsFromPercent reads a royalty percentage such as "5.5" or "5.5%" as basis
// points, 550. Percentages finer than a basis point are rejected.
func BasisPointsFromPercent(percent string) (int, error) {
	d, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(percent), "%"))
	if err != nil {
		return 0, xerrors.Errorf("royalty percent %q: %w", percent, domain.ErrBadParamInput)
	}
	bps := d.Shift(2)
	if !bps.IsInteger() {
		return 0, xerrors.Errorf("royalty percent %q is not a whole number of basis points: %w", percent, domain.ErrBadParamInput)
	}
	return int(bps.IntPart()), nil
}

type Repository interface {
	Get(ctx.Ctx) (*Config, error)
}

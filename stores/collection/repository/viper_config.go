package repository

import (
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/base/log"
	bValidator "github.com/x-xyz/metagen/base/validator"
	"github.com/x-xyz/metagen/domain/collection"
	"golang.org/x/xerrors"
)

const (
	legacyExternalUrlKey = "external_url"
	royaltyPercentKey    = "royaltyPercent"
)

type ViperConfigRepoCfg struct {
	Viper     *viper.Viper
	Validator *bValidator.CustomValidator
}

type viperConfigRepo struct {
	viper     *viper.Viper
	validator *bValidator.CustomValidator
}

// NewViperConfigRepo reads the collection constants from the root of the viper tree.
func NewViperConfigRepo(cfg *ViperConfigRepoCfg) collection.Repository {
	v := cfg.Validator
	if v == nil {
		v = bValidator.New()
	}
	return &viperConfigRepo{
		viper:     cfg.Viper,
		validator: v,
	}
}

func (r *viperConfigRepo) Get(c bCtx.Ctx) (*collection.Config, error) {
	r.viper.SetDefault("symbol", "")
	if !r.viper.IsSet("externalUrl") && r.viper.IsSet(legacyExternalUrlKey) {
		r.viper.Set("externalUrl", r.viper.GetString(legacyExternalUrlKey))
	}
	if !r.viper.IsSet("sellerFeeBasisPoints") && r.viper.IsSet(royaltyPercentKey) {
		bps, err := collection.BasisPointsFromPercent(r.viper.GetString(royaltyPercentKey))
		if err != nil {
			c.WithField("err", err).Error("collection.BasisPointsFromPercent failed")
			return nil, xerrors.Errorf("collection config: %w", err)
		}
		r.viper.Set("sellerFeeBasisPoints", bps)
	}

	conf := &collection.Config{}
	if err := r.viper.Unmarshal(conf); err != nil {
		c.WithField("err", err).Error("viper.Unmarshal failed")
		return nil, xerrors.Errorf("collection config: %w", err)
	}
	if conf.Creators == nil {
		conf.Creators = []collection.Creator{}
	}
	for i, creator := range conf.Creators {
		conf.Creators[i] = collection.Creator(toJsonValue(map[string]interface{}(creator)).(map[string]interface{}))
	}
	if err := r.validator.Validate(conf); err != nil {
		c.WithField("err", err).Error("invalid collection config")
		return nil, xerrors.Errorf("collection config: %w", err)
	}
	checkCreatorShares(c, conf.Creators)

	c.WithFields(log.Fields{
		"name":     conf.Name,
		"symbol":   conf.Symbol,
		"royalty":  conf.RoyaltyPercent().StringFixed(2) + "%",
		"creators": len(conf.Creators),
	}).Info("collection config loaded")
	return conf, nil
}

// toJsonValue turns the map[interface{}]interface{} values yaml produces into maps
// encoding/json can write. Creator keys keep their case since viper does not touch
// objects nested in lists.
func toJsonValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		return toJsonValue(cast.ToStringMap(t))
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[k] = toJsonValue(val)
		}
		return m
	case []interface{}:
		l := make([]interface{}, len(t))
		for i, val := range t {
			l[i] = toJsonValue(val)
		}
		return l
	}
	return v
}

// checkCreatorShares warns when the numeric shares do not add up to 100.
func checkCreatorShares(c bCtx.Ctx, creators []collection.Creator) {
	total := 0.0
	counted := 0
	for _, creator := range creators {
		if share, ok := creator.Share(); ok {
			total += share
			counted++
		}
	}
	if counted > 0 && total != 100 {
		c.WithFields(log.Fields{"total": total, "creators": len(creators)}).Warn("creator shares do not add up to 100")
	}
}

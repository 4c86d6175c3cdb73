package repository

import (
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/base/log"
	bValidator "github.com/x-xyz/metagen/base/validator"
	"github.com/x-xyz/metagen/domain/trait"
	"golang.org/x/xerrors"
)

const rulesKey = "traits"

type viperRulesRepo struct {
	viper     *viper.Viper
	validator *bValidator.CustomValidator
}

// NewViperRulesRepo reads classification rules from the `traits` section. Keys left out
// keep the values of trait.DefaultRules. Keys are read one by one so a partial section
// still falls back to the defaults.
func NewViperRulesRepo(v *viper.Viper, customValidator *bValidator.CustomValidator) trait.RulesRepository {
	if customValidator == nil {
		customValidator = bValidator.New()
	}
	customValidator.RegisterStructValidation(splitCategoryValidation, trait.Rules{})
	return &viperRulesRepo{
		viper:     v,
		validator: customValidator,
	}
}

func (r *viperRulesRepo) Get(c bCtx.Ctx) (*trait.Rules, error) {
	defaults := trait.DefaultRules()
	r.viper.SetDefault(rulesKey+".include", defaults.Include)
	r.viper.SetDefault(rulesKey+".exclude", defaults.Exclude)
	r.viper.SetDefault(rulesKey+".sentinels", defaults.Sentinels)
	r.viper.SetDefault(rulesKey+".dynamic", defaults.Dynamic)
	r.viper.SetDefault(rulesKey+".splitCategory", defaults.SplitCategory)
	r.viper.SetDefault(rulesKey+".splitDelimiter", defaults.SplitDelimiter)
	r.viper.SetDefault(rulesKey+".splitSecondary", defaults.SplitSecondary)
	r.viper.SetDefault(rulesKey+".hiddenPrefix", defaults.HiddenPrefix)

	rules := &trait.Rules{
		Include:        r.viper.GetStringSlice(rulesKey + ".include"),
		Exclude:        r.viper.GetStringSlice(rulesKey + ".exclude"),
		Sentinels:      r.viper.GetStringSlice(rulesKey + ".sentinels"),
		Dynamic:        r.viper.GetStringSlice(rulesKey + ".dynamic"),
		SplitCategory:  r.viper.GetString(rulesKey + ".splitCategory"),
		SplitDelimiter: r.viper.GetString(rulesKey + ".splitDelimiter"),
		SplitSecondary: r.viper.GetString(rulesKey + ".splitSecondary"),
		HiddenPrefix:   r.viper.GetString(rulesKey + ".hiddenPrefix"),
	}
	if err := r.validator.Validate(rules); err != nil {
		c.WithField("err", err).Error("invalid trait rules")
		return nil, xerrors.Errorf("trait rules: %w", err)
	}

	c.WithFields(log.Fields{
		"include":       rules.Include,
		"exclude":       rules.Exclude,
		"sentinels":     rules.Sentinels,
		"dynamic":       rules.Dynamic,
		"splitCategory": rules.SplitCategory,
	}).Debug("trait rules loaded")
	return rules, nil
}

// a category routes to one handler, so the split category cannot be dynamic too
func splitCategoryValidation(sl validator.StructLevel) {
	rules := sl.Current().Interface().(trait.Rules)
	for _, category := range rules.Dynamic {
		if category == rules.SplitCategory {
			sl.ReportError(rules.SplitCategory, "SplitCategory", "SplitCategory", "excluded_from_dynamic", category)
		}
	}
}

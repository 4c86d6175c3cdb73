package usecase

import (
	"github.com/x-xyz/metagen/domain/manifest"
	"github.com/x-xyz/metagen/domain/trait"
)

type ClassifierCfg struct {
	Policy    trait.InclusionPolicy
	Sentinels []string
	Selector  *Selector
}

type classifier struct {
	policy    trait.InclusionPolicy
	sentinels map[string]struct{}
	selector  *Selector
}

func NewClassifier(cfg *ClassifierCfg) trait.Classifier {
	return &classifier{
		policy:    cfg.Policy,
		sentinels: toSet(cfg.Sentinels),
		selector:  cfg.Selector,
	}
}

// NewClassifierFromRules wires the category policy and the handler table described by rules.
func NewClassifierFromRules(rules trait.Rules) trait.Classifier {
	selector := NewSelector(NewStaticHandler(rules.HiddenPrefix))
	InitializeSelector(selector, rules)
	return NewClassifier(&ClassifierCfg{
		Policy:    NewCategoryPolicy(rules.Include, rules.Exclude),
		Sentinels: rules.Sentinels,
		Selector:  selector,
	})
}

// Classify applies, in order, the inclusion policy, the sentinel check and the
// category handler.
func (c *classifier) Classify(t manifest.Trait) trait.Outcome {
	if !c.policy.ShouldInclude(t.Category) {
		return trait.Outcome{Decision: trait.DecisionExcluded}
	}
	if _, ok := c.sentinels[t.Value.Name]; ok {
		return trait.Outcome{Decision: trait.DecisionSentinel}
	}
	return c.selector.GetHandler(t.Category).Handle(t.Category, t.Value.Name)
}

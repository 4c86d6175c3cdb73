package trait

import (
	"github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/domain/manifest"
	"github.com/x-xyz/metagen/domain/metadata"
)

type Decision string

const (
	DecisionExcluded Decision = "excluded"
	DecisionSentinel Decision = "sentinel"
	DecisionDynamic  Decision = "dynamic"
	DecisionSplit    Decision = "split"
	DecisionStatic   Decision = "static"
)

// Outcome is what one trait contributes. At most one of Static and Dynamic is non empty.
type Outcome struct {
	Decision Decision
	Static   metadata.Attributes
	Dynamic  metadata.Attributes
}

// Rules are the collection specific classification constants.
type Rules struct {
	Include        []string
	Exclude        []string
	Sentinels      []string
	Dynamic        []string
	SplitCategory  string
	SplitDelimiter string `validate:"required_with=SplitCategory"`
	SplitSecondary string `validate:"required_with=SplitCategory"`
	HiddenPrefix   string
}

func DefaultRules() Rules {
	return Rules{
		Sentinels:      []string{"Notrait", "H-Notrait"},
		Dynamic:        []string{"Location", "Wave", "Board"},
		SplitCategory:  "Face",
		SplitDelimiter: "-",
		SplitSecondary: "Beard",
		HiddenPrefix:   "H-",
	}
}

// InclusionPolicy decides whether a category takes part in metadata at all.
type InclusionPolicy interface {
	ShouldInclude(category string) bool
}

// InclusionPolicyFunc adapts a plain predicate to InclusionPolicy.
type InclusionPolicyFunc func(category string) bool

func (f InclusionPolicyFunc) ShouldInclude(category string) bool {
	return f(category)
}

// Handler transforms one routed trait.
type Handler interface {
	Name() string
	Handle(category string, value string) Outcome
}

type Classifier interface {
	Classify(t manifest.Trait) Outcome
}

type RulesRepository interface {
	Get(c ctx.Ctx) (*Rules, error)
}

package usecase

import (
	"github.com/x-xyz/metagen/domain/manifest"
	"github.com/x-xyz/metagen/domain/trait"
)

type categoryPolicy struct {
	include map[string]struct{}
	exclude map[string]struct{}
}

// NewCategoryPolicy admits every category unless include is non empty, in which case
// only the listed categories pass. exclude always wins. The token id key never passes.
func NewCategoryPolicy(include, exclude []string) trait.InclusionPolicy {
	p := &categoryPolicy{
		include: toSet(include),
		exclude: toSet(exclude),
	}
	p.exclude[manifest.TokenIdKey] = struct{}{}
	return p
}

func (p *categoryPolicy) ShouldInclude(category string) bool {
	if _, ok := p.exclude[category]; ok {
		return false
	}
	if len(p.include) == 0 {
		return true
	}
	_, ok := p.include[category]
	return ok
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

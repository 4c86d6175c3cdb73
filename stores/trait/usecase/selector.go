package usecase

import (
	"github.com/x-xyz/metagen/base/log"
	"github.com/x-xyz/metagen/domain/trait"
)

type Selector struct {
	defaultHandler trait.Handler
	mapping        map[string]trait.Handler
}

func NewSelector(defaultHandler trait.Handler) *Selector {
	return &Selector{
		defaultHandler: defaultHandler,
		mapping:        make(map[string]trait.Handler),
	}
}

func (s *Selector) Add(category string, handler trait.Handler) {
	log.Log().WithFields(log.Fields{"category": category, "handler": handler.Name()}).Debug("handler registered")
	s.mapping[category] = handler
}

func (s *Selector) GetHandler(category string) trait.Handler {
	if handler, ok := s.mapping[category]; ok {
		return handler
	}
	return s.defaultHandler
}

// InitializeSelector registers the dynamic categories and the split category of rules.
func InitializeSelector(s *Selector, rules trait.Rules) {
	dynamic := NewDynamicHandler()
	for _, category := range rules.Dynamic {
		s.Add(category, dynamic)
	}
	if len(rules.SplitCategory) > 0 {
		s.Add(rules.SplitCategory, NewSplitHandler(rules.SplitDelimiter, rules.SplitSecondary))
	}
}

package usecase

import (
	"strings"

	"github.com/x-xyz/metagen/domain/metadata"
	"github.com/x-xyz/metagen/domain/trait"
)

type dynamicHandler struct{}

// NewDynamicHandler keeps the value untouched and sends it to the dynamic document.
func NewDynamicHandler() trait.Handler {
	return &dynamicHandler{}
}

func (h *dynamicHandler) Name() string {
	return "Dynamic Handler"
}

func (h *dynamicHandler) Handle(category string, value string) trait.Outcome {
	return trait.Outcome{
		Decision: trait.DecisionDynamic,
		Dynamic:  metadata.Attributes{{TraitType: category, Value: value}},
	}
}

type splitHandler struct {
	delimiter string
	secondary string
}

// NewSplitHandler reads a compound value such as "Round-Full" as two traits: the first
// piece under the category, the second under the secondary trait type.
func NewSplitHandler(delimiter, secondary string) trait.Handler {
	return &splitHandler{
		delimiter: delimiter,
		secondary: secondary,
	}
}

func (h *splitHandler) Name() string {
	return "Split Handler"
}

func (h *splitHandler) Handle(category string, value string) trait.Outcome {
	// pieces after the second one are dropped
	parts := strings.Split(value, h.delimiter)
	attrs := metadata.Attributes{{TraitType: category, Value: parts[0]}}
	if len(parts) > 1 && len(parts[1]) > 0 {
		attrs = append(attrs, metadata.Attribute{TraitType: h.secondary, Value: parts[1]})
	}
	return trait.Outcome{
		Decision: trait.DecisionSplit,
		Static:   attrs,
	}
}

type staticHandler struct {
	hiddenPrefix string
}

// NewStaticHandler removes the first occurrence of hiddenPrefix from the value.
func NewStaticHandler(hiddenPrefix string) trait.Handler {
	return &staticHandler{hiddenPrefix: hiddenPrefix}
}

func (h *staticHandler) Name() string {
	return "Static Handler"
}

func (h *staticHandler) Handle(category string, value string) trait.Outcome {
	if len(h.hiddenPrefix) > 0 && strings.Contains(value, h.hiddenPrefix) {
		value = strings.Replace(value, h.hiddenPrefix, "", 1)
	}
	return trait.Outcome{
		Decision: trait.DecisionStatic,
		Static:   metadata.Attributes{{TraitType: category, Value: value}},
	}
}

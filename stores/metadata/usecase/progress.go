package usecase

import (
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/domain/metadata"
)

type logProgressReporter struct{}

// NewLogProgressReporter writes progress lines to the ctx logger.
func NewLogProgressReporter() metadata.ProgressReporter {
	return &logProgressReporter{}
}

func (r *logProgressReporter) Report(c bCtx.Ctx, msg string) {
	c.Info(msg)
}

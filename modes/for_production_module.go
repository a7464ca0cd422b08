package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForProduction is the mode module of cmd/mailx.
type ModuleForProduction struct {
	dscope.Module
}

func ForProduction() ModuleForProduction {
	return ModuleForProduction{}
}

// T is nil outside tests.
func (ModuleForProduction) T() *testing.T {
	return nil
}

func (ModuleForProduction) Mode() Mode {
	return ModeProduction
}

package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForTest provides the running test and the development mode.
// Providers that touch the network or the user's home directory check the
// mode and fall back to local, side-effect free values.
type ModuleForTest struct {
	dscope.Module
	t *testing.T
}

func ForTest(t *testing.T) ModuleForTest {
	return ModuleForTest{
		t: t,
	}
}

func (m ModuleForTest) T() *testing.T {
	return m.t
}

func (m ModuleForTest) Mode() Mode {
	return ModeDevelopment
}

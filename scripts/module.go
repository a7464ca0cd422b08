package scripts

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mailx/generators"
	"github.com/reusee/mailx/prompts"
)

type Module struct {
	dscope.Module
	Generators generators.Module
	Prompts    prompts.Module
}

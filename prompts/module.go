package prompts

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mailx/mailconfigs"
)

type Module struct {
	dscope.Module
	MailConfigs mailconfigs.Module
}

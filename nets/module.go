package nets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/mailconfigs"
)

type Module struct {
	dscope.Module
	Logs        logs.Module
	MailConfigs mailconfigs.Module
}

package generators

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/mailconfigs"
	"github.com/reusee/mailx/nets"
)

type Module struct {
	dscope.Module
	Nets        nets.Module
	Logs        logs.Module
	MailConfigs mailconfigs.Module
}

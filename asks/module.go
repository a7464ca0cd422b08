package asks

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mailx/debugs"
	"github.com/reusee/mailx/logs"
	"github.com/reusee/mailx/mailconfigs"
	"github.com/reusee/mailx/render"
	"github.com/reusee/mailx/sandbox"
	"github.com/reusee/mailx/scripts"
)

type Module struct {
	dscope.Module
	Logs        logs.Module
	MailConfigs mailconfigs.Module
	Scripts     scripts.Module
	Sandbox     sandbox.Module
	Render      render.Module
	Debugs      debugs.Module
}

package server

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mailx/asks"
	"github.com/reusee/mailx/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
	Asks asks.Module
}

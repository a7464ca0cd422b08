package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/mailx/asks"
	"github.com/reusee/mailx/mailconfigs"
	"github.com/reusee/mailx/server"
	"github.com/reusee/mailx/storages"
)

type Module struct {
	dscope.Module
	Configs  mailconfigs.Module
	Storages storages.Module
	Asks     asks.Module
	Server   server.Module
}

package bfrun

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taibf/bfconfigs"
	"github.com/reusee/taibf/logs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs bfconfigs.Module
}

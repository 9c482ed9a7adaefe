package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taibf/bfrun"
	"github.com/reusee/taibf/debugs"
)

type Module struct {
	dscope.Module
	Run    bfrun.Module
	Debugs debugs.Module
}

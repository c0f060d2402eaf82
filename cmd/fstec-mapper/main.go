package main

import (
	"github.com/Erokhin-Danila/fstec-threat-mapping/cmd/fstec-mapper/commands"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/util/serviceutil"
)

func main() {
	commands.ExecuteContext(serviceutil.SignalContext())
}

package main

import (
	"fmt"
	"os"

	exportcmd "avkuzmin/finaudit/cmd/export"
	"avkuzmin/finaudit/cmd/ikz"
	"avkuzmin/finaudit/cmd/importpay"
	"avkuzmin/finaudit/cmd/initdb"
	"avkuzmin/finaudit/cmd/query"
	"avkuzmin/finaudit/cmd/root"
	"avkuzmin/finaudit/cmd/suspicious"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(initdb.Cmd)
	root.Cmd.AddCommand(importpay.Cmd)
	root.Cmd.AddCommand(ikz.Cmd)
	root.Cmd.AddCommand(exportcmd.Cmd)
	root.Cmd.AddCommand(query.Cmd)
	root.Cmd.AddCommand(suspicious.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

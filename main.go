package main

import (
	"fmt"
	"os"

	"github.com/babarot/imgsort/internal/cli"
	"github.com/fatih/color"
)

const appName = "imgsort"

var (
	version   = "unset"
	revision  = "unset"
	buildDate = "unset"
)

func main() {
	err := cli.Run(cli.Version{
		AppName:   appName,
		Version:   version,
		Revision:  revision,
		BuildDate: buildDate,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", color.RedString(appName), err)
		os.Exit(1)
	}
}

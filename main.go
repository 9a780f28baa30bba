package main

import (
	"github.com/harsh-app/harsh/cmd"
)

// Version is the current version of harsh
// It is set at build time by using -ldflags "-X main.version=x.x.x"
var version string

func main() {
	cmd.Execute(version)
}

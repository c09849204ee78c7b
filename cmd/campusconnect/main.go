package main

import (
	"github.com/campusconnect/campusconnect/internal/cli/cmd"
	"github.com/campusconnect/campusconnect/internal/cli/logging"
)

func main() {
	logging.Init()
	cmd.Execute()
}

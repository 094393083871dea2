package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/matzehuels/gitdeps/internal/cli"
	"github.com/matzehuels/gitdeps/pkg/buildinfo"
	"github.com/matzehuels/gitdeps/pkg/errors"
)

func main() {
	c := cli.New(os.Stderr, cli.LogInfo)

	err := fang.Execute(
		context.Background(),
		c.RootCommand(),
		fang.WithVersion(buildinfo.Short()),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
	if err != nil {
		os.Exit(errors.ExitCode(err))
	}
}

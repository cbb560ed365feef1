package main

import (
	"context"
	"os"

	"github.com/preston-bernstein/sportsboard/internal/cli"
)

var appVersion = "dev"

func main() {
	app := cli.NewApp(cli.WithVersion(appVersion))
	os.Exit(app.Execute(context.Background(), os.Args[1:]))
}

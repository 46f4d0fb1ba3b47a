// mocksauce CLI - JSON:API fixture server and response pipeline
package main

import "github.com/getmockd/mocksauce/pkg/cli"

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	if Version != "dev" {
		cli.Version = Version
	}
	if Commit != "unknown" {
		cli.Commit = Commit
	}
	if BuildDate != "unknown" {
		cli.BuildDate = BuildDate
	}
	cli.Execute()
}

package main

import (
	"context"

	"github.com/ztk-sh/ztk/cmd"
)

func main() {
	ctx := context.Background()
	cmd.Execute(ctx)
}

package main

import (
	"os"

	"storyctl/internal/ollamactl"
)

func main() {
	os.Exit(ollamactl.Main())
}

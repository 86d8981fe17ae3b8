package main

import (
	"os"

	"storyctl/internal/modectl"
)

func main() {
	os.Exit(modectl.Main())
}

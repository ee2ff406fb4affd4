package main

import (
	"log"

	"github.com/thiagokokada/guit-go/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatalf("guit: %v", err)
	}
}

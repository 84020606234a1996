package main

import (
	"log"
	"os"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("usage: measure <measure|inspect|parse> <dxfPath> [unit] [joinTol]")
	}

	if err := run(os.Args[1], os.Args[2], os.Args[3:]); err != nil {
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

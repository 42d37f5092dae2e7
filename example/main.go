// Example program demonstrating the bumpr library API.
//
// Run from a project containing a bumpr.rc:
//
//	go run ./example/
//
// The run is a dry run so nothing is committed or tagged.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/bumpr-dev/bumpr/pkg/bumpr"
)

func main() {
	result, err := bumpr.Release(context.Background(), bumpr.Options{
		Dir:    ".",
		DryRun: true,
		Out:    os.Stdout,
	})
	if err != nil {
		log.Fatalf("release failed: %v", err)
	}

	fmt.Printf("current version:  %s\n", result.Previous)
	fmt.Printf("would release:    %s\n", result.Released)
	fmt.Printf("next development: %s\n", result.Next)
}

// Command e2e runs end-to-end scenarios against a throwaway data root.
// Each scenario builds its own fixture tree, drives the library the way the
// CLI does, and checks the observable results.
package main

import (
	"fmt"
	"os"
)

func main() {
	scenarios := []*Scenario{
		ListScenario(),
		ResolveScenario(),
		SearchScenario(),
		MigrateScenario(),
	}

	failed := 0
	for _, sc := range scenarios {
		if err := sc.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", sc.Name, err)
			failed++
			continue
		}
		fmt.Printf("PASS %s\n", sc.Name)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d scenarios failed\n", failed, len(scenarios))
		os.Exit(1)
	}
}

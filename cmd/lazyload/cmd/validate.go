package cmd

import (
	"fmt"

	"github.com/go-drift/lazyload/cmd/lazyload/internal/scenario"
)

func init() {
	RegisterCommand(&Command{
		Name:  "validate",
		Short: "Check a scenario file without running it",
		Long: `Parse and validate a YAML scroll scenario.

Reports the scenario shape on success and the first problem found on
failure, without building a document or replaying the timeline.

Usage:
  lazyload validate <scenario.yaml>`,
		Usage: "lazyload validate <scenario.yaml>",
		Run:   runValidate,
	})
}

func runValidate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("scenario file is required\n\nUsage: lazyload validate <scenario.yaml>")
	}

	s, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s: ok (%d containers, %d images, %d steps)\n",
		args[0], len(s.Containers), len(s.Images), len(s.Steps))
	return nil
}

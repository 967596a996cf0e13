package cmd

import (
	"fmt"
	"time"

	"github.com/go-drift/lazyload/cmd/lazyload/internal/scenario"
	"github.com/go-drift/lazyload/pkg/schedule"
	"github.com/go-drift/lazyload/pkg/visibility"
)

// drainGrace is how far past the last step the clock advances so pending
// debounce and throttle timers get to fire.
const drainGrace = 2 * time.Second

func init() {
	RegisterCommand(&Command{
		Name:  "run",
		Short: "Replay a scroll scenario",
		Long: `Replay a YAML scroll scenario against the visibility engine.

The document described by the scenario is built in memory, one controller
is attached per image, and the scroll/resize timeline is replayed on a
deterministic clock. Every reveal is printed with its virtual timestamp.

Usage:
  lazyload run <scenario.yaml>`,
		Usage: "lazyload run <scenario.yaml>",
		Run:   runRun,
	})
}

func runRun(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("scenario file is required\n\nUsage: lazyload run <scenario.yaml>")
	}

	s, err := scenario.Load(args[0])
	if err != nil {
		return err
	}

	clk := schedule.NewManualClock(time.Unix(0, 0).UTC())
	prev := schedule.SetClock(clk)
	defer schedule.SetClock(prev)
	start := clk.Now()

	doc, images, containers := s.BuildDocument()
	strategy := "observer"
	if !doc.SupportsIntersectionObserver() {
		strategy = "polling (host has no observer API)"
	}
	fmt.Printf("engine %s, viewport %.0fx%.0f, default strategy: %s\n",
		doc.EngineVersion(), s.Viewport.Width, s.Viewport.Height, strategy)

	revealed := make(map[string]bool)
	controllers := make([]*visibility.Controller, 0, len(s.Images))
	for _, img := range s.Images {
		id := img.ID
		c := visibility.NewController(images[id], s.ConfigFor(img), func() {
			revealed[id] = true
			fmt.Printf("%6dms  reveal %s\n", clk.Now().Sub(start).Milliseconds(), id)
		})
		controllers = append(controllers, c)
	}

	for _, step := range s.Steps {
		at := time.Duration(step.AtMs) * time.Millisecond
		if d := at - clk.Now().Sub(start); d > 0 {
			clk.Advance(d)
		}
		switch {
		case step.Scroll == "viewport":
			doc.Viewport().ScrollTo(step.X, step.Y)
		case step.Scroll != "":
			containers[step.Scroll].ScrollTo(step.X, step.Y)
		case step.Resize != nil:
			doc.Viewport().SetSize(step.Resize.Width, step.Resize.Height)
		}
	}
	clk.Advance(drainGrace)

	for _, c := range controllers {
		c.Dispose()
	}

	fmt.Printf("revealed %d of %d images\n", len(revealed), len(s.Images))
	for _, id := range s.SortedImageIDs() {
		if !revealed[id] {
			fmt.Printf("  still pending: %s\n", id)
		}
	}
	return nil
}

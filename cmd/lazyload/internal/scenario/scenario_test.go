package scenario

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-drift/lazyload/pkg/ratelimit"
)

const sample = `
engine_version: v1.1.0
viewport:
  width: 800
  height: 600
defaults:
  threshold: 50
  delay_method: debounce
containers:
  - id: feed
    overflow: auto
    rect: {left: 0, top: 0, width: 400, height: 600}
images:
  - id: hero
    rect: {left: 0, top: 100, width: 400, height: 300}
    visible_by_default: true
  - id: gallery-1
    container: feed
    rect: {left: 0, top: 900, width: 400, height: 300}
    delay_time_ms: 150
steps:
  - {at_ms: 100, scroll: feed, y: 700}
  - {at_ms: 500, resize: {width: 1024, height: 768}}
  - {at_ms: 900}
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Sample(t *testing.T) {
	s, err := Load(writeScenario(t, sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Containers) != 1 || len(s.Images) != 2 || len(s.Steps) != 3 {
		t.Fatalf("unexpected shape: %+v", s)
	}
	if s.EngineVersion != "v1.1.0" {
		t.Errorf("unexpected engine version %q", s.EngineVersion)
	}
}

func TestConfigFor_LayersTuning(t *testing.T) {
	s, err := Load(writeScenario(t, sample))
	if err != nil {
		t.Fatal(err)
	}

	hero := s.ConfigFor(s.Images[0])
	if !hero.VisibleByDefault {
		t.Error("per-image visible_by_default should apply")
	}
	if hero.Threshold != 50 || hero.DelayMethod != ratelimit.Debounce {
		t.Errorf("scenario defaults should apply, got %+v", hero)
	}
	if hero.DelayTime != 300*time.Millisecond {
		t.Errorf("engine default delay should survive, got %v", hero.DelayTime)
	}

	gallery := s.ConfigFor(s.Images[1])
	if gallery.DelayTime != 150*time.Millisecond {
		t.Errorf("per-image delay_time_ms should apply, got %v", gallery.DelayTime)
	}
	if gallery.VisibleByDefault {
		t.Error("hero's override must not leak to other images")
	}
}

func TestBuildDocument(t *testing.T) {
	s, err := Load(writeScenario(t, sample))
	if err != nil {
		t.Fatal(err)
	}

	doc, images, containers := s.BuildDocument()
	if doc.Viewport().Size().Width != 800 {
		t.Error("viewport size should come from the scenario")
	}
	if doc.SupportsIntersectionObserver() {
		t.Error("engine_version v1.1.0 must disable the observer")
	}

	feed := containers["feed"]
	if feed == nil || !feed.Style().OverflowY.Scrollable() {
		t.Fatal("feed container should be scrollable")
	}
	if images["gallery-1"].Parent() != feed {
		t.Error("gallery-1 should attach to the feed")
	}
	if images["hero"].Parent() != doc.Root() {
		t.Error("hero should attach to the root")
	}
}

func TestValidate_Rejections(t *testing.T) {
	cases := map[string]string{
		"zero viewport": `
viewport: {width: 0, height: 600}
`,
		"unknown container ref": `
viewport: {width: 800, height: 600}
images:
  - id: a
    container: nope
    rect: {left: 0, top: 0, width: 10, height: 10}
`,
		"duplicate image id": `
viewport: {width: 800, height: 600}
images:
  - id: a
    rect: {left: 0, top: 0, width: 10, height: 10}
  - id: a
    rect: {left: 0, top: 0, width: 10, height: 10}
`,
		"bad delay method": `
viewport: {width: 800, height: 600}
defaults: {delay_method: eventually}
`,
		"decreasing timeline": `
viewport: {width: 800, height: 600}
steps:
  - {at_ms: 500}
  - {at_ms: 100}
`,
		"unknown scroll target": `
viewport: {width: 800, height: 600}
steps:
  - {at_ms: 0, scroll: sidebar, y: 10}
`,
	}
	for name, content := range cases {
		if _, err := Load(writeScenario(t, content)); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

// Package scenario loads and validates the YAML scroll scenarios replayed
// by the lazyload CLI.
package scenario

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/lazyload/pkg/dom"
	"github.com/go-drift/lazyload/pkg/geometry"
	"github.com/go-drift/lazyload/pkg/ratelimit"
	"github.com/go-drift/lazyload/pkg/visibility"
)

// Scenario describes a document layout and a scroll/resize timeline.
type Scenario struct {
	// EngineVersion overrides the host engine version; leave empty for
	// the default (observer-capable) host.
	EngineVersion string `yaml:"engine_version,omitempty"`

	Viewport   ViewportSize `yaml:"viewport"`
	Defaults   Tuning       `yaml:"defaults"`
	Containers []Container  `yaml:"containers"`
	Images     []Image      `yaml:"images"`
	Steps      []Step       `yaml:"steps"`
}

// ViewportSize is the viewport extent in pixels.
type ViewportSize struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Box places an element in document coordinates.
type Box struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Rect converts the box to a geometry rect.
func (b Box) Rect() geometry.Rect {
	return geometry.RectFromLTWH(b.Left, b.Top, b.Width, b.Height)
}

// Container is a scrollable (or plain) wrapper element.
type Container struct {
	ID       string `yaml:"id"`
	Overflow string `yaml:"overflow,omitempty"` // visible, hidden, scroll, auto
	Rect     Box    `yaml:"rect"`
}

// Image is one lazily revealed element.
type Image struct {
	ID        string `yaml:"id"`
	Container string `yaml:"container,omitempty"` // empty attaches to the root
	Rect      Box    `yaml:"rect"`
	Tuning    Tuning `yaml:",inline"`
}

// Tuning holds optional visibility settings. Unset fields fall through to
// the scenario defaults, then to [visibility.DefaultConfig].
type Tuning struct {
	UseObserver      *bool    `yaml:"use_observer,omitempty"`
	Threshold        *float64 `yaml:"threshold,omitempty"`
	VisibleByDefault *bool    `yaml:"visible_by_default,omitempty"`
	DelayMethod      *string  `yaml:"delay_method,omitempty"` // debounce or throttle
	DelayTimeMs      *int     `yaml:"delay_time_ms,omitempty"`
}

func (t Tuning) apply(cfg visibility.Config) visibility.Config {
	if t.UseObserver != nil {
		cfg.UseObserver = *t.UseObserver
	}
	if t.Threshold != nil {
		cfg.Threshold = *t.Threshold
	}
	if t.VisibleByDefault != nil {
		cfg.VisibleByDefault = *t.VisibleByDefault
	}
	if t.DelayMethod != nil {
		cfg.DelayMethod = ratelimit.ParsePolicy(*t.DelayMethod)
	}
	if t.DelayTimeMs != nil {
		cfg.DelayTime = time.Duration(*t.DelayTimeMs) * time.Millisecond
	}
	return cfg
}

// Step is one timeline event. A step with neither scroll nor resize is a
// plain wait, useful for letting rate-limit timers drain.
type Step struct {
	AtMs   int           `yaml:"at_ms"`
	Scroll string        `yaml:"scroll,omitempty"` // "viewport" or a container id
	X      float64       `yaml:"x,omitempty"`
	Y      float64       `yaml:"y,omitempty"`
	Resize *ViewportSize `yaml:"resize,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks referential integrity and value ranges.
func (s *Scenario) Validate() error {
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must have positive width and height")
	}

	containers := make(map[string]bool)
	for _, c := range s.Containers {
		if c.ID == "" {
			return fmt.Errorf("container without an id")
		}
		if containers[c.ID] {
			return fmt.Errorf("duplicate container id %q", c.ID)
		}
		containers[c.ID] = true
	}

	images := make(map[string]bool)
	for _, img := range s.Images {
		if img.ID == "" {
			return fmt.Errorf("image without an id")
		}
		if images[img.ID] {
			return fmt.Errorf("duplicate image id %q", img.ID)
		}
		images[img.ID] = true
		if img.Container != "" && !containers[img.Container] {
			return fmt.Errorf("image %q references unknown container %q", img.ID, img.Container)
		}
		if err := validateTuning(img.ID, img.Tuning); err != nil {
			return err
		}
	}
	if err := validateTuning("defaults", s.Defaults); err != nil {
		return err
	}

	last := 0
	for i, st := range s.Steps {
		if st.AtMs < last {
			return fmt.Errorf("step %d: at_ms must not decrease", i)
		}
		last = st.AtMs
		if st.Scroll != "" && st.Scroll != "viewport" && !containers[st.Scroll] {
			return fmt.Errorf("step %d: unknown scroll target %q", i, st.Scroll)
		}
		if st.Resize != nil && (st.Resize.Width <= 0 || st.Resize.Height <= 0) {
			return fmt.Errorf("step %d: resize must have positive width and height", i)
		}
	}
	return nil
}

func validateTuning(owner string, t Tuning) error {
	if t.DelayMethod != nil {
		if m := *t.DelayMethod; m != "debounce" && m != "throttle" {
			return fmt.Errorf("%s: delay_method must be debounce or throttle, got %q", owner, m)
		}
	}
	if t.DelayTimeMs != nil && *t.DelayTimeMs < 0 {
		return fmt.Errorf("%s: delay_time_ms must not be negative", owner)
	}
	if t.Threshold != nil && *t.Threshold < 0 {
		return fmt.Errorf("%s: threshold must not be negative", owner)
	}
	return nil
}

// ConfigFor resolves the effective visibility config for one image:
// engine defaults, then scenario defaults, then per-image tuning.
func (s *Scenario) ConfigFor(img Image) visibility.Config {
	cfg := s.Defaults.apply(visibility.DefaultConfig())
	return img.Tuning.apply(cfg)
}

// BuildDocument materializes the scenario layout. It returns the document
// plus the image elements and scroll targets keyed by id.
func (s *Scenario) BuildDocument() (*dom.Document, map[string]*dom.Element, map[string]*dom.Element) {
	doc := dom.NewDocument()
	if s.EngineVersion != "" {
		doc.SetEngineVersion(s.EngineVersion)
	}
	doc.Viewport().SetSize(s.Viewport.Width, s.Viewport.Height)

	containers := make(map[string]*dom.Element, len(s.Containers))
	for _, c := range s.Containers {
		el := doc.CreateElement("div")
		overflow := dom.ParseOverflow(c.Overflow)
		el.SetStyle(dom.Style{OverflowX: overflow, OverflowY: overflow})
		el.SetLayoutRect(c.Rect.Rect())
		doc.Root().AppendChild(el)
		containers[c.ID] = el
	}

	images := make(map[string]*dom.Element, len(s.Images))
	for _, img := range s.Images {
		el := doc.CreateElement("img")
		el.SetLayoutRect(img.Rect.Rect())
		if img.Container != "" {
			containers[img.Container].AppendChild(el)
		} else {
			doc.Root().AppendChild(el)
		}
		images[img.ID] = el
	}

	return doc, images, containers
}

// SortedImageIDs returns the image ids in sorted order. The run command
// uses it for stable output.
func (s *Scenario) SortedImageIDs() []string {
	ids := make([]string, 0, len(s.Images))
	for _, img := range s.Images {
		ids = append(ids, img.ID)
	}
	sort.Strings(ids)
	return ids
}

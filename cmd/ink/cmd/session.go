package cmd

import (
	"fmt"
	"os"

	"github.com/go-drift/ink/pkg/config"
	"github.com/go-drift/ink/pkg/ripple"
	"github.com/go-drift/ink/pkg/script"
)

// session is a configured surface plus the responder that drives it.
type session struct {
	project   string
	settings  *config.Resolved
	surface   *ripple.Surface
	responder *ripple.Responder
}

// newSession loads the config named by --config, or ink.yaml from the
// enclosing Go module (falling back to the working directory).
func newSession() (*session, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	dir := wd
	if root, err := config.FindProjectRoot(wd); err == nil {
		dir = root
	}

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadOptional(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return sessionFor(config.ProjectName(dir), cfg)
}

func sessionFor(project string, cfg *config.Config) (*session, error) {
	settings, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	surface := ripple.NewSurface(settings.Size)
	responder := ripple.NewResponder(surface, surface.Bounds)
	if err := settings.Apply(surface, responder.Tracker()); err != nil {
		return nil, err
	}
	return &session{
		project:   project,
		settings:  settings,
		surface:   surface,
		responder: responder,
	}, nil
}

// loadScript reads path, or returns a tap at the surface center.
func (s *session) loadScript(path string) (*script.Script, error) {
	if path == "" {
		return script.Tap(s.surface.Bounds().Center()), nil
	}
	return script.Load(path)
}

func (s *session) describe() string {
	size := s.settings.Size
	return fmt.Sprintf("%s: surface %gx%g %s, ink %s", s.project, size.Width, size.Height, s.settings.Style, s.settings.Color.Hex())
}

// flagValue returns the value following args[i], advancing i.
func flagValue(args []string, i *int, name string) (string, error) {
	if *i+1 >= len(args) {
		return "", fmt.Errorf("%s requires a value", name)
	}
	*i++
	return args[*i], nil
}

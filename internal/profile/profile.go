// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package profile holds the static portfolio content the terminal commands
// print: who the owner is, what they know, what they built and how to reach
// them. Content is plain YAML so it can be edited without recompiling.
package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// MaxSkillLevel is the width of a full skill bar.
const MaxSkillLevel = 12

// =============================================================================
// PROFILE TYPES
// =============================================================================

// Profile is the content shown by the built-in commands.
type Profile struct {
	Name         string        `yaml:"name"`
	User         string        `yaml:"user"`
	Host         string        `yaml:"host"`
	Tagline      string        `yaml:"tagline"`
	Location     string        `yaml:"location"`
	Status       string        `yaml:"status"`
	Website      string        `yaml:"website"` // base for relative links
	About        []string      `yaml:"about"`
	Journey      []string      `yaml:"journey"`
	Skills       []Skill       `yaml:"skills"`
	ProjectsURL  string        `yaml:"projects_url"`
	Projects     []Project     `yaml:"projects"`
	Contact      []Contact     `yaml:"contact"`
	AvailableFor []string      `yaml:"available_for"`
	Experience   []Experience  `yaml:"experience"`
	Certificates []Certificate `yaml:"certificates"`
	ResumeURL    string        `yaml:"resume_url"`
	Banner       string        `yaml:"banner"`
	Welcome      string        `yaml:"welcome"`
}

// Skill is one line of the skills chart.
type Skill struct {
	Name  string `yaml:"name"`
	Icon  string `yaml:"icon"`
	Level int    `yaml:"level"` // 0..MaxSkillLevel
	Label string `yaml:"label"`
}

// Project is a featured project.
type Project struct {
	Name    string `yaml:"name"`
	Summary string `yaml:"summary"`
	Details string `yaml:"details"`
	URL     string `yaml:"url"`
}

// Contact is one way to reach the owner.
type Contact struct {
	Label string `yaml:"label"`
	Icon  string `yaml:"icon"`
	Value string `yaml:"value"`
}

// Experience is a role on the timeline.
type Experience struct {
	Period  string `yaml:"period"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

// Certificate is an earned certification.
type Certificate struct {
	Name   string `yaml:"name"`
	Issuer string `yaml:"issuer"`
	Date   string `yaml:"date"`
	ID     string `yaml:"id,omitempty"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the embedded profile.
func Default() *Profile {
	p, err := Parse(defaultYAML)
	if err != nil {
		// The embedded file is part of the binary; failing here is a build defect.
		panic(fmt.Sprintf("profile: embedded default is invalid: %v", err))
	}
	return p
}

// Load reads a profile from a YAML file. An empty path returns Default().
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates YAML profile content. Missing optional fields
// are filled from the embedded default's conventions.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	p.fillDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) fillDefaults() {
	if p.User == "" {
		p.User = "root"
	}
	if p.Host == "" {
		p.Host = "portfolio"
	}
	if p.ProjectsURL == "" {
		p.ProjectsURL = "/projects"
	}
	if p.Welcome == "" && p.Name != "" {
		first := strings.Fields(p.Name)[0]
		p.Welcome = fmt.Sprintf("Welcome to %s's Portfolio Terminal! 🚀\nType 'help' to see available commands.", first)
	}
}

// Validate checks the profile for content the commands cannot render.
func (p *Profile) Validate() error {
	var errs []error
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	for i, s := range p.Skills {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("skills[%d]: name is required", i))
		}
		if s.Level < 0 || s.Level > MaxSkillLevel {
			errs = append(errs, fmt.Errorf("skills[%d]: level %d out of range 0..%d", i, s.Level, MaxSkillLevel))
		}
	}
	for i, pr := range p.Projects {
		if pr.Name == "" {
			errs = append(errs, fmt.Errorf("projects[%d]: name is required", i))
		}
	}
	return errors.Join(errs...)
}

// Prompt returns the "user@host" string shown before the input line.
func (p *Profile) Prompt() string {
	return p.User + "@" + p.Host
}

// ResolveURL resolves a site-relative link such as "/projects" against
// Website. Absolute links and links without a usable Website come back
// unchanged.
func (p *Profile) ResolveURL(ref string) string {
	if p.Website == "" {
		return ref
	}
	base, err := url.Parse(p.Website)
	if err != nil || base.Scheme == "" {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil || r.IsAbs() {
		return ref
	}
	return base.ResolveReference(r).String()
}

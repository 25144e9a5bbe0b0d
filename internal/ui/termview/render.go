// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package termview

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/profile"
	"github.com/jeranaias/termfolio/internal/terminal"
	"github.com/jeranaias/termfolio/internal/ui/styles"
	"github.com/jeranaias/termfolio/internal/util"
)

// minRenderWidth keeps wrapping sane on tiny terminals.
const minRenderWidth = 20

// =============================================================================
// RENDERER
// =============================================================================

// Renderer turns transcript entries into styled text. Rendered entries are
// cached by sequence number until the width changes; entries never change
// once appended, so the cache stays valid.
type Renderer struct {
	theme      *styles.Theme
	profile    *profile.Profile
	hyperlinks bool

	width    int
	markdown *glamour.TermRenderer
	cache    map[int]string
}

// NewRenderer creates a renderer. hyperlinks turns on OSC 8 links for rich
// output.
func NewRenderer(theme *styles.Theme, p *profile.Profile, hyperlinks bool) *Renderer {
	if p == nil {
		p = profile.Default()
	}
	r := &Renderer{
		theme:      theme,
		profile:    p,
		hyperlinks: hyperlinks,
		cache:      make(map[int]string),
	}
	r.SetWidth(80)
	return r
}

// SetWidth changes the wrap width and drops the cache when it differs.
func (r *Renderer) SetWidth(width int) {
	if width < minRenderWidth {
		width = minRenderWidth
	}
	if width == r.width && r.markdown != nil {
		return
	}
	r.width = width
	r.cache = make(map[int]string)

	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(r.theme.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fall back to the plain text of rich outputs
		md = nil
	}
	r.markdown = md
}

// Width returns the current wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Transcript renders all entries separated by blank lines.
func (r *Renderer) Transcript(entries []terminal.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, r.Entry(e))
	}
	return strings.Join(parts, "\n\n")
}

// Entry renders one entry: the prompt line, if any, followed by the output.
func (r *Renderer) Entry(e terminal.Entry) string {
	if s, ok := r.cache[e.Seq]; ok {
		return s
	}

	var sb strings.Builder
	if e.CommandText != "" {
		sb.WriteString(r.PromptLine(e.CommandText))
		if e.Output.Text != "" || e.Output.IsRich() {
			sb.WriteString("\n")
		}
	}

	switch {
	case e.CommandText == "":
		sb.WriteString(r.theme.Greeting.Render(util.Wrap(e.Output.Text, r.width)))
	case e.Output.Kind == commands.OutputNotFound:
		sb.WriteString(r.theme.NotFound.Render(util.Wrap(e.Output.Text, r.width)))
	case e.Output.IsRich():
		sb.WriteString(r.rich(e.Output))
	case e.Output.Text != "":
		sb.WriteString(r.theme.Output.Render(util.Wrap(e.Output.Text, r.width)))
	}

	s := sb.String()
	r.cache[e.Seq] = s
	return s
}

// PromptLine renders "user@host:~$ command".
func (r *Renderer) PromptLine(command string) string {
	return r.theme.Prompt.Render(r.profile.Prompt()+":~$") + " " + r.theme.CommandText.Render(command)
}

func (r *Renderer) rich(out commands.Output) string {
	if r.markdown == nil {
		return r.theme.Output.Render(util.Wrap(out.Text, r.width))
	}
	rendered, err := r.markdown.Render(out.Fragment.Markdown)
	if err != nil {
		return r.theme.Output.Render(util.Wrap(out.Text, r.width))
	}
	rendered = strings.Trim(rendered, "\n")

	if links := r.links(out.Fragment.Links); links != "" {
		rendered += "\n" + links
	}
	return rendered
}

// links renders the fragment links as clickable labels.
func (r *Renderer) links(links []commands.Link) string {
	if !r.hyperlinks || len(links) == 0 || r.theme.ColorProfile == termenv.Ascii {
		return ""
	}
	parts := make([]string, 0, len(links))
	for _, l := range links {
		href := r.profile.ResolveURL(l.Href)
		parts = append(parts, termenv.Hyperlink(href, r.theme.Link.Render(l.Label)))
	}
	return "  ↗ " + strings.Join(parts, "  ")
}

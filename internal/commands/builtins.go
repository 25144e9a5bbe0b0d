// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/termfolio/internal/profile"
)

// Rule is the divider printed under section titles.
const Rule = "─────────────────────────────────────"

// DateLayout is the format of the date command.
const DateLayout = "Mon Jan 02 2006 15:04:05 MST"

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

// Builtins returns the portfolio commands in display order.
func Builtins() []*Command {
	return []*Command{
		{Name: "help", Description: "Show this help message", Category: "System", Action: HandleHelp},
		{Name: "about", Description: "About me", Category: "Info", Action: HandleAbout},
		{Name: "skills", Description: "List technical skills", Category: "Info", Action: HandleSkills},
		{
			Name:        "projects",
			Description: "Show featured projects",
			Usage:       "projects [--details]",
			Category:    "Info",
			Action:      HandleProjects,
		},
		{Name: "contact", Description: "Get contact information", Category: "Info", Action: HandleContact},
		{Name: "resume", Description: "Download resume", Category: "Info", Action: HandleResume},
		{Name: "experience", Description: "Show work experience", Category: "Info", Action: HandleExperience},
		{Name: "certificates", Description: "List certifications", Category: "Info", Action: HandleCertificates},
		{Name: "whoami", Description: "Current user", Category: "System", Action: HandleWhoami},
		{Name: "date", Description: "Current date and time", Category: "System", Action: HandleDate},
		{Name: "clear", Description: "Clear terminal", Category: "System", Action: HandleClear},
		{Name: "banner", Description: "Show ASCII banner", Category: "System", Action: HandleBanner},
	}
}

// DefaultRegistry builds a registry holding the built-in commands.
func DefaultRegistry() (*Registry, error) {
	return NewRegistry(Builtins()...)
}

// =============================================================================
// HANDLER IMPLEMENTATIONS
// =============================================================================

// HandleHelp lists visible commands followed by the reserved history and echo
// entries.
func HandleHelp(ctx *Context, args []string) Output {
	return Text(GenerateHelpText(ctx.Registry))
}

// GenerateHelpText renders the help listing for reg.
func GenerateHelpText(reg *Registry) string {
	type row struct{ name, desc string }
	var rows []row
	if reg != nil {
		for _, cmd := range reg.All() {
			if cmd.Hidden {
				continue
			}
			rows = append(rows, row{cmd.Name, cmd.Description})
		}
	}
	for _, name := range []string{ReservedClear, ReservedHistory, ReservedEcho} {
		if reg == nil || !reg.Has(name) {
			rows = append(rows, row{name, reservedDescriptions[name]})
		}
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r.name))
	}

	var sb strings.Builder
	sb.WriteString("Available commands:\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "  %-*s - %s\n", width, r.name, r.desc)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// HandleAbout prints the owner's summary.
func HandleAbout(ctx *Context, args []string) Output {
	p := ctx.Profile
	var sb strings.Builder
	sb.WriteString(p.Name + "\n" + Rule + "\n")
	if p.Tagline != "" {
		sb.WriteString(p.Tagline + "\n")
	}
	writeBullets(&sb, "What I do:", p.About)
	writeBullets(&sb, "Journey:", p.Journey)
	if p.Location != "" || p.Status != "" {
		sb.WriteString("\n")
		if p.Location != "" {
			sb.WriteString("Location: " + p.Location + "\n")
		}
		if p.Status != "" {
			sb.WriteString("Status: " + p.Status + "\n")
		}
	}
	return Text(strings.TrimRight(sb.String(), "\n"))
}

// HandleSkills draws a bar per skill.
func HandleSkills(ctx *Context, args []string) Output {
	skills := ctx.Profile.Skills
	width := 0
	for _, s := range skills {
		width = max(width, runewidth.StringWidth(s.Name))
	}

	var sb strings.Builder
	sb.WriteString("Technical Skills:\n" + Rule)
	for _, s := range skills {
		sb.WriteString("\n")
		if s.Icon != "" {
			sb.WriteString(runewidth.FillRight(s.Icon, 2) + " ")
		}
		sb.WriteString(runewidth.FillRight(s.Name, width+2))
		sb.WriteString(SkillBar(s.Level))
		if s.Label != "" {
			sb.WriteString(" " + s.Label)
		}
	}
	return Text(sb.String())
}

// SkillBar renders level as a filled bar of profile.MaxSkillLevel cells.
func SkillBar(level int) string {
	level = min(max(level, 0), profile.MaxSkillLevel)
	return strings.Repeat("█", level) + strings.Repeat("░", profile.MaxSkillLevel-level)
}

// HandleProjects lists featured projects. With --details each project's
// details and link are included.
func HandleProjects(ctx *Context, args []string) Output {
	p := ctx.Profile
	details := HasFlag(args, "--details")

	var plain, md strings.Builder
	plain.WriteString("Featured Projects:\n" + Rule + "\n")
	md.WriteString("**Featured Projects:**\n\n")

	var links []Link
	for i, pr := range p.Projects {
		fmt.Fprintf(&plain, "%d. %s - %s\n", i+1, pr.Name, pr.Summary)
		fmt.Fprintf(&md, "%d. **%s** - %s\n", i+1, pr.Name, pr.Summary)
		if details {
			if pr.Details != "" {
				plain.WriteString("   " + pr.Details + "\n")
				md.WriteString("   " + pr.Details + "\n")
			}
			if pr.URL != "" {
				plain.WriteString("   " + pr.URL + "\n")
				fmt.Fprintf(&md, "   [%s](%s)\n", pr.URL, pr.URL)
				links = append(links, Link{Label: pr.Name, Href: pr.URL})
			}
		}
	}

	plain.WriteString("\n")
	md.WriteString("\n")
	if !details {
		plain.WriteString("Type 'projects --details' for more info\n")
		md.WriteString("Type `projects --details` for more info\n\n")
	}
	plain.WriteString("Or visit " + p.ProjectsURL)
	fmt.Fprintf(&md, "Or visit [%s](%s)", p.ProjectsURL, p.ProjectsURL)
	links = append(links, Link{Label: p.ProjectsURL, Href: p.ProjectsURL})

	return Rich(plain.String(), Fragment{Markdown: md.String(), Links: links})
}

// HandleContact prints contact channels and availability.
func HandleContact(ctx *Context, args []string) Output {
	p := ctx.Profile
	width := 0
	for _, c := range p.Contact {
		width = max(width, runewidth.StringWidth(c.Label)+1)
	}

	var sb strings.Builder
	sb.WriteString("Contact Information:\n" + Rule)
	for _, c := range p.Contact {
		sb.WriteString("\n")
		if c.Icon != "" {
			sb.WriteString(runewidth.FillRight(c.Icon, 2) + " ")
		}
		sb.WriteString(runewidth.FillRight(c.Label+":", width+2) + c.Value)
	}
	if len(p.AvailableFor) > 0 {
		sb.WriteString("\n")
		writeBullets(&sb, "Available for:", p.AvailableFor)
	}
	return Text(strings.TrimRight(sb.String(), "\n"))
}

// HandleResume points at the resume download.
func HandleResume(ctx *Context, args []string) Output {
	url := ctx.Profile.ResumeURL
	if url == "" {
		return Text("No resume available.")
	}
	plain := "Downloading resume...\n✅ Resume download started!\n\nDirect link: " + url
	md := "Downloading resume...\n\n✅ Resume download started!\n\nDirect link: [" + url + "](" + url + ")"
	return Rich(plain, Fragment{Markdown: md, Links: []Link{{Label: "resume", Href: url}}})
}

// HandleExperience prints the role timeline.
func HandleExperience(ctx *Context, args []string) Output {
	exp := ctx.Profile.Experience
	width := 0
	for _, e := range exp {
		width = max(width, runewidth.StringWidth(e.Period))
	}
	width += 2
	indent := strings.Repeat(" ", width)

	var sb strings.Builder
	sb.WriteString("Experience:\n" + Rule + "\n")
	for i, e := range exp {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(runewidth.FillRight(e.Period, width) + e.Title + "\n")
		if e.Summary != "" {
			sb.WriteString(indent + e.Summary + "\n")
		}
	}
	return Text(strings.TrimRight(sb.String(), "\n"))
}

// HandleCertificates lists certifications.
func HandleCertificates(ctx *Context, args []string) Output {
	certs := ctx.Profile.Certificates
	if len(certs) == 0 {
		return Text("No certifications listed.")
	}
	var sb strings.Builder
	sb.WriteString("Certifications:\n" + Rule)
	for _, c := range certs {
		sb.WriteString("\n• " + c.Name)
		if c.Issuer != "" {
			sb.WriteString(" (" + c.Issuer + ")")
		}
		if c.ID != "" {
			sb.WriteString(" #" + c.ID)
		}
		if c.Date != "" {
			sb.WriteString(" - " + c.Date)
		}
	}
	return Text(sb.String())
}

// HandleWhoami prints the session user.
func HandleWhoami(ctx *Context, args []string) Output {
	return Text(ctx.Profile.User)
}

// HandleDate prints the current time.
func HandleDate(ctx *Context, args []string) Output {
	return Text(ctx.now().Format(DateLayout))
}

// HandleClear produces nothing. The controller intercepts clear before
// dispatch; the entry exists so help and completion list it.
func HandleClear(ctx *Context, args []string) Output {
	return Text("")
}

// HandleBanner prints the ASCII banner.
func HandleBanner(ctx *Context, args []string) Output {
	return Text(strings.TrimRight(ctx.Profile.Banner, "\n"))
}

func writeBullets(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString("\n" + title + "\n")
	for _, item := range items {
		sb.WriteString("• " + item + "\n")
	}
}

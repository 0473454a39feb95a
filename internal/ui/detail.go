package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"recommendi/internal/domain"
)

// PagerOps opens long-form item detail in the ov pager
type PagerOps struct {
	program *tea.Program // reference to the Bubble Tea program for terminal handoff
}

// NewPagerOps creates a pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{program: program}
}

// SetProgram installs the program handle once it exists
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowInPager renders the full recommendation, nothing clipped, and hands
// the terminal to ov until the user quits it
func (p *PagerOps) ShowInPager(item domain.Recommendation) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Give ov a moment to fully exit before taking the terminal back
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(renderPagerContent(item)))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

func renderPagerContent(item domain.Recommendation) string {
	var b strings.Builder

	title := item.Title
	if title == "" {
		title = "Untitled"
	}
	if date := item.Date(); date != "" {
		title = fmt.Sprintf("%s (%s)", title, date)
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))))
	b.WriteString("\n\n")

	if item.Author != "" {
		b.WriteString("Author: " + item.Author + "\n")
	}
	if item.Genre != "" {
		b.WriteString("Genre: " + item.Genre + "\n")
	}
	b.WriteString("\n")

	b.WriteString("Description\n-----------\n")
	b.WriteString(fallbackText(item.Description, "No description available."))
	b.WriteString("\n\n")

	b.WriteString("Why we chose it\n---------------\n")
	b.WriteString(fallbackText(item.Context, "No context available."))
	b.WriteString("\n\n")

	if len(item.Tags) > 0 {
		b.WriteString("Tags\n----\n")
		for _, tag := range item.Tags {
			b.WriteString("  - " + tag.Name + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Extra data\n----------\n")
	b.WriteString(fallbackText(item.ExtraData, "No extra data available."))
	b.WriteString("\n")

	return b.String()
}

func fallbackText(s, alt string) string {
	if s == "" {
		return alt
	}
	return s
}

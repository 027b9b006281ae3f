// ABOUTME: ReportBuilder assembles multi-section reports from summary and extraction
// ABOUTME: Renders structured results as Markdown; PDF layout belongs to the UI layer
package core

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultReportSections are the sections produced when the caller does not
// request a specific set.
var DefaultReportSections = []string{"Summary", "Diagnosis", "Treatment", "Lab Results"}

// ReportSection is one titled block of report content.
type ReportSection struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Sources []string `json:"sources,omitempty"`
}

// Report is an assembled multi-section report.
type Report struct {
	Title       string          `json:"title"`
	GeneratedAt time.Time       `json:"generated_at"`
	Sections    []ReportSection `json:"sections"`
}

// ReportBuilder composes reports from the summarizer and section extractor.
// Only the Summary section costs a generation request; all other sections
// come from retrieval alone.
type ReportBuilder struct {
	summarizer *Summarizer
	extractor  *SectionExtractor
}

// NewReportBuilder creates a report builder
func NewReportBuilder(summarizer *Summarizer, extractor *SectionExtractor) *ReportBuilder {
	return &ReportBuilder{summarizer: summarizer, extractor: extractor}
}

// Build assembles a report with the given title and section names. Sections
// with no matching content get an explicit placeholder so the report shape
// stays predictable.
func (b *ReportBuilder) Build(ctx context.Context, title string, sections []string) (*Report, error) {
	if strings.TrimSpace(title) == "" {
		title = "Document Report"
	}
	if len(sections) == 0 {
		sections = DefaultReportSections
	}

	report := &Report{
		Title:       title,
		GeneratedAt: time.Now().UTC(),
	}

	for _, name := range sections {
		if strings.EqualFold(name, "Summary") {
			summary, err := b.summarizer.Summarize(ctx, 500)
			if err != nil {
				return nil, fmt.Errorf("generating summary section: %w", err)
			}
			report.Sections = append(report.Sections, ReportSection{
				Title:   name,
				Content: summary.Content,
			})
			continue
		}

		extracted, err := b.extractor.ExtractSection(name)
		if err != nil {
			return nil, fmt.Errorf("extracting section %q: %w", name, err)
		}
		section := ReportSection{Title: name}
		if extracted.Found {
			section.Content = extracted.Content
			section.Sources = extracted.Sources
		} else {
			section.Content = fmt.Sprintf("No specific content found for %s section.", name)
		}
		report.Sections = append(report.Sections, section)
	}

	return report, nil
}

// RenderMarkdown formats the report as a Markdown document
func (r *Report) RenderMarkdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r.Title)
	fmt.Fprintf(&sb, "_Generated %s_\n\n", r.GeneratedAt.Format("2006-01-02 15:04 MST"))
	for _, section := range r.Sections {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", section.Title, section.Content)
		if len(section.Sources) > 0 {
			fmt.Fprintf(&sb, "_Sources: %s_\n\n", strings.Join(section.Sources, ", "))
		}
	}
	return sb.String()
}

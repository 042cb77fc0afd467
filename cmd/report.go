/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aymerick/raymond"
	"github.com/mattn/go-runewidth"

	"github.com/fightkeep/fightkeep/internal/content"
	"github.com/fightkeep/fightkeep/internal/dupes"
	"github.com/fightkeep/fightkeep/internal/integrity"
)

// Output formats shared by scan, validate, and fix.
const (
	formatConcise  = "concise"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

func validFormat(format string) error {
	switch format {
	case formatConcise, formatJSON, formatMarkdown:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want concise, json, or markdown)", format)
	}
}

// scanReport is the serializable result of a duplicate/outdated scan.
type scanReport struct {
	Root       string            `json:"root"`
	Duplicates []duplicateReport `json:"duplicates"`
	Outdated   []outdatedReport  `json:"outdated"`
}

type duplicateReport struct {
	Kind   string        `json:"kind"`
	Reason string        `json:"reason"`
	Items  []assetReport `json:"items"`
}

type outdatedReport struct {
	Kind         string      `json:"kind"`
	Item         assetReport `json:"item"`
	NewerVersion string      `json:"newer_version"`
}

type assetReport struct {
	Name    string `json:"name"`
	Author  string `json:"author,omitempty"`
	Version string `json:"version"`
	Path    string `json:"path"`
}

func assetToReport(d content.AssetDescriptor) assetReport {
	return assetReport{
		Name:    d.DisplayName,
		Author:  d.Author,
		Version: d.Version.Display(),
		Path:    d.DefPath,
	}
}

func buildScanReport(root string, groups map[content.Kind][]dupes.DuplicateGroup, outdated map[content.Kind][]dupes.OutdatedItem) scanReport {
	report := scanReport{Root: root, Duplicates: []duplicateReport{}, Outdated: []outdatedReport{}}
	for _, kind := range []content.Kind{content.KindCharacter, content.KindStage, content.KindScreenpack} {
		for _, g := range groups[kind] {
			dr := duplicateReport{Kind: string(kind), Reason: string(g.Reason)}
			for _, item := range g.Items {
				dr.Items = append(dr.Items, assetToReport(item))
			}
			report.Duplicates = append(report.Duplicates, dr)
		}
		for _, o := range outdated[kind] {
			report.Outdated = append(report.Outdated, outdatedReport{
				Kind:         string(kind),
				Item:         assetToReport(o.Item),
				NewerVersion: o.NewerVersion.Display(),
			})
		}
	}
	return report
}

func renderScanReport(w io.Writer, report scanReport, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, report)
	case formatMarkdown:
		return renderTemplate(w, scanMarkdownTemplate, scanTemplateData(report))
	default:
		renderScanConcise(w, report)
		return nil
	}
}

func renderScanConcise(w io.Writer, report scanReport) {
	if len(report.Duplicates) == 0 && len(report.Outdated) == 0 {
		fmt.Fprintf(w, "No duplicate or outdated content under %s\n", report.Root)
		return
	}

	if len(report.Duplicates) > 0 {
		fmt.Fprintf(w, "Duplicates (%d groups):\n", len(report.Duplicates))
		for _, g := range report.Duplicates {
			fmt.Fprintf(w, "  %s matched by %s:\n", g.Kind, g.Reason)
			width := 0
			for _, item := range g.Items {
				if rw := runewidth.StringWidth(item.Name); rw > width {
					width = rw
				}
			}
			for _, item := range g.Items {
				fmt.Fprintf(w, "    %s  %-10s %s\n", runewidth.FillRight(item.Name, width), item.Version, item.Path)
			}
		}
	}
	if len(report.Outdated) > 0 {
		fmt.Fprintf(w, "Outdated (%d items):\n", len(report.Outdated))
		for _, o := range report.Outdated {
			fmt.Fprintf(w, "  %s %s (%s) superseded by %s\n", o.Kind, o.Item.Name, o.Item.Version, o.NewerVersion)
		}
	}
}

// validateReport is the serializable result of an integrity validation run.
type validateReport struct {
	Root    string                       `json:"root"`
	Results []integrity.ValidationResult `json:"results"`
}

func (r validateReport) totals() (errors, warnings, fixable int) {
	for _, res := range r.Results {
		errors += res.ErrorCount()
		warnings += res.WarningCount()
		fixable += res.FixableCount()
	}
	return errors, warnings, fixable
}

func renderValidateReport(w io.Writer, report validateReport, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, report)
	case formatMarkdown:
		return renderTemplate(w, validateMarkdownTemplate, validateTemplateData(report))
	default:
		renderValidateConcise(w, report)
		return nil
	}
}

func renderValidateConcise(w io.Writer, report validateReport) {
	errors, warnings, fixable := report.totals()
	if errors == 0 && warnings == 0 {
		fmt.Fprintf(w, "All content under %s is intact\n", report.Root)
		return
	}
	for _, res := range report.Results {
		if len(res.Issues) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%s):\n", res.ContentName, res.ContentType)
		for _, issue := range res.Issues {
			marker := " "
			if issue.Fixable {
				marker = "*"
			}
			fmt.Fprintf(w, "  [%s]%s %s\n", issue.Severity, marker, issue.Message)
			if issue.Suggestion != "" {
				fmt.Fprintf(w, "        suggestion: %s\n", issue.Suggestion)
			}
		}
	}
	fmt.Fprintf(w, "%d errors, %d warnings (%d fixable)\n", errors, warnings, fixable)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Markdown rendering goes through Handlebars templates. Data is handed over
// as plain maps so template names never depend on Go field names.

const scanMarkdownTemplate = `# Content Scan Report

Root: ` + "`{{root}}`" + `

## Duplicates

{{#if duplicates}}{{#each duplicates}}### {{kind}} matched by {{reason}}

| Name | Author | Version | Path |
|------|--------|---------|------|
{{#each items}}| {{name}} | {{author}} | {{version}} | {{path}} |
{{/each}}
{{/each}}{{else}}No duplicate content found.
{{/if}}
## Outdated

{{#if outdated}}| Kind | Name | Version | Superseded by |
|------|------|---------|---------------|
{{#each outdated}}| {{kind}} | {{name}} | {{version}} | {{newer}} |
{{/each}}{{else}}No outdated content found.
{{/if}}`

func scanTemplateData(report scanReport) map[string]interface{} {
	duplicates := make([]map[string]interface{}, 0, len(report.Duplicates))
	for _, g := range report.Duplicates {
		items := make([]map[string]interface{}, 0, len(g.Items))
		for _, item := range g.Items {
			items = append(items, map[string]interface{}{
				"name":    item.Name,
				"author":  item.Author,
				"version": item.Version,
				"path":    item.Path,
			})
		}
		duplicates = append(duplicates, map[string]interface{}{
			"kind":   g.Kind,
			"reason": g.Reason,
			"items":  items,
		})
	}
	outdated := make([]map[string]interface{}, 0, len(report.Outdated))
	for _, o := range report.Outdated {
		outdated = append(outdated, map[string]interface{}{
			"kind":    o.Kind,
			"name":    o.Item.Name,
			"version": o.Item.Version,
			"newer":   o.NewerVersion,
		})
	}
	return map[string]interface{}{
		"root":       report.Root,
		"duplicates": duplicates,
		"outdated":   outdated,
	}
}

const validateMarkdownTemplate = `# Content Integrity Report

Root: ` + "`{{root}}`" + `

Totals: {{errors}} errors, {{warnings}} warnings ({{fixable}} fixable)

{{#each results}}## {{name}} ({{kind}})

{{#each issues}}- **{{severity}}**{{#if fixable}} (fixable){{/if}}: {{message}}{{#if suggestion}} _{{suggestion}}_{{/if}}
{{/each}}
{{/each}}`

func validateTemplateData(report validateReport) map[string]interface{} {
	results := make([]map[string]interface{}, 0, len(report.Results))
	for _, res := range report.Results {
		if len(res.Issues) == 0 {
			continue
		}
		issues := make([]map[string]interface{}, 0, len(res.Issues))
		for _, issue := range res.Issues {
			issues = append(issues, map[string]interface{}{
				"severity":   string(issue.Severity),
				"message":    issue.Message,
				"suggestion": issue.Suggestion,
				"fixable":    issue.Fixable,
			})
		}
		results = append(results, map[string]interface{}{
			"name":   res.ContentName,
			"kind":   string(res.ContentType),
			"issues": issues,
		})
	}
	errors, warnings, fixable := report.totals()
	return map[string]interface{}{
		"root":     report.Root,
		"errors":   errors,
		"warnings": warnings,
		"fixable":  fixable,
		"results":  results,
	}
}

func renderTemplate(w io.Writer, tpl string, data map[string]interface{}) error {
	out, err := raymond.Render(tpl, data)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(w, out)
	return err
}

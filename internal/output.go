package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aquasecurity/table"
	"github.com/fatih/color"
	"github.com/spf13/afero"
)

// Used for file system mocking with Afero library. Set:
// fileSystem = afero.NewOsFs() if not unit testing (code will use real file system) OR
// fileSystem = afero.NewMemMapFs() for a mocked file system (when unit testing)
var fileSystem = afero.NewOsFs()

var cyan = color.New(color.FgCyan).SprintFunc()

// StepResult is one row of the run report: what a pipeline step produced.
type StepResult struct {
	Step          string `json:"step"`
	Entities      int    `json:"entities"`
	Relationships int    `json:"relationships"`
	Duplicates    int    `json:"duplicates"`
}

// RunReport summarizes a full ingestion run across all pipeline steps.
type RunReport struct {
	Account string       `json:"account,omitempty"`
	Scope   string       `json:"scope"`
	Steps   []StepResult `json:"steps"`
}

// Totals sums entity/relationship/duplicate counts across all steps.
func (r RunReport) Totals() (entities, relationships, duplicates int) {
	for _, s := range r.Steps {
		entities += s.Entities
		relationships += s.Relationships
		duplicates += s.Duplicates
	}
	return entities, relationships, duplicates
}

// PrintRunReport renders the run report as a table on stdout.
func PrintRunReport(report RunReport) {
	fmt.Printf("%s scope: %s\n", cyan("[run-report]"), report.Scope)

	t := table.New(os.Stdout)
	t.SetHeaders("Step", "Entities", "Relationships", "Duplicates")
	t.SetHeaderStyle(table.StyleBold)
	t.SetDividers(table.UnicodeRoundedDividers)
	t.SetAlignment(table.AlignLeft)
	for _, s := range report.Steps {
		t.AddRow(s.Step, strconv.Itoa(s.Entities), strconv.Itoa(s.Relationships), strconv.Itoa(s.Duplicates))
	}
	e, rel, d := report.Totals()
	t.AddRow("total", strconv.Itoa(e), strconv.Itoa(rel), strconv.Itoa(d))
	t.Render()
}

// WriteRunReport persists the run report as JSON under outputDirectory.
// Returns the path written.
func WriteRunReport(outputDirectory string, report RunReport, logger Logger) (string, error) {
	if outputDirectory == "" {
		return "", nil
	}
	if err := fileSystem.MkdirAll(outputDirectory, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal run report: %w", err)
	}

	outPath := filepath.Join(outputDirectory, "run-report.json")
	if err := afero.WriteFile(fileSystem, outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write run report: %w", err)
	}
	logger.InfoM(fmt.Sprintf("Output written to %s", outPath), "output")
	return outPath, nil
}

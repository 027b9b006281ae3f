// ABOUTME: Test runner for RAGAS benchmarks - executes scenarios and collects results
// ABOUTME: Ingests fixture documents, runs the ask pipeline, and scores the answers

package ragas

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"medassist/internal/app"
	"medassist/internal/config"
)

// BenchmarkRunner executes RAGAS benchmark tests against the live pipeline.
// Each scenario runs in a fresh database so results never bleed between tests.
type BenchmarkRunner struct {
	apiKey  string
	metrics *MetricsCalculator
	verbose bool
}

// NewBenchmarkRunner creates a new benchmark runner
func NewBenchmarkRunner(apiKey string, verbose bool) *BenchmarkRunner {
	return &BenchmarkRunner{
		apiKey:  apiKey,
		metrics: NewMetricsCalculator(),
		verbose: verbose,
	}
}

// RunScenario executes a single benchmark scenario
func (r *BenchmarkRunner) RunScenario(scenario TestScenario) (TestResult, error) {
	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RUNNING: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Description: %s\n\n", scenario.Description)
	}

	tmpDir, err := os.MkdirTemp("", "medassist_bench_"+scenario.ID)
	if err != nil {
		return TestResult{}, fmt.Errorf("creating scenario directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	cfg, err := config.Load()
	if err != nil {
		return TestResult{}, fmt.Errorf("loading config: %w", err)
	}
	cfg.OpenAIKey = r.apiKey
	cfg.DBPath = filepath.Join(tmpDir, "knowledge.db")

	a, err := app.New(cfg)
	if err != nil {
		return TestResult{}, fmt.Errorf("assembling pipeline: %w", err)
	}
	defer func() { _ = a.Close() }()

	ctx := context.Background()

	// Ingest fixture documents
	paths := make([]string, 0, len(scenario.Documents))
	for _, doc := range scenario.Documents {
		path := filepath.Join(tmpDir, doc.Filename)
		if err := os.WriteFile(path, []byte(doc.Text), 0o600); err != nil {
			return TestResult{}, fmt.Errorf("writing fixture %s: %w", doc.Filename, err)
		}
		paths = append(paths, path)
	}

	batch := a.Orchestrator.IngestBatch(ctx, paths)
	if len(batch.Failed) > 0 {
		return TestResult{}, fmt.Errorf("fixture ingestion failed: %s: %s",
			batch.Failed[0].Path, batch.Failed[0].Message)
	}
	if r.verbose {
		fmt.Printf("✓ Ingested %d documents (%d segments)\n\n",
			len(batch.Succeeded), batch.TotalSegments)
	}

	// Run the conversation
	var finalAnswer string
	var retrievedContext []string
	sessionID := "benchmark_" + scenario.ID

	for _, question := range scenario.Questions {
		if r.verbose {
			fmt.Printf("[Q%d] User: %s\n", question.Number, question.Text)
		}

		result, err := a.Orchestrator.Ask(ctx, sessionID, question.Text)
		if err != nil {
			return TestResult{}, fmt.Errorf("question %d failed: %w", question.Number, err)
		}

		if r.verbose {
			preview := result.Answer
			if len(preview) > 150 {
				preview = preview[:150]
			}
			fmt.Printf("[Q%d] AI: %s\n\n", question.Number, preview)
		}

		if question.Number == scenario.GroundTruth.FinalQuestion {
			finalAnswer = result.Answer
			retrievedContext = r.citedTexts(a, result.CitedSegmentIDs)
		}
	}

	result := r.metrics.EvaluateScenario(scenario, finalAnswer, retrievedContext)

	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RESULTS: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Faithfulness: %.2f\n", result.FaithfulnessScore)
		fmt.Printf("Context Recall: %.2f\n", result.ContextRecallScore)
		fmt.Printf("Overall Score: %.2f\n", result.OverallScore)
		fmt.Printf("Status: %s\n", result.Status)
		fmt.Printf("========================================\n\n")
	}

	return result, nil
}

// citedTexts resolves cited segment IDs to their stored text
func (r *BenchmarkRunner) citedTexts(a *app.App, segmentIDs []string) []string {
	texts := make([]string, 0, len(segmentIDs))
	for _, id := range segmentIDs {
		seg, err := a.Store.GetSegment(id)
		if err != nil || seg == nil {
			continue
		}
		texts = append(texts, seg.Text)
	}
	return texts
}

// RunAllScenarios executes all benchmark scenarios
func (r *BenchmarkRunner) RunAllScenarios() ([]TestResult, error) {
	scenarios := GetAllTests()
	results := make([]TestResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := r.RunScenario(scenario)
		if err != nil {
			return nil, fmt.Errorf("scenario %s failed: %w", scenario.ID, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// ExportResults exports test results to JSON
func (r *BenchmarkRunner) ExportResults(results []TestResult, outputPath string) error {
	summary := map[string]interface{}{
		"timestamp":   time.Now().Format(time.RFC3339),
		"total_tests": len(results),
		"passed":      0,
		"failed":      0,
		"results":     results,
	}

	for _, result := range results {
		if result.Status == "PASS" {
			summary["passed"] = summary["passed"].(int) + 1
		} else {
			summary["failed"] = summary["failed"].(int) + 1
		}
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	fmt.Printf("✓ Results exported to: %s\n", outputPath)
	return nil
}

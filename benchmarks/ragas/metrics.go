// ABOUTME: RAGAS metrics implementation for faithfulness and context recall
// ABOUTME: Simplified deterministic evaluation based on ground truth comparison

package ragas

import (
	"fmt"
	"strings"
)

// MetricsCalculator computes RAGAS scores for benchmark tests
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateFaithfulness computes faithfulness score (0.0-1.0)
// Faithfulness = Does the answer match retrieved context? No hallucinations?
func (m *MetricsCalculator) CalculateFaithfulness(
	answer string,
	expectedInAnswer []string,
	forbiddenInAnswer []string,
) (float64, string) {
	answerUpper := strings.ToUpper(answer)

	// Check all expected items are present
	missingItems := []string{}
	for _, expected := range expectedInAnswer {
		if !strings.Contains(answerUpper, strings.ToUpper(expected)) {
			missingItems = append(missingItems, expected)
		}
	}

	// Check no forbidden items are present
	forbiddenFound := []string{}
	for _, forbidden := range forbiddenInAnswer {
		if strings.Contains(answerUpper, strings.ToUpper(forbidden)) {
			forbiddenFound = append(forbiddenFound, forbidden)
		}
	}

	// Perfect score (1.0) requires all expected items AND no forbidden items
	if len(missingItems) == 0 && len(forbiddenFound) == 0 {
		return 1.0, "Perfect faithfulness - answer matches expected ground truth"
	}

	if len(missingItems) > 0 && len(forbiddenFound) > 0 {
		return 0.0, fmt.Sprintf(
			"Faithfulness failure - missing expected items: %v, forbidden items found: %v",
			missingItems, forbiddenFound,
		)
	}

	if len(missingItems) > 0 {
		return 0.5, fmt.Sprintf(
			"Partial faithfulness - missing expected items: %v",
			missingItems,
		)
	}

	return 0.5, fmt.Sprintf(
		"Partial faithfulness - forbidden items found: %v",
		forbiddenFound,
	)
}

// CalculateContextRecall computes context recall score (0.0-1.0)
// Context Recall = Did retrieval surface the segments needed for the answer?
func (m *MetricsCalculator) CalculateContextRecall(
	retrievedContext []string,
	expectedContextItems []string,
) (float64, string) {
	if len(expectedContextItems) == 0 {
		return 1.0, "No context retrieval required"
	}

	// Join all retrieved context for searching
	allContext := strings.ToUpper(strings.Join(retrievedContext, " "))

	// Check how many expected items were retrieved
	foundCount := 0
	missingItems := []string{}

	for _, expectedItem := range expectedContextItems {
		if strings.Contains(allContext, strings.ToUpper(expectedItem)) {
			foundCount++
		} else {
			missingItems = append(missingItems, expectedItem)
		}
	}

	// Recall is the proportion of expected items found
	recall := float64(foundCount) / float64(len(expectedContextItems))

	if recall == 1.0 {
		return 1.0, "Perfect context recall - all expected items retrieved"
	}

	return recall, fmt.Sprintf(
		"Partial context recall (%.2f) - missing items: %v",
		recall, missingItems,
	)
}

// EvaluateScenario runs full RAGAS evaluation for a scenario
func (m *MetricsCalculator) EvaluateScenario(
	scenario TestScenario,
	finalAnswer string,
	retrievedContext []string,
) TestResult {
	faithfulness, faithfulnessDetail := m.CalculateFaithfulness(
		finalAnswer,
		scenario.GroundTruth.ExpectedInAnswer,
		scenario.GroundTruth.ForbiddenInAnswer,
	)

	recall, recallDetail := m.CalculateContextRecall(
		retrievedContext,
		scenario.GroundTruth.ExpectedContextItems,
	)

	overallScore := (faithfulness + recall) / 2.0

	// Require >= 0.9 on both metrics to pass
	status := "FAIL"
	if faithfulness >= 0.9 && recall >= 0.9 {
		status = "PASS"
	}

	return TestResult{
		TestID:             scenario.ID,
		TestName:           scenario.Name,
		FaithfulnessScore:  faithfulness,
		ContextRecallScore: recall,
		OverallScore:       overallScore,
		Status:             status,
		Details: map[string]interface{}{
			"faithfulness_detail": faithfulnessDetail,
			"recall_detail":       recallDetail,
			"final_answer":        finalAnswer[:min(200, len(finalAnswer))],
			"context_items":       len(retrievedContext),
		},
	}
}

// CalculateTemporalCorrectness is a special metric for Test 2A
// Checks if the answer contains the current dose, not the superseded one
func (m *MetricsCalculator) CalculateTemporalCorrectness(
	answer string,
	currentValue string,
	supersededValue string,
) (bool, string) {
	answerUpper := strings.ToUpper(answer)
	containsCurrent := strings.Contains(answerUpper, strings.ToUpper(currentValue))
	containsSuperseded := strings.Contains(answerUpper, strings.ToUpper(supersededValue))

	if containsCurrent && !containsSuperseded {
		return true, "Answer contains only current value (temporal ordering correct)"
	}

	if containsCurrent && containsSuperseded {
		return false, "Answer contains both current and superseded values (ambiguous)"
	}

	if !containsCurrent && containsSuperseded {
		return false, "Answer contains only superseded value (temporal ordering FAILED)"
	}

	return false, "Answer contains neither value (dose not retrieved)"
}

// min returns the minimum of two integers
func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

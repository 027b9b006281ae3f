// ABOUTME: Test scenario data structures for RAGAS benchmarks
// ABOUTME: Defines fixture documents, questions, and ground truth for each test

package ragas

// TestScenario represents a complete RAGAS benchmark test
type TestScenario struct {
	ID          string
	Name        string
	Description string
	Documents   []FixtureDocument
	Questions   []BenchmarkQuestion
	GroundTruth GroundTruth
}

// FixtureDocument is a document ingested before the scenario's questions run
type FixtureDocument struct {
	Filename string
	Text     string
}

// BenchmarkQuestion represents a single question in a test conversation
type BenchmarkQuestion struct {
	Number int
	Text   string
}

// GroundTruth defines expected outcomes for RAGAS evaluation
type GroundTruth struct {
	// Final question whose answer is evaluated
	FinalQuestion     int
	ExpectedInAnswer  []string // Strings that MUST appear in the answer
	ForbiddenInAnswer []string // Strings that MUST NOT appear in the answer

	// Context retrieval expectations
	ExpectedContextItems []string // Content that should appear in cited segments
}

// TestResult represents the outcome of a benchmark test
type TestResult struct {
	TestID             string
	TestName           string
	FaithfulnessScore  float64
	ContextRecallScore float64
	OverallScore       float64
	Status             string // "PASS" or "FAIL"
	Details            map[string]interface{}
	ErrorMessage       string
}

// GetTest1A returns Test 1A: Single-Document Dosage Retrieval
func GetTest1A() TestScenario {
	return TestScenario{
		ID:          "test_1a",
		Name:        "Single-Document Dosage Retrieval",
		Description: "Tests that a direct factual question is answered from one visit note",
		Documents: []FixtureDocument{
			{
				Filename: "visit_note.txt",
				Text: `Patient Visit Note - 2026-01-12

Chief complaint: elevated blood pressure at home readings.
Assessment: Stage 1 hypertension.
Plan: Start lisinopril 10mg once daily. Follow up in 4 weeks
with repeat blood pressure log. Patient counseled on low-sodium diet.`,
			},
		},
		Questions: []BenchmarkQuestion{
			{Number: 1, Text: "What medication was prescribed for the blood pressure, and at what dose?"},
		},
		GroundTruth: GroundTruth{
			FinalQuestion:    1,
			ExpectedInAnswer: []string{"lisinopril", "10mg"},
			ExpectedContextItems: []string{
				"lisinopril 10mg",
			},
		},
	}
}

// GetTest2A returns Test 2A: Superseded Prescription scenario
func GetTest2A() TestScenario {
	return TestScenario{
		ID:          "test_2a",
		Name:        "Superseded Prescription (Temporal Conflict)",
		Description: "Tests that the answer reflects the most recent dose when an older note disagrees",
		Documents: []FixtureDocument{
			{
				Filename: "visit_january.txt",
				Text: `Visit Note - 2026-01-05

Assessment: Type 2 diabetes, newly diagnosed.
Plan: Start metformin 500mg twice daily with meals.`,
			},
			{
				Filename: "visit_march.txt",
				Text: `Visit Note - 2026-03-02

Assessment: Type 2 diabetes, HbA1c still above target.
Plan: The previous 500mg metformin dose is discontinued as of today.
Current regimen: metformin increased to 1000mg twice daily. Recheck
HbA1c in three months.`,
			},
		},
		Questions: []BenchmarkQuestion{
			{Number: 1, Text: "What is the patient's current metformin dose?"},
		},
		GroundTruth: GroundTruth{
			FinalQuestion:    1,
			ExpectedInAnswer: []string{"1000mg"},
			ExpectedContextItems: []string{
				"1000mg",
			},
		},
	}
}

// GetTest3A returns Test 3A: Pronoun Follow-Up scenario
func GetTest3A() TestScenario {
	return TestScenario{
		ID:          "test_3a",
		Name:        "Pronoun Follow-Up (Query Rewrite)",
		Description: "Tests that a follow-up question using a pronoun still retrieves the right segments",
		Documents: []FixtureDocument{
			{
				Filename: "discharge_summary.txt",
				Text: `Discharge Summary - 2026-02-20

Hospital course: admitted for community-acquired pneumonia.
Discharge medications: amoxicillin 875mg twice daily for 7 days.
Return precautions discussed. Follow up with primary care in one week.`,
			},
		},
		Questions: []BenchmarkQuestion{
			{Number: 1, Text: "What antibiotic was the patient discharged on?"},
			{Number: 2, Text: "What is its dosage?"},
		},
		GroundTruth: GroundTruth{
			FinalQuestion:    2,
			ExpectedInAnswer: []string{"875mg"},
			ExpectedContextItems: []string{
				"amoxicillin 875mg",
			},
		},
	}
}

// GetTest4A returns Test 4A: Cross-Document Allergy Check
func GetTest4A() TestScenario {
	return TestScenario{
		ID:          "test_4a",
		Name:        "Cross-Document Allergy Check",
		Description: "Tests retrieval across two documents to connect a prescription with an allergy list",
		Documents: []FixtureDocument{
			{
				Filename: "allergy_list.txt",
				Text: `Allergy List - updated 2026-01-03

1. Penicillin - hives and facial swelling, documented 2019.
2. Sulfa drugs - rash, documented 2021.
No known food allergies.`,
			},
			{
				Filename: "urgent_care_note.txt",
				Text: `Urgent Care Note - 2026-03-15

Assessment: acute otitis media, left ear.
Plan: prescribed amoxicillin 500mg three times daily for 10 days.`,
			},
		},
		Questions: []BenchmarkQuestion{
			{Number: 1, Text: "Is the patient allergic to anything related to the antibiotic they were just prescribed?"},
		},
		GroundTruth: GroundTruth{
			FinalQuestion:    1,
			ExpectedInAnswer: []string{"penicillin"},
			ExpectedContextItems: []string{
				"Penicillin",
				"amoxicillin",
			},
		},
	}
}

// GetTest5A returns Test 5A: Ungrounded Question scenario
func GetTest5A() TestScenario {
	return TestScenario{
		ID:          "test_5a",
		Name:        "Ungrounded Question (Refusal)",
		Description: "Tests that a question the documents cannot answer gets the refusal answer, not a guess",
		Documents: []FixtureDocument{
			{
				Filename: "visit_note.txt",
				Text: `Visit Note - 2026-01-12

Chief complaint: seasonal allergies.
Plan: loratadine 10mg daily as needed during pollen season.`,
			},
		},
		Questions: []BenchmarkQuestion{
			{Number: 1, Text: "What is the patient's blood type?"},
		},
		GroundTruth: GroundTruth{
			FinalQuestion:    1,
			ExpectedInAnswer: []string{"couldn't find relevant information"},
			ForbiddenInAnswer: []string{
				"A positive", "A negative",
				"B positive", "B negative",
				"O positive", "O negative",
				"AB positive", "AB negative",
			},
			// Refusals cite nothing, so no context expectations
			ExpectedContextItems: []string{},
		},
	}
}

// GetAllTests returns all RAGAS benchmark tests
func GetAllTests() []TestScenario {
	return []TestScenario{
		GetTest1A(),
		GetTest2A(),
		GetTest3A(),
		GetTest4A(),
		GetTest5A(),
	}
}

// GetTest returns the scenario with the given short ID (e.g. "1a"), or false
// if no such scenario exists.
func GetTest(id string) (TestScenario, bool) {
	for _, scenario := range GetAllTests() {
		if scenario.ID == "test_"+id {
			return scenario, true
		}
	}
	return TestScenario{}, false
}

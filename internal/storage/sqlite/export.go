// ABOUTME: Export functionality for knowledge base data
// ABOUTME: Supports YAML and Markdown export formats
package sqlite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ExportData represents the complete exportable data structure
type ExportData struct {
	Version    string           `yaml:"version" json:"version"`
	ExportedAt string           `yaml:"exported_at" json:"exported_at"`
	Tool       string           `yaml:"tool" json:"tool"`
	Documents  []ExportDocument `yaml:"documents,omitempty" json:"documents,omitempty"`
	Embeddings string           `yaml:"embeddings_file,omitempty" json:"embeddings_file,omitempty"`
}

// ExportDocument represents one ingested document for export
type ExportDocument struct {
	DocumentID string          `yaml:"document_id" json:"document_id"`
	Filename   string          `yaml:"filename" json:"filename"`
	Format     string          `yaml:"format" json:"format"`
	IngestedAt string          `yaml:"ingested_at" json:"ingested_at"`
	Segments   []ExportSegment `yaml:"segments" json:"segments"`
}

// ExportSegment represents a segment for export
type ExportSegment struct {
	SegmentID string `yaml:"segment_id" json:"segment_id"`
	Position  int    `yaml:"position" json:"position"`
	Start     int    `yaml:"start" json:"start"`
	End       int    `yaml:"end" json:"end"`
	Text      string `yaml:"text" json:"text"`
}

// Export exports all documents and segments from the store
func (s *Store) Export() (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "medassist",
	}

	docs, err := s.ListDocuments()
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	for _, doc := range docs {
		segments, err := s.SegmentsByDocument(doc.DocumentID)
		if err != nil {
			return nil, fmt.Errorf("loading segments for %s: %w", doc.DocumentID, err)
		}

		exportDoc := ExportDocument{
			DocumentID: doc.DocumentID,
			Filename:   doc.Filename,
			Format:     doc.Format,
			IngestedAt: doc.IngestedAt.Format(time.RFC3339),
			Segments:   make([]ExportSegment, 0, len(segments)),
		}

		for _, seg := range segments {
			exportDoc.Segments = append(exportDoc.Segments, ExportSegment{
				SegmentID: seg.SegmentID,
				Position:  seg.PositionIndex,
				Start:     seg.CharRange.Start,
				End:       seg.CharRange.End,
				Text:      seg.Text,
			})
		}

		data.Documents = append(data.Documents, exportDoc)
	}

	return data, nil
}

// ExportToYAML exports data to a YAML file
func (s *Store) ExportToYAML(outputPath string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}

// ExportToMarkdown exports data to a Markdown file
func (s *Store) ExportToMarkdown(outputPath string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Write header
	_, _ = fmt.Fprintf(file, "# Knowledge Base Export - %s\n\n", time.Now().Format("2006-01-02"))
	_, _ = fmt.Fprintf(file, "Generated: %s\n\n", data.ExportedAt)

	if len(data.Documents) == 0 {
		_, _ = fmt.Fprintln(file, "*No documents ingested.*")
		return nil
	}

	// Write document inventory
	_, _ = fmt.Fprintln(file, "## Documents")
	_, _ = fmt.Fprintln(file)
	_, _ = fmt.Fprintln(file, "| Document ID | Filename | Format | Segments | Ingested |")
	_, _ = fmt.Fprintln(file, "|-------------|----------|--------|----------|----------|")
	for _, doc := range data.Documents {
		_, _ = fmt.Fprintf(file, "| %s | %s | %s | %d | %s |\n",
			doc.DocumentID, doc.Filename, doc.Format, len(doc.Segments), doc.IngestedAt)
	}
	_, _ = fmt.Fprintln(file)

	// Write content per document
	for _, doc := range data.Documents {
		_, _ = fmt.Fprintf(file, "## %s (%s)\n\n", doc.Filename, doc.DocumentID)
		for _, seg := range doc.Segments {
			_, _ = fmt.Fprintf(file, "### Segment %d\n\n", seg.Position)
			_, _ = fmt.Fprintf(file, "%s\n\n", seg.Text)
		}
		_, _ = fmt.Fprintln(file, "---")
		_, _ = fmt.Fprintln(file)
	}

	return nil
}

// ExportEmbeddingsToJSON exports embeddings to a separate JSON file
func (s *Store) ExportEmbeddingsToJSON(outputPath string) error {
	rows, err := s.db.Query(`
		SELECT segment_id, document_id, vector, created_at
		FROM embeddings
		ORDER BY segment_id
	`)
	if err != nil {
		return fmt.Errorf("failed to query embeddings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	type EmbeddingExport struct {
		SegmentID  string    `json:"segment_id"`
		DocumentID string    `json:"document_id"`
		Vector     []float64 `json:"vector"`
		CreatedAt  string    `json:"created_at"`
	}

	var embeddings []EmbeddingExport
	for rows.Next() {
		var (
			emb       EmbeddingExport
			blob      []byte
			createdAt time.Time
		)
		if err := rows.Scan(&emb.SegmentID, &emb.DocumentID, &blob, &createdAt); err != nil {
			continue
		}
		emb.Vector = blobToVector(blob)
		emb.CreatedAt = createdAt.Format(time.RFC3339)
		embeddings = append(embeddings, emb)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(embeddings); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

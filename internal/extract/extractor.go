package extract

import (
	"fmt"

	"github.com/meescheck/meescheck/internal/extract/adapters"
	"github.com/meescheck/meescheck/internal/model"
	"github.com/meescheck/meescheck/internal/schema"
)

// Extractor turns an uploaded certificate document into a partial answer
// set with a confidence tier. It is a pure transform from bytes to an
// ExtractionResult: no shared state is touched, and malformed input is
// reported inside the result rather than returned as an error.
type Extractor struct {
	registry *adapters.Registry
}

// NewExtractor creates a new certificate extractor.
func NewExtractor() *Extractor {
	return &Extractor{
		registry: adapters.NewRegistry(),
	}
}

// Extract analyses one certificate document. declaredType may be empty
// when the caller has no declared content type (e.g. local files).
func (e *Extractor) Extract(data []byte, declaredType string) model.ExtractionResult {
	if len(data) == 0 {
		return failure("the uploaded file is empty")
	}

	format, sniffed := SniffFormat(data, declaredType)
	if format == FormatUnknown {
		return failure(fmt.Sprintf("unrecognised document format %q - upload the certificate as HTML or plain text, or continue with manual entry", sniffed))
	}

	adapter := e.registry.Find(string(format))
	text, err := adapter.Text(data)
	if err != nil {
		// Malformed-but-readable documents degrade, they never throw.
		return failure(fmt.Sprintf("could not read the document: %v", err))
	}

	fields := model.NewAnswerSet()
	ambiguous := make(map[string]bool)
	var warnings []string

	for _, s := range strategies {
		m, found := s.locate(text)
		if !found {
			warnings = append(warnings, fmt.Sprintf("could not locate %s in the document", schema.Fields[s.field].Label))
			continue
		}
		fields.Set(s.field, m.value)
		if m.ambiguous {
			ambiguous[s.field] = true
			warnings = append(warnings, fmt.Sprintf("found more than one candidate for %s; using %q", schema.Fields[s.field].Label, m.value))
		}
	}

	return model.ExtractionResult{
		Success:    true,
		Fields:     fields,
		Confidence: confidenceFor(fields, ambiguous),
		Warnings:   warnings,
	}
}

// confidenceFor applies the confidence policy: high iff every basics-step
// field was located unambiguously and no details-step field is missing;
// medium iff the basics fields were all located; low otherwise.
func confidenceFor(fields model.AnswerSet, ambiguous map[string]bool) model.Confidence {
	for _, name := range schema.PrimaryExtractionFields {
		if _, ok := fields.Get(name); !ok {
			return model.ConfidenceLow
		}
	}

	clean := true
	for _, name := range schema.PrimaryExtractionFields {
		if ambiguous[name] {
			clean = false
		}
	}
	for _, name := range schema.SecondaryExtractionFields {
		if _, ok := fields.Get(name); !ok {
			clean = false
		} else if ambiguous[name] {
			clean = false
		}
	}

	if clean {
		return model.ConfidenceHigh
	}
	return model.ConfidenceMedium
}

func failure(reason string) model.ExtractionResult {
	return model.ExtractionResult{
		Success:    false,
		Fields:     model.NewAnswerSet(),
		Confidence: model.ConfidenceLow,
		Warnings:   []string{reason},
	}
}

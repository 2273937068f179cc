package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
)

// generatedPayload is the document shape the model is asked to return
type generatedPayload struct {
	LabelData      *domain.LabelData          `json:"labelData"`
	MarketData     *domain.MarketSpecificData `json:"marketSpecificData"`
	TranslatedData *domain.LabelData          `json:"translatedData"`
}

// parseModelOutput extracts the label payload from raw model text. Models
// occasionally wrap the JSON in prose, so parsing starts at the first '{'
// and ends at the last '}'. A bare LabelData object is accepted for
// backward compatibility with the older response format.
func parseModelOutput(raw string) (*generatedPayload, error) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}

	doc := raw[start : end+1]

	var payload generatedPayload
	if err := json.Unmarshal([]byte(doc), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse model output: %w", err)
	}

	if payload.LabelData == nil {
		// Older format: the object is the label data itself
		var data domain.LabelData
		if err := json.Unmarshal([]byte(doc), &data); err != nil {
			return nil, fmt.Errorf("failed to parse model output: %w", err)
		}
		if data.LegalLabel.Ingredients == "" {
			return nil, fmt.Errorf("model output is missing label content")
		}
		payload.LabelData = &data
	}

	if payload.LabelData.LegalLabel.Ingredients == "" {
		return nil, fmt.Errorf("model output is missing label content")
	}

	return &payload, nil
}

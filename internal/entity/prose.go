// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entity

import (
	"fmt"

	"github.com/jdkato/prose/v2"
)

// ProseRecognizer recognizes entities with the prose NER model.
type ProseRecognizer struct{}

// Entities implements Recognizer.
func (ProseRecognizer) Entities(text string) ([]Entity, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("recognizing entities: %w", err)
	}
	ents := doc.Entities()
	out := make([]Entity, len(ents))
	for i, e := range ents {
		out[i] = Entity{Text: e.Text, Label: e.Label}
	}
	return out, nil
}

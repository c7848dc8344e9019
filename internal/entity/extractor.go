package entity

import (
	"context"
	"fmt"
	"strings"

	"github.com/lawbrief/lawbrief/internal/llm"
	"github.com/lawbrief/lawbrief/internal/model"
)

// labelMap normalizes tagger labels (spaCy-style tags and their lowercase
// names) to the allow-listed entity labels. Anything not in this map is
// dropped.
var labelMap = map[string]model.EntityLabel{
	"ORG":          model.EntityOrganization,
	"organization": model.EntityOrganization,
	"PERSON":       model.EntityPerson,
	"person":       model.EntityPerson,
	"DATE":         model.EntityDate,
	"date":         model.EntityDate,
	"MONEY":        model.EntityMoney,
	"money":        model.EntityMoney,
	"GPE":          model.EntityLocation,
	"LOC":          model.EntityLocation,
	"location":     model.EntityLocation,
	"TIME":         model.EntityTime,
	"time":         model.EntityTime,
	"PERCENT":      model.EntityPercent,
	"percent":      model.EntityPercent,
	"QUANTITY":     model.EntityQuantity,
	"quantity":     model.EntityQuantity,
	"LAW":          model.EntityLaw,
	"law":          model.EntityLaw,
}

// Extractor pulls typed entity spans from clause text via the injected
// tagging capability.
type Extractor struct {
	tagger llm.Tagger
}

// NewExtractor creates a new entity extractor.
func NewExtractor(tagger llm.Tagger) *Extractor {
	return &Extractor{tagger: tagger}
}

// Extract tags the text and keeps the allow-listed entity types, in tagger
// order. Repeated identical entities at different offsets stay distinct.
func (e *Extractor) Extract(ctx context.Context, text string) ([]model.Entity, error) {
	if e.tagger == nil {
		return nil, nil
	}

	spans, err := e.tagger.Tag(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("tag entities: %w", err)
	}

	var entities []model.Entity
	for _, span := range spans {
		label, ok := labelMap[span.Label]
		if !ok {
			label, ok = labelMap[strings.ToLower(span.Label)]
		}
		if !ok {
			continue
		}
		entities = append(entities, model.Entity{
			Text:  span.Text,
			Label: label,
			Start: span.Start,
			End:   span.End,
		})
	}

	return entities, nil
}

package compiler

import (
	"fmt"

	"github.com/aretw0/bevtree/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parser is responsible for converting raw bytes into a tree definition.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes a YAML or JSON document into a Node.
// Scalars are weakly typed ("3" is accepted as a loop count); unknown keys are rejected.
func (p *Parser) Parse(data []byte) (*domain.Node, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse tree: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidDefinition)
	}

	var node domain.Node
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &node,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
	}
	return &node, nil
}

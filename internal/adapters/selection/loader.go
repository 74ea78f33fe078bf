package selection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/prun-pricer/internal/application/common"
	"github.com/andrescamacho/prun-pricer/internal/domain/catalog"
	"github.com/andrescamacho/prun-pricer/internal/domain/pricing"
)

// Problem is one selection entry that does not match the catalog
type Problem struct {
	Material    string
	Choice      string
	Detail      string
	Suggestions []string
}

func (p Problem) String() string {
	s := fmt.Sprintf("%s: %q %s", p.Material, p.Choice, p.Detail)
	if len(p.Suggestions) > 0 {
		s += fmt.Sprintf(" (did you mean %s?)", strings.Join(p.Suggestions, ", "))
	}
	return s
}

// ValidationError lists every problem found in a selection file
type ValidationError struct {
	Path     string
	Problems []Problem
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		lines = append(lines, "  "+p.String())
	}
	return fmt.Sprintf("selection %s has %d problem(s):\n%s", e.Path, len(e.Problems), strings.Join(lines, "\n"))
}

// Loader reads selection files in JSON or YAML
type Loader struct {
	schema *jsonschema.Schema
}

var _ common.SelectionLoader = (*Loader)(nil)

// NewLoader compiles the selection schema
func NewLoader() (*Loader, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile selection schema: %w", err)
	}
	return &Loader{schema: schema}, nil
}

// Load decodes, schema-validates and cross-checks a selection. Materials
// missing from the catalog are left for source resolution to report.
func (l *Loader) Load(ctx context.Context, path string, c *catalog.Catalog) (pricing.Selection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read selection file: %w", err)
	}

	doc, err := decode(path, raw)
	if err != nil {
		return nil, err
	}
	if err := l.schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("selection %s does not match schema: %w", path, err)
	}

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("selection %s must be a mapping of material tickers", path)
	}
	sel := toSelection(obj)
	if problems := Check(c, sel); len(problems) > 0 {
		return nil, &ValidationError{Path: path, Problems: problems}
	}

	common.LoggerFromContext(ctx).Log("DEBUG", "selection loaded", map[string]interface{}{
		"path":    path,
		"entries": len(sel),
	})
	return sel, nil
}

func decode(path string, raw []byte) (interface{}, error) {
	var doc interface{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse selection YAML: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse selection JSON: %w", err)
		}
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return doc, nil
}

func toSelection(doc map[string]interface{}) pricing.Selection {
	sel := make(pricing.Selection, len(doc))
	for ticker, v := range doc {
		choice, _ := v.(string)
		sel[ticker] = choice
	}
	return sel
}

// Check verifies that every non-empty choice names a recipe producing the
// material or a planet yielding it
func Check(c *catalog.Catalog, sel pricing.Selection) []Problem {
	tickers := make([]string, 0, len(sel))
	for t := range sel {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	var problems []Problem
	for _, ticker := range tickers {
		choice := sel[ticker]
		material, ok := c.Material(ticker)
		if !ok || choice == "" {
			continue
		}

		options := append(append([]string{}, material.Recipes...), material.Planets...)
		if catalog.IsRecipeName(choice) {
			recipe, ok := c.Recipe(choice)
			switch {
			case !ok:
				problems = append(problems, Problem{Material: ticker, Choice: choice, Detail: "is not a known recipe",
					Suggestions: Suggest(choice, options)})
			case recipe.OutputAmount(ticker) <= 0:
				problems = append(problems, Problem{Material: ticker, Choice: choice, Detail: "does not produce " + ticker,
					Suggestions: Suggest(choice, material.Recipes)})
			}
			continue
		}

		if _, ok := c.Planet(choice); !ok {
			problems = append(problems, Problem{Material: ticker, Choice: choice, Detail: "is not a known planet",
				Suggestions: Suggest(choice, options)})
			continue
		}
		if !contains(material.Planets, choice) {
			problems = append(problems, Problem{Material: ticker, Choice: choice, Detail: "does not yield " + ticker,
				Suggestions: Suggest(choice, material.Planets)})
		}
	}
	return problems
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

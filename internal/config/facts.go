package config

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"sort"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Fact is a custom Facter fact exported to puppet apply.
type Fact struct {
	Name  string `yaml:"name" toml:"name"`
	Value string `yaml:"value" toml:"value"`
}

// Facts keeps custom facts in the order they were declared.
type Facts []Fact

// Names returns the fact names in order.
func (f Facts) Names() []string {
	names := make([]string, len(f))
	for i, fact := range f {
		names[i] = fact.Name
	}
	return names
}

var factNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate rejects names that cannot be exported as FACTER_<name>.
func (f Facts) Validate() error {
	for _, fact := range f {
		if !factNamePattern.MatchString(fact.Name) {
			return fmt.Errorf("custom fact %q: name must match %s", fact.Name, factNamePattern)
		}
	}
	return nil
}

// UnmarshalYAML decodes a mapping node, keeping the document order.
func (f *Facts) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!null" {
		*f = nil
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: custom_facts must be a mapping", node.Line)
	}

	facts := make(Facts, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: custom fact %q must be a scalar", value.Line, key.Value)
		}
		facts = append(facts, Fact{Name: key.Value, Value: value.Value})
	}
	*f = facts
	return nil
}

// UnmarshalTOML decodes a table. Tables carry no order, so facts are sorted
// here and put back in document order by orderTOMLFacts.
func (f *Facts) UnmarshalTOML(data any) error {
	table, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("custom_facts must be a table, got %T", data)
	}
	*f = sortedFacts(table)
	return nil
}

var _ toml.Unmarshaler = (*Facts)(nil)

// orderTOMLFacts reorders facts to match the key order recorded in md.
func orderTOMLFacts(facts Facts, md toml.MetaData, prefix []string) Facts {
	if len(facts) == 0 {
		return facts
	}
	depth := len(prefix) + 2

	var order []string
	for _, key := range md.Keys() {
		if len(key) != depth || key[depth-2] != customFactsKey {
			continue
		}
		if !slices.Equal([]string(key[:len(prefix)]), prefix) {
			continue
		}
		order = append(order, key[depth-1])
	}

	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[name] = i
	}
	out := append(Facts(nil), facts...)
	sort.SliceStable(out, func(i, j int) bool {
		ri, iok := rank[out[i].Name]
		rj, jok := rank[out[j].Name]
		if iok && jok {
			return ri < rj
		}
		return iok && !jok
	})
	return out
}

// sortedFacts converts an unordered mapping into facts sorted by name.
func sortedFacts[V any](m map[string]V) Facts {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	facts := make(Facts, 0, len(names))
	for _, name := range names {
		facts = append(facts, Fact{Name: name, Value: fmt.Sprint(m[name])})
	}
	return facts
}

const customFactsKey = "custom_facts"

var factsType = reflect.TypeOf(Facts{})

// factsDecodeHook lets host-supplied mappings carry custom_facts either as a
// mapping (ordered by name) or as a list of {name, value} pairs (ordered as given).
func factsDecodeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != factsType {
		return data, nil
	}

	switch v := data.(type) {
	case nil:
		return Facts(nil), nil
	case Facts:
		return v, nil
	case map[string]any:
		return sortedFacts(v), nil
	case map[string]string:
		return sortedFacts(v), nil
	case []any:
		facts := make(Facts, 0, len(v))
		for i, item := range v {
			pair, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("custom_facts[%d]: expected a {name, value} mapping, got %T", i, item)
			}
			name, ok := pair["name"].(string)
			if !ok || name == "" {
				return nil, fmt.Errorf("custom_facts[%d]: name is required", i)
			}
			facts = append(facts, Fact{Name: name, Value: fmt.Sprint(pair["value"])})
		}
		return facts, nil
	default:
		return data, nil
	}
}

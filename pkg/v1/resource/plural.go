package resource

import (
	"fmt"
	"unicode/utf8"

	pluralize "github.com/gertd/go-pluralize"
)

// NameOverrides maps a collection name to an explicit singular name, for
// plurals the default rule gets wrong (e.g., "policies" -> "policy").
type NameOverrides map[string]string

// PluralMapping maps each collection (plural) name to its singular resource name.
type PluralMapping map[string]string

// BuildPluralMappings creates the plural to singular mapping for every collection
// in the catalog.
//
// An override wins when present. Otherwise the last character is stripped
// ("routers" -> "router"). The rule is purely syntactic: irregular plurals need
// an override or they come out wrong ("policies" -> "policie").
func BuildPluralMappings(overrides NameOverrides, catalog *Catalog) PluralMapping {
	mapping := make(PluralMapping, catalog.Len())
	for _, collection := range catalog.Collections() {
		if singular, ok := overrides[collection]; ok {
			mapping[collection] = singular
			continue
		}
		mapping[collection] = stripLast(collection)
	}
	return mapping
}

func stripLast(s string) string {
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// PluralWarning flags a derived singular name that disagrees with English
// singularization.
type PluralWarning struct {
	Collection string
	Derived    string
	Suggested  string
}

func (w PluralWarning) String() string {
	return fmt.Sprintf("%s -> %s (expected %s)", w.Collection, w.Derived, w.Suggested)
}

var inflector = pluralize.NewClient()

// CheckPluralMappings reports mapping entries that were derived by the default
// rule (no override) and do not match the English singular of the collection.
// The mapping is not modified. Results follow the order of collections.
func CheckPluralMappings(mapping PluralMapping, overrides NameOverrides, collections []string) []PluralWarning {
	var warnings []PluralWarning
	for _, collection := range collections {
		if _, ok := overrides[collection]; ok {
			continue
		}
		derived, ok := mapping[collection]
		if !ok {
			continue
		}
		if suggested := inflector.Singular(collection); suggested != derived {
			warnings = append(warnings, PluralWarning{
				Collection: collection,
				Derived:    derived,
				Suggested:  suggested,
			})
		}
	}
	return warnings
}

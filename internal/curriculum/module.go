package curriculum

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Module is one of the fixed computer science subject areas a learner is
// scored on.
type Module string

const (
	DataStructures   Module = "data_structures"
	Algorithms       Module = "algorithms"
	OperatingSystems Module = "operating_systems"
	DBMS             Module = "dbms"
	ComputerNetworks Module = "computer_networks"
)

// AllModules returns every module in canonical order. Tie-breaks and
// per-module output ordering follow this order.
func AllModules() []Module {
	return []Module{
		DataStructures,
		Algorithms,
		OperatingSystems,
		DBMS,
		ComputerNetworks,
	}
}

// Valid reports whether m is one of the canonical modules.
func (m Module) Valid() bool {
	for _, c := range AllModules() {
		if c == m {
			return true
		}
	}
	return false
}

// Spaced returns the module key with underscores replaced by spaces.
func (m Module) Spaced() string {
	return strings.ReplaceAll(string(m), "_", " ")
}

// DisplayName returns the human-readable module name: underscores become
// spaces and each word is title-cased ("dbms" renders as "Dbms").
func DisplayName(m Module) string {
	return cases.Title(language.English).String(m.Spaced())
}

// ParseModule accepts either the raw key ("operating_systems") or a spaced,
// any-case form ("Operating Systems").
func ParseModule(s string) (Module, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	m := Module(key)
	if !m.Valid() {
		return "", fmt.Errorf("unknown module %q", s)
	}
	return m, nil
}

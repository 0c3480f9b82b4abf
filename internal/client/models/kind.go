package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies a record collection of the school API.
type Kind string

const (
	KindEmployee     Kind = "employees"
	KindStudent      Kind = "students"
	KindClass        Kind = "classes"
	KindSection      Kind = "sections"
	KindHoliday      Kind = "holidays"
	KindFeeStructure Kind = "fee-structures"
)

// Kinds lists every collection in display order.
func Kinds() []Kind {
	return []Kind{KindEmployee, KindStudent, KindClass, KindSection, KindHoliday, KindFeeStructure}
}

var kindAliases = map[string]Kind{
	"employee":      KindEmployee,
	"staff":         KindEmployee,
	"student":       KindStudent,
	"class":         KindClass,
	"section":       KindSection,
	"holiday":       KindHoliday,
	"fee":           KindFeeStructure,
	"fees":          KindFeeStructure,
	"fee-structure": KindFeeStructure,
	"feestructure":  KindFeeStructure,
	"feestructures": KindFeeStructure,
}

// ParseKind accepts the collection name or a singular alias.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	if k, ok := kindAliases[s]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// Path is the REST collection path of the kind.
func (k Kind) Path() string {
	return "/api/" + string(k)
}

// ID is a record identifier. The API sends it as a string or as a number.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s", string(b))
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("invalid id %s", string(b))
	}
	*id = ID(n.String())
	return nil
}

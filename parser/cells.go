package parser

import "strings"

// cellKind discriminates what a person-table cell carries. The SRPO marks
// cells with structural class names rather than stable IDs, so each cell's
// kind is resolved once from its class attribute and then dispatched on.
type cellKind int

const (
	cellUnknown cellKind = iota
	cellIsCurrent
	cellName
	cellLocality
	cellIsRegistered
)

// cellClasses maps the SRPO's structural class markers to cell kinds. The
// "basic" variants appear in facilitator tables, the "participants" variants
// in participant tables; the registered-status column only exists for
// participants.
var cellClasses = map[string]cellKind{
	"basicIsCurrentCol":                cellIsCurrent,
	"participantsIsCurrentCol":         cellIsCurrent,
	"basicNameCol":                     cellName,
	"participantsNameCol":              cellName,
	"basicLocalityCol":                 cellLocality,
	"participantsLocalityCol":          cellLocality,
	"participantsIsRegisteredBahaiCol": cellIsRegistered,
}

// classifyCell resolves a cell's kind from its class attribute. Cells whose
// classes carry no known marker classify as cellUnknown and are skipped.
func classifyCell(classAttr string) cellKind {
	for _, class := range strings.Fields(classAttr) {
		if kind, ok := cellClasses[class]; ok {
			return kind
		}
	}
	return cellUnknown
}

package catalog

import (
	"strings"

	"github.com/happy6team/ooh-marketing-sales/core"
)

// CompositeText builds the text embedded for a media record: location,
// target audience, characteristics and past campaigns, one per line.
func CompositeText(record *core.MediaRecord) string {
	var b strings.Builder
	b.WriteString("위치: ")
	b.WriteString(record.Location)
	b.WriteString("\n타겟: ")
	b.WriteString(record.PopulationTarget)
	b.WriteString("\n매체 특징: ")
	b.WriteString(record.MediaCharacteristics)
	b.WriteString("\n집행 사례: ")
	b.WriteString(record.CaseExamples)
	return b.String()
}

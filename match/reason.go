package match

import (
	"fmt"
	"strings"

	"github.com/happy6team/ooh-marketing-sales/core"
)

// Query is the catalog query for a brand.
func Query(brand core.BrandIssueRecord) string {
	return strings.TrimSpace(brand.Issue) + " / " + strings.TrimSpace(brand.Description)
}

// Reason renders the match reason for a medium.
func Reason(m *core.MediaRecord) string {
	return fmt.Sprintf("%s에 위치하며 %s을 타겟으로 하며, '%s' 특성을 가짐. '%s' 등 유사 캠페인 존재.",
		m.Location, m.PopulationTarget, m.MediaCharacteristics, m.CaseExamples)
}

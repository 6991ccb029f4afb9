package match

import (
	"fmt"

	"github.com/happy6team/ooh-marketing-sales/core"
)

const scriptPromptTemplate = `브랜드명: %[1]s
최근 마케팅 이슈: %[2]s
브랜드 설명: %[3]s
추천 매체: %[4]s (%[5]s) - %[6]s

위 정보를 바탕으로, %[1]s의 담당자에게 전화할 때 사용할 영업 스크립트를 3-5줄로 작성해주세요.
스크립트는 다음을 포함해야 합니다:
- 인사 및 자기소개 (옥외광고 매체사 <%[7]s>의 %[8]s 매니저)
- 브랜드의 최근 이슈 언급
- 추천 매체(%[4]s)가 왜 적합한지 설명
- 미팅 제안

실제 영업 전화 통화처럼 정중하지만 자연스럽게 작성하고, 스크립트 본문만 출력하세요.`

const reasonsPromptTemplate = `브랜드명: %[1]s
최근 마케팅 이슈: %[2]s
브랜드 설명: %[3]s
추천 매체: %[4]s (%[5]s)
매체 유형: %[6]s
매체 특징: %[7]s
집행 사례: %[8]s

%[4]s의 특징과 이 매체가 %[1]s에 왜 적합한지 3가지 이유를 작성해주세요.
각 이유는 한 문장으로, 한 줄에 하나씩, 번호를 매겨 정확히 3줄만 출력하세요.
다른 설명은 쓰지 마세요.`

func buildScriptPrompt(brand core.BrandIssueRecord, m *core.MediaRecord, reason, company, owner string) string {
	return fmt.Sprintf(scriptPromptTemplate,
		brand.Name, brand.Issue, brand.Description, m.Name, m.Location, reason, company, owner)
}

func buildReasonsPrompt(brand core.BrandIssueRecord, m *core.MediaRecord) string {
	return fmt.Sprintf(reasonsPromptTemplate,
		brand.Name, brand.Issue, brand.Description, m.Name, m.Location,
		m.MediaType, m.MediaCharacteristics, m.CaseExamples)
}

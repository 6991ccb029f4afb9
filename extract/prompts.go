package extract

import (
	"fmt"

	"github.com/happy6team/ooh-marketing-sales/core"
)

const extractionPromptTemplate = `당신은 전문 브랜드 분석가입니다.

다음 웹 검색 결과에서 한국 내에서 발생한 %[1]s 분야의 최신(%[2]s) 마케팅 이슈가 있는 브랜드를 최대 %[3]d개까지 추출해주세요.

반드시 아래와 같은 구체적인 한국 내 마케팅 이슈가 있는 브랜드만 추출하세요:
- 한국에서의 신제품 출시
- 앰배서더 또는 광고 모델 발표
- 한국 내 팝업스토어 오픈 (서울, 부산 등 국내 도시에서 진행)
- 브랜드/인물과의 콜라보레이션
- 한국 소비자를 대상으로 한 마케팅 캠페인

중요: 실제로 제품을 생산하거나 판매하는 정식 %[1]s 브랜드만 포함하세요.
게임 캐릭터, 연예인, 아이돌, 가상 인물, 행사장이나 팝업스토어 주최자는 제외하세요.

반드시 다음 조건을 준수하세요:
1. 검색 결과에서 확인된 이슈만 포함하세요.
2. 각 브랜드마다 최대한 서로 다른 날짜의 이슈를 찾으세요.
3. 날짜를 찾을 수 없는 경우 '%[4]s'이라고 표시하고, 절대로 임의의 날짜를 생성하지 마세요.
4. 없는 내용은 생성하지 마세요.
5. 최대한 다양한 유형의 이슈(팝업스토어, 콜라보레이션, 신제품 출시 등)를 포함하세요.

다음 형식의 JSON 배열만 반환하세요. 설명이나 코드 블록은 쓰지 마세요:
[
  {
    "name": "브랜드명",
    "issue": "이슈 발생 날짜: 한국 내 브랜드 이슈 내용 (예: '2025년 5월 1일: 서울 가로수길에 팝업스토어 오픈', '%[4]s: 새 앰배서더 발표')",
    "description": "브랜드 특징, 주요 제품 라인, 타겟 고객층에 대한 설명"
  }
]

검색 결과:
%[5]s
`

func buildExtractionPrompt(category, window string, maxBrands int, corpus string) string {
	return fmt.Sprintf(extractionPromptTemplate, category, window, maxBrands, core.UnknownDate, corpus)
}

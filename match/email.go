package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/happy6team/ooh-marketing-sales/core"
)

// reasonCount is the number of numbered fit reasons in a proposal email.
const reasonCount = 3

var (
	thinkTagPattern = regexp.MustCompile(`(?s)<think>.*?</think>`)
	listMarker      = regexp.MustCompile(`^(?:[-*•·]+|\(?\d+\s*[.):]|\d+\s*번[.)]?)\s*`)
)

// parseReasons pulls up to reasonCount reasons out of model output, one per
// line, with list markers and markdown emphasis removed.
func parseReasons(output string) []string {
	output = thinkTagPattern.ReplaceAllString(output, "")

	var reasons []string
	seen := make(map[string]struct{})
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
		line = strings.TrimSpace(listMarker.ReplaceAllString(line, ""))
		if line == "" || strings.HasPrefix(line, "```") || strings.HasSuffix(line, ":") {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		reasons = append(reasons, line)
		if len(reasons) == reasonCount {
			break
		}
	}
	return reasons
}

// fallbackReasons builds reasonCount fit reasons from the media fields alone.
func fallbackReasons(brand string, m *core.MediaRecord) []string {
	reasons := make([]string, 0, reasonCount)

	if m.Location != "" && m.PopulationTarget != "" {
		reasons = append(reasons, fmt.Sprintf("%s에 위치해 %s에게 %s의 메시지를 자연스럽게 노출할 수 있습니다.",
			m.Location, m.PopulationTarget, brand))
	} else {
		reasons = append(reasons, fmt.Sprintf("%s의 주요 고객층이 자주 찾는 동선에서 브랜드 메시지를 노출할 수 있습니다.", brand))
	}

	if m.MediaCharacteristics != "" {
		reasons = append(reasons, fmt.Sprintf("'%s' 특성을 갖춰 %s의 최근 이슈를 알리는 데 효과적입니다.",
			m.MediaCharacteristics, brand))
	} else {
		reasons = append(reasons, fmt.Sprintf("높은 가시성으로 %s의 최근 이슈를 알리는 데 효과적입니다.", brand))
	}

	if m.CaseExamples != "" {
		reasons = append(reasons, fmt.Sprintf("'%s' 등 유사 캠페인 집행 사례로 효과가 검증된 매체입니다.", m.CaseExamples))
	} else {
		reasons = append(reasons, "다양한 브랜드 캠페인에 활용되어 온 검증된 매체입니다.")
	}

	return reasons
}

// completeReasons tops parsed up to reasonCount with fallbacks.
func completeReasons(parsed []string, brand string, m *core.MediaRecord) []string {
	reasons := append([]string(nil), parsed...)
	fallback := fallbackReasons(brand, m)
	for i := len(reasons); i < reasonCount; i++ {
		reasons = append(reasons, fallback[i])
	}
	return reasons
}

type emailInput struct {
	company string
	owner   string
	brand   string
	media   *core.MediaRecord
	reasons []string
}

// composeEmail renders the proposal email skeleton.
func composeEmail(in emailInput) string {
	name := in.media.Name

	var b strings.Builder
	b.WriteString("안녕하세요.\n")
	fmt.Fprintf(&b, "옥외광고 매체사 <%s>의 광고팀 %s 매니저입니다.\n\n", in.company, in.owner)

	fmt.Fprintf(&b, "%s에 적합한 옥외광고인\n", in.brand)
	fmt.Fprintf(&b, "%s%s 소개해 드리고자 메일을 남기게 되었습니다.\n\n", name, objectParticle(name))

	fmt.Fprintf(&b, "%s 다음과 같은 특징을 가지고 있습니다:\n\n", characteristicLine(in.media))
	for i, reason := range in.reasons {
		fmt.Fprintf(&b, "%d. %s\n", i+1, reason)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "이외에도 저희 %s%s 올림픽대로 야립광고와 지하철, 버스 등 여러 교통 매체뿐 아니라\n",
		in.company, topicParticle(in.company))
	b.WriteString("이태원/강남/명동 등 서울 주요 지역의 옥외 매체를 활용한 마케팅 솔루션을 제공하고 있습니다.\n\n")

	fmt.Fprintf(&b, "첨부된 소개서에서 %s%s 다른 매체들을 함께 확인하실 수 있습니다.\n", name, withParticle(name))
	b.WriteString("확인 후 회신 주시면, 전화나 미팅을 통해 더 자세히 안내해 드리겠습니다 :)\n\n")

	b.WriteString("긴 메일 읽어주셔서 감사합니다.\n")
	fmt.Fprintf(&b, "%s %s 드림", in.company, in.owner)
	return b.String()
}

// characteristicLine is the one-line description of the medium.
func characteristicLine(m *core.MediaRecord) string {
	kind := m.MediaCharacteristics
	if kind == "" {
		kind = m.MediaType
	}
	if kind == "" {
		kind = "옥외광고"
	}
	if m.Location == "" {
		return fmt.Sprintf("%s%s '%s' 매체로,", m.Name, topicParticle(m.Name), kind)
	}
	return fmt.Sprintf("%s%s %s에 위치한 '%s' 매체로,", m.Name, topicParticle(m.Name), m.Location, kind)
}

// Korean particles depend on whether the preceding syllable ends in a
// consonant. Non-Hangul endings get the combined form.

func topicParticle(word string) string  { return particle(word, "은", "는", "은(는)") }
func objectParticle(word string) string { return particle(word, "을", "를", "을(를)") }
func withParticle(word string) string   { return particle(word, "과", "와", "과(와)") }

func particle(word, closed, open, unknown string) string {
	r := []rune(strings.TrimSpace(word))
	if len(r) == 0 {
		return unknown
	}
	last := r[len(r)-1]
	if last < 0xAC00 || last > 0xD7A3 {
		return unknown
	}
	if (last-0xAC00)%28 != 0 {
		return closed
	}
	return open
}

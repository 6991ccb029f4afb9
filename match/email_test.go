package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happy6team/ooh-marketing-sales/core"
)

func TestParseReasons(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{
			name:   "numbered",
			output: "1. 유동인구가 많습니다.\n2. 타겟이 일치합니다.\n3. 사례가 있습니다.",
			want:   []string{"유동인구가 많습니다.", "타겟이 일치합니다.", "사례가 있습니다."},
		},
		{
			name:   "markdown and header",
			output: "<think>생각 중</think>적합한 이유:\n\n**1.** 유동인구\n- 타겟 일치\n(3) 사례 보유\n4) 네 번째",
			want:   []string{"유동인구", "타겟 일치", "사례 보유"},
		},
		{
			name:   "too few lines",
			output: "1) 유동인구가 많습니다.\n\n",
			want:   []string{"유동인구가 많습니다."},
		},
		{
			name:   "duplicates dropped",
			output: "1. 같은 이유\n2. 같은 이유\n3. 다른 이유",
			want:   []string{"같은 이유", "다른 이유"},
		},
		{
			name:   "blank",
			output: "   ",
			want:   nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseReasons(tt.output))
		})
	}
}

func TestCompleteReasons(t *testing.T) {
	media := &core.MediaRecord{
		Name:                 "강남역 미디어폴",
		Location:             "강남역",
		PopulationTarget:     "20-30대",
		MediaCharacteristics: "유동인구 최상위",
		CaseExamples:         "팝업 런칭",
	}

	reasons := completeReasons([]string{"모델 이유"}, "무신사", media)
	require.Len(t, reasons, reasonCount)
	assert.Equal(t, "모델 이유", reasons[0])
	assert.Contains(t, reasons[1], "유동인구 최상위")
	assert.Contains(t, reasons[2], "팝업 런칭")

	bare := completeReasons(nil, "무신사", &core.MediaRecord{Name: "매체"})
	require.Len(t, bare, reasonCount)
	for _, r := range bare {
		assert.NotEmpty(t, r)
	}
}

func TestComposeEmail_Skeleton(t *testing.T) {
	media := &core.MediaRecord{
		Name:                 "강남역 미디어폴",
		Location:             "강남역",
		MediaCharacteristics: "유동인구 최상위 상권",
	}
	email := composeEmail(emailInput{
		company: DefaultCompany,
		owner:   "김하늘",
		brand:   "무신사",
		media:   media,
		reasons: []string{"첫째", "둘째", "셋째"},
	})

	ordered := []string{
		"안녕하세요.",
		"옥외광고 매체사 <올이즈굿>의 광고팀 김하늘 매니저입니다.",
		"무신사에 적합한 옥외광고인",
		"강남역 미디어폴을 소개해 드리고자",
		"강남역 미디어폴은 강남역에 위치한 '유동인구 최상위 상권' 매체로, 다음과 같은 특징을 가지고 있습니다:",
		"1. 첫째",
		"2. 둘째",
		"3. 셋째",
		"이외에도 저희 올이즈굿은 올림픽대로 야립광고",
		"이태원/강남/명동",
		"첨부된 소개서에서 강남역 미디어폴과 다른 매체들을",
		"긴 메일 읽어주셔서 감사합니다.",
		"올이즈굿 김하늘 드림",
	}
	last := -1
	for _, part := range ordered {
		idx := strings.Index(email, part)
		require.GreaterOrEqual(t, idx, 0, "missing %q", part)
		assert.Greater(t, idx, last, "%q out of order", part)
		last = idx
	}
	assert.True(t, strings.HasSuffix(email, "올이즈굿 김하늘 드림"))
}

func TestParticles(t *testing.T) {
	tests := []struct {
		word  string
		topic string
		obj   string
	}{
		{word: "올이즈굿", topic: "은", obj: "을"},
		{word: "미디어폴", topic: "은", obj: "을"},
		{word: "사이니지", topic: "는", obj: "를"},
		{word: "LED", topic: "은(는)", obj: "을(를)"},
		{word: "", topic: "은(는)", obj: "을(를)"},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.topic, topicParticle(tt.word))
			assert.Equal(t, tt.obj, objectParticle(tt.word))
		})
	}
}

func TestReasonTemplate(t *testing.T) {
	media := &core.MediaRecord{
		Location:             "강남역",
		PopulationTarget:     "20-30대",
		MediaCharacteristics: "유동인구 최상위",
		CaseExamples:         "팝업 런칭",
	}
	assert.Equal(t,
		"강남역에 위치하며 20-30대을 타겟으로 하며, '유동인구 최상위' 특성을 가짐. '팝업 런칭' 등 유사 캠페인 존재.",
		Reason(media))
}

func TestQuery(t *testing.T) {
	q := Query(core.BrandIssueRecord{Name: "무신사", Issue: " 팝업 오픈 ", Description: "스트리트 "})
	assert.Equal(t, "팝업 오픈 / 스트리트", q)
}

package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNameFilter(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{name: "무신사 스탠다드", want: true},
		{name: "Nike", want: true},
		{name: "", want: false},
		{name: "   ", want: false},
		{name: "메이플스토리 캐릭터", want: false},
		{name: "아이돌 그룹 A", want: false},
		{name: "더현대 서울 백화점", want: false},
		{name: "서울 패션 페스티벌", want: false},
		{name: "김민지 씨", want: false},
		{name: "박지성선수", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultNameFilter(tt.name))
		})
	}
}

func TestFindDates(t *testing.T) {
	text := "2025년 5월 1일 오픈, 2025-06-02 종료, 2025.07.03 재오픈, 8월 4일 행사, 2025년 9월 예정"
	dates := findDates(text)
	require.Len(t, dates, 5)

	want := []dateMention{
		{year: 2025, month: 5, day: 1},
		{year: 2025, month: 6, day: 2},
		{year: 2025, month: 7, day: 3},
		{month: 8, day: 4},
		{year: 2025, month: 9},
	}
	for i, w := range want {
		assert.Equal(t, w.year, dates[i].year, "date %d year", i)
		assert.Equal(t, w.month, dates[i].month, "date %d month", i)
		assert.Equal(t, w.day, dates[i].day, "date %d day", i)
	}
}

func TestFindDates_OtherFormats(t *testing.T) {
	tests := []struct {
		text              string
		year, month, day int
	}{
		{text: "2025/05/20 오픈", year: 2025, month: 5, day: 20},
		{text: "25.05.20 오픈", year: 2025, month: 5, day: 20},
		{text: "5/20 오픈", month: 5, day: 20},
		{text: "2025-05 오픈", year: 2025, month: 5},
		{text: "May 20, 2025 launch", year: 2025, month: 5, day: 20},
		{text: "20 May 2025 launch", year: 2025, month: 5, day: 20},
		{text: "September 3rd launch", month: 9, day: 3},
		{text: "Dec. 2024 launch", year: 2024, month: 12},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			dates := findDates(tt.text)
			require.Len(t, dates, 1)
			assert.Equal(t, tt.year, dates[0].year)
			assert.Equal(t, tt.month, dates[0].month)
			assert.Equal(t, tt.day, dates[0].day)
		})
	}
}

func TestFindDates_RejectsImpossible(t *testing.T) {
	assert.Empty(t, findDates("주문번호 2025-13-40"))
	assert.Empty(t, findDates("날짜 없음"))
	assert.Empty(t, findDates("24/7 운영"))
	assert.Empty(t, findDates("코드 120250520"))
}

func TestEnforceDateEvidence(t *testing.T) {
	corpus := "무신사는 2025년 5월 1일 성수동에 팝업스토어를 열었다. 6월 10일에는 신제품을 공개했다."
	ev := newEvidence(corpus)

	tests := []struct {
		name  string
		issue string
		want  string
	}{
		{
			name:  "date present in corpus",
			issue: "2025년 5월 1일: 성수 팝업스토어 오픈",
			want:  "2025년 5월 1일: 성수 팝업스토어 오픈",
		},
		{
			name:  "same date in another format",
			issue: "2025-05-01 성수 팝업스토어 오픈",
			want:  "2025-05-01 성수 팝업스토어 오픈",
		},
		{
			name:  "corpus date without year",
			issue: "2025년 6월 10일: 신제품 공개",
			want:  "2025년 6월 10일: 신제품 공개",
		},
		{
			name:  "fabricated date",
			issue: "2025년 5월 20일: 앰배서더 발표",
			want:  "날짜 미상: 앰배서더 발표",
		},
		{
			name:  "wrong year",
			issue: "2024년 5월 1일: 팝업",
			want:  "날짜 미상: 팝업",
		},
		{
			name:  "only untraceable date replaced",
			issue: "2025년 5월 1일 오픈, 2025년 5월 9일 종료",
			want:  "2025년 5월 1일 오픈, 날짜 미상 종료",
		},
		{
			name:  "slash date kept",
			issue: "2025/05/01 팝업 오픈",
			want:  "2025/05/01 팝업 오픈",
		},
		{
			name:  "english date kept",
			issue: "May 1, 2025 pop-up",
			want:  "May 1, 2025 pop-up",
		},
		{
			name:  "month and day kept",
			issue: "6/10 신제품 공개",
			want:  "6/10 신제품 공개",
		},
		{
			name:  "year and month kept",
			issue: "2025-05 팝업",
			want:  "2025-05 팝업",
		},
		{
			name:  "fabricated slash date",
			issue: "2025/05/20 앰배서더 발표",
			want:  "날짜 미상 앰배서더 발표",
		},
		{
			name:  "fabricated short year",
			issue: "25.05.20 앰배서더 발표",
			want:  "날짜 미상 앰배서더 발표",
		},
		{
			name:  "fabricated month and day",
			issue: "5/20 앰배서더 발표",
			want:  "날짜 미상 앰배서더 발표",
		},
		{
			name:  "fabricated english date",
			issue: "May 20, 2025 ambassador",
			want:  "날짜 미상 ambassador",
		},
		{
			name:  "fabricated year and month",
			issue: "2025-07 신제품",
			want:  "날짜 미상 신제품",
		},
		{
			name:  "no date gets prefix",
			issue: "새 앰배서더 발표",
			want:  "날짜 미상: 새 앰배서더 발표",
		},
		{
			name:  "already unknown",
			issue: "날짜 미상: 콜라보레이션",
			want:  "날짜 미상: 콜라보레이션",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, enforceDateEvidence(tt.issue, ev))
		})
	}
}

func TestEnforceDateEvidence_CorpusWithoutDates(t *testing.T) {
	ev := newEvidence("무신사는 성수동에 팝업스토어를 열었다.")

	issues := []string{
		"2025/05/20 성수 팝업",
		"5/20 성수 팝업",
		"25.05.20 성수 팝업",
		"May 20, 2025 성수 팝업",
		"2025-05 성수 팝업",
		"2025년 5월 20일 성수 팝업",
	}
	for _, issue := range issues {
		t.Run(issue, func(t *testing.T) {
			got := enforceDateEvidence(issue, ev)
			assert.Equal(t, "날짜 미상 성수 팝업", got)
			assert.Empty(t, findDates(got))
		})
	}
}

package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/happy6team/ooh-marketing-sales/core"
)

// NameFilter reports whether a candidate name is an acceptable brand.
type NameFilter func(name string) bool

// nonBrandMarkers flag names that are characters, people, venues or events
// rather than brands.
var nonBrandMarkers = []string{
	"캐릭터", "게임", "아이돌", "연예인", "배우", "가수", "걸그룹", "보이그룹",
	"버추얼", "가상인물", "가상 인물", "유튜버", "인플루언서",
	"백화점", "쇼핑몰", "아울렛", "페스티벌", "박람회", "전시회", "축제", "행사",
}

var honorificName = regexp.MustCompile(`^[가-힣]{2,4}\s?(씨|님|선수|작가|감독)$`)

// DefaultNameFilter rejects empty names, names carrying a non-brand marker
// and person-style names with an honorific.
func DefaultNameFilter(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, marker := range nonBrandMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}
	return !honorificName.MatchString(name)
}

// dateMention is one calendar date found in text. Zero fields were not given.
type dateMention struct {
	start, end       int
	year, month, day int
}

type datePattern struct {
	re                      *regexp.Regexp
	yearIdx, monIdx, dayIdx int
	shortYear               bool // two-digit year in the 2000s
	monthName               bool // month group is an English name
}

const monthNames = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

// Patterns run in order; later patterns skip text an earlier one matched.
// Full dates come first, then year and month, then month and day.
var datePatterns = []datePattern{
	{re: regexp.MustCompile(`(\d{4})\s*년\s*(\d{1,2})\s*월\s*(\d{1,2})\s*일`), yearIdx: 1, monIdx: 2, dayIdx: 3},
	{re: regexp.MustCompile(`(\d{4})\s*[-./]\s*(\d{1,2})\s*[-./]\s*(\d{1,2})`), yearIdx: 1, monIdx: 2, dayIdx: 3},
	{re: regexp.MustCompile(`(?i)\b` + monthNames + `\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`), yearIdx: 3, monIdx: 1, dayIdx: 2, monthName: true},
	{re: regexp.MustCompile(`(?i)\b(\d{1,2})\s+` + monthNames + `\.?,?\s+(\d{4})\b`), yearIdx: 3, monIdx: 2, dayIdx: 1, monthName: true},
	{re: regexp.MustCompile(`(\d{2})[-./](\d{1,2})[-./](\d{1,2})`), yearIdx: 1, monIdx: 2, dayIdx: 3, shortYear: true},
	{re: regexp.MustCompile(`(\d{4})\s*년\s*(\d{1,2})\s*월`), yearIdx: 1, monIdx: 2},
	{re: regexp.MustCompile(`(\d{4})[-./](\d{1,2})`), yearIdx: 1, monIdx: 2},
	{re: regexp.MustCompile(`(?i)\b` + monthNames + `\.?,?\s+(\d{4})\b`), yearIdx: 2, monIdx: 1, monthName: true},
	{re: regexp.MustCompile(`(\d{1,2})\s*월\s*(\d{1,2})\s*일`), monIdx: 1, dayIdx: 2},
	{re: regexp.MustCompile(`(\d{1,2})/(\d{1,2})`), monIdx: 1, dayIdx: 2},
	{re: regexp.MustCompile(`(?i)\b` + monthNames + `\.?\s+(\d{1,2})(?:st|nd|rd|th)?\b`), monIdx: 1, dayIdx: 2, monthName: true},
	{re: regexp.MustCompile(`(?i)\b(\d{1,2})\s+` + monthNames + `\b`), monIdx: 2, dayIdx: 1, monthName: true},
}

// findDates returns the dates mentioned in text, ordered by position.
func findDates(text string) []dateMention {
	var found []dateMention
	taken := func(start, end int) bool {
		for _, m := range found {
			if start < m.end && end > m.start {
				return true
			}
		}
		return false
	}

	for _, p := range datePatterns {
		for _, loc := range p.re.FindAllStringSubmatchIndex(text, -1) {
			if taken(loc[0], loc[1]) || !digitBounded(text, loc[0], loc[1]) {
				continue
			}
			m := p.mention(text, loc)
			if m.month < 1 || m.month > 12 || m.day > 31 || (p.dayIdx != 0 && m.day < 1) {
				continue
			}
			found = append(found, m)
		}
	}

	sort.Slice(found, func(i, j int) bool { return found[i].start < found[j].start })
	return found
}

func (p datePattern) mention(text string, loc []int) dateMention {
	m := dateMention{
		start: loc[0],
		end:   loc[1],
		year:  group(text, loc, p.yearIdx),
		day:   group(text, loc, p.dayIdx),
	}
	if p.shortYear {
		m.year += 2000
	}
	if p.monthName {
		name := strings.ToLower(text[loc[2*p.monIdx]:loc[2*p.monIdx+1]])
		m.month = monthByPrefix[name[:3]]
	} else {
		m.month = group(text, loc, p.monIdx)
	}
	return m
}

var monthByPrefix = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// digitBounded reports whether text[start:end] is not part of a longer
// number, so "12025-05" or "2025-05-011" are not read as dates.
func digitBounded(text string, start, end int) bool {
	if start > 0 && isDigit(text[start-1]) {
		return false
	}
	return end >= len(text) || !isDigit(text[end])
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func group(text string, loc []int, idx int) int {
	if idx == 0 || loc[2*idx] < 0 {
		return 0
	}
	n, _ := strconv.Atoi(text[loc[2*idx]:loc[2*idx+1]])
	return n
}

// evidence indexes the dates that appear in a corpus.
type evidence []dateMention

func newEvidence(corpus string) evidence {
	return findDates(corpus)
}

// supports reports whether the corpus mentions the date. Month and day
// must appear exactly as claimed; a year may be missing from the corpus
// mention but must not differ.
func (e evidence) supports(claim dateMention) bool {
	for _, m := range e {
		if claim.month != m.month {
			continue
		}
		if claim.day != 0 && claim.day != m.day {
			continue
		}
		if claim.year != 0 && m.year != 0 && claim.year != m.year {
			continue
		}
		return true
	}
	return false
}

// enforceDateEvidence replaces every date in issue that the corpus does not
// mention with the unknown-date marker. An issue with no date at all gets
// the marker as a prefix.
func enforceDateEvidence(issue string, ev evidence) string {
	mentions := findDates(issue)
	if len(mentions) == 0 {
		if strings.Contains(issue, core.UnknownDate) {
			return issue
		}
		return core.UnknownDate + ": " + issue
	}

	var b strings.Builder
	last := 0
	for _, m := range mentions {
		b.WriteString(issue[last:m.start])
		if ev.supports(m) {
			b.WriteString(issue[m.start:m.end])
		} else {
			b.WriteString(core.UnknownDate)
		}
		last = m.end
	}
	b.WriteString(issue[last:])
	return b.String()
}

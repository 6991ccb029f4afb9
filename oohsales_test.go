package oohsales

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/happy6team/ooh-marketing-sales/ai/mock"
	"github.com/happy6team/ooh-marketing-sales/catalog"
	"github.com/happy6team/ooh-marketing-sales/config"
	"github.com/happy6team/ooh-marketing-sales/core"
	"github.com/happy6team/ooh-marketing-sales/extract"
	"github.com/happy6team/ooh-marketing-sales/pipeline"
)

const datasetCSV = "media_id,media_name,location,media_type,population_target,media_characteristics,case_examples\n" +
	"1,강남역 미디어폴,서울 강남구 강남역,디지털 사이니지,20-30대,유동인구 최상위 상권,팝업 런칭 캠페인\n" +
	"2,홍대입구 사이니지,서울 마포구 홍대,디지털 사이니지,대학생,젊은 유동인구,음반 발매 광고\n" +
	"3,여의도 환승센터,서울 영등포구 여의도,와이드 컬러,직장인,출퇴근 동선,금융 상품 광고\n"

const testCorpus = "무신사 스탠다드가 2025년 5월 1일 강남에 팝업스토어를 열었다." +
	extract.SearchSeparator +
	"여의도 직장인을 겨냥한 금융 캠페인이 화제다."

const extraction = `[
  {"name": "무신사 스탠다드", "issue": "2025년 5월 1일: 강남 팝업스토어 오픈", "description": "20-30대 베이직 캐주얼"},
  {"name": "토스", "issue": "여의도 직장인 대상 금융 캠페인", "description": "직장인 금융 앱"}
]`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Catalog: config.CatalogConfig{
			InMemory:    true,
			Collection:  "media",
			BuildMode:   "replace",
			BatchSize:   2,
			Parallelism: 2,
			MaxAttempts: 2,
			RetryDelay:  time.Millisecond,
		},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			DSN:    filepath.Join(t.TempDir(), "sales.db"),
		},
		Pipeline: config.PipelineConfig{
			Workers:       2,
			K:             10,
			MaxBrands:     10,
			Company:       "올이즈굿",
			SearchResults: 5,
		},
	}
}

func testGenerator() *mock.MockGenerator {
	return &mock.MockGenerator{
		GenerateFunc: func(_ context.Context, prompt string) (string, error) {
			switch {
			case strings.Contains(prompt, "브랜드 분석가"):
				return extraction, nil
			case strings.Contains(prompt, "영업 스크립트"):
				return "안녕하세요, 올이즈굿 김하늘 매니저입니다.", nil
			default:
				return "1. 첫째 이유\n2. 둘째 이유\n3. 셋째 이유", nil
			}
		},
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	provider := mock.NewMockProviderWithServices(
		mock.NewKeywordEmbedder("강남", "홍대", "여의도", "20-30대", "직장인", "대학생", "팝업", "금융"),
		testGenerator(),
	)
	svc, err := NewService(context.Background(), testConfig(t),
		WithProvider(provider),
		WithCorpus(extract.StaticCorpus(testCorpus)),
		WithRegisterer(prometheus.NewRegistry()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	dataset := filepath.Join(t.TempDir(), "media.csv")
	require.NoError(t, os.WriteFile(dataset, []byte(datasetCSV), 0o644))
	manifest, err := svc.BuildCatalog(context.Background(), dataset, catalog.BuildReplace)
	require.NoError(t, err)
	require.Equal(t, 3, manifest.Count)
	return svc
}

func TestNewService_RequiresConfig(t *testing.T) {
	_, err := NewService(context.Background(), nil)
	assert.Error(t, err)
}

func TestService_Search(t *testing.T) {
	svc := newTestService(t)

	hits, err := svc.Search(context.Background(), "여의도 직장인 금융", 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, int64(3), hits[0].Media.MediaID)
}

func TestService_Run(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.Run(ctx, pipeline.RunRequest{Category: "패션", Window: "2025년 5월", Owner: "김하늘"})
	require.NoError(t, err)
	require.Len(t, result.Outcomes, 2)

	first := result.Outcomes[0]
	assert.Equal(t, core.OutcomeMatched, first.Status, first.Reason)
	assert.Equal(t, "무신사 스탠다드", first.Brand.Name)
	assert.Equal(t, "2025년 5월 1일: 강남 팝업스토어 오픈", first.Brand.Issue)
	assert.Equal(t, int64(1), first.Match.MediaID)
	assert.Contains(t, first.Match.ProposalEmail, "1. 첫째 이유")

	second := result.Outcomes[1]
	assert.Equal(t, core.OutcomeMatched, second.Status, second.Reason)
	assert.Equal(t, "날짜 미상: 여의도 직장인 대상 금융 캠페인", second.Brand.Issue)
	assert.Equal(t, int64(3), second.Match.MediaID)

	brand, err := svc.SalesStore().FindBrand(ctx, "토스")
	require.NoError(t, err)
	assert.Equal(t, core.DefaultSalesStatus, brand.SalesStatus)
	assert.Equal(t, "패션", brand.Category)
}

func TestService_MatchBrand(t *testing.T) {
	svc := newTestService(t)

	outcome, err := svc.MatchBrand(context.Background(), pipeline.BrandRequest{
		Name:        "Acme",
		Issue:       "날짜 미상: 홍대 대학생 팝업",
		Description: "대학생 스트리트",
		Category:    "패션",
		Owner:       "김하늘",
	})
	require.NoError(t, err)
	assert.True(t, outcome.Matched())
	assert.Equal(t, int64(2), outcome.Match.MediaID)
	assert.Equal(t, core.ID(1), outcome.BrandID)
}

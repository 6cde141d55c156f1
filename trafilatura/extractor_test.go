package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/taxdoc"
	"github.com/fwojciec/taxdoc/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>종합소득세 경정청구 거부처분</title>
<meta property="og:title" content="종합소득세 경정청구 거부처분">
</head>
<body>
<nav><a href="/">홈</a><a href="/search">통합검색 메뉴</a></nav>
<main>
<h1>종합소득세 경정청구 거부처분</h1>
<p>청구인은 2019년 귀속 종합소득세 신고 시 누락한 필요경비를 반영하여 경정청구를 하였으나 처분청은 이를 거부하였다.</p>
<p>처분청은 청구인이 제출한 증빙서류만으로는 필요경비의 실제 지출 사실을 확인할 수 없다는 의견이다.</p>
</main>
<footer>저작권 안내 문구</footer>
</body>
</html>`

		result, err := trafilatura.NewExtractor().Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.ContentHTML, "경정청구를 하였으나")
		assert.NotContains(t, result.ContentHTML, "통합검색 메뉴")
	})

	t.Run("rejects pages without Korean text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main>
<p>This page could not be displayed because the session expired. Please return to the search page and try again later.</p>
<p>If the problem persists contact the site administrator for assistance with your request.</p>
</main></body></html>`

		_, err := trafilatura.NewExtractor().Extract(html)

		require.Error(t, err)
		assert.Equal(t, taxdoc.ENOTFOUND, taxdoc.ErrorCode(err))
	})

	t.Run("rejects content shorter than MinRunes", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><main><p>결정 이유는 다음과 같다.</p></main></body></html>`
		e := &trafilatura.Extractor{MinRunes: 1000}

		_, err := e.Extract(html)

		require.Error(t, err)
		assert.Equal(t, taxdoc.ENOTFOUND, taxdoc.ErrorCode(err))
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("")

		require.Error(t, err)
		assert.Equal(t, taxdoc.EINVALID, taxdoc.ErrorCode(err))
	})
}

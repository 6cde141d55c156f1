package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/taxdoc"
	"github.com/fwojciec/taxdoc/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>청구를 기각한다.</p>`)

		require.NoError(t, err)
		assert.Equal(t, "청구를 기각한다.", md)
	})

	t.Run("converts headings and lists", func(t *testing.T) {
		t.Parallel()

		html := `<h1>질의회신</h1><h2>회신</h2><ul><li>첫째</li><li>둘째</li></ul>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# 질의회신")
		assert.Contains(t, md, "## 회신")
		assert.Contains(t, md, "- 첫째")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>구분</th><th>금액</th></tr></thead>
<tbody><tr><td>신고</td><td>100</td></tr></tbody>
</table>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		// Cells may be padded for alignment.
		assert.Contains(t, md, "구분")
		assert.Contains(t, md, "신고")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("converts bold text", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p><strong>주문</strong> 참조</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**주문**")
	})

	t.Run("drops site chrome", func(t *testing.T) {
		t.Parallel()

		html := `<header>국세법령정보시스템</header><nav><a href="/">홈</a></nav>` +
			`<div><p>본문</p></div><footer>저작권</footer>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "본문", md)
	})

	t.Run("collapses blank line runs", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert(`<p>첫째</p><div><br><br><br></div><p>둘째</p>`)

		require.NoError(t, err)
		assert.NotContains(t, md, "\n\n\n")
	})

	t.Run("drops portal buttons by class", func(t *testing.T) {
		t.Parallel()

		html := `<div class="btn_area"><a href="#">인쇄</a><a href="#">스크랩</a></div><p>본문</p>`

		md, err := htmltomarkdown.NewConverter().Convert(html)

		require.NoError(t, err)
		assert.Equal(t, "본문", md)
	})

	t.Run("keeps chrome when none is configured", func(t *testing.T) {
		t.Parallel()

		c := htmltomarkdown.NewConverter()
		c.Chrome = nil

		md, err := c.Convert(`<nav>메뉴</nav><p>본문</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "메뉴")
	})

	t.Run("normalizes non-breaking and zero-width spaces", func(t *testing.T) {
		t.Parallel()

		md, err := htmltomarkdown.NewConverter().Convert("<p>상고를&nbsp;기각\u200b한다.</p>")

		require.NoError(t, err)
		assert.Equal(t, "상고를 기각한다.", md)
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := htmltomarkdown.NewConverter().Convert("")

		require.Error(t, err)
		assert.Equal(t, taxdoc.EINVALID, taxdoc.ErrorCode(err))
	})
}

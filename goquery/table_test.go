package goquery_test

import (
	"testing"

	"github.com/fwojciec/taxdoc"
	"github.com/fwojciec/taxdoc/goquery"
	"github.com/stretchr/testify/assert"
)

func TestReadCells(t *testing.T) {
	t.Parallel()

	t.Run("reads spans and defaults malformed values", func(t *testing.T) {
		t.Parallel()

		c := container(t, `<table>
			<tr><th colspan="2">구분</th></tr>
			<tr><td rowspan="x">가</td><td rowspan="0">나</td></tr>
		</table>`)

		rows := goquery.ReadCells(c.Find("table"))

		assert.Equal(t, [][]taxdoc.Cell{
			{{Text: "구분", ColSpan: 2, RowSpan: 1}},
			{{Text: "가", ColSpan: 1, RowSpan: 1}, {Text: "나", ColSpan: 1, RowSpan: 1}},
		}, rows)
	})

	t.Run("clamps oversized spans", func(t *testing.T) {
		t.Parallel()

		c := container(t, `<table><tr><td colspan="3000000" rowspan="99999999">X</td></tr></table>`)

		rows := goquery.ReadCells(c.Find("table"))

		assert.Equal(t, [][]taxdoc.Cell{
			{{Text: "X", ColSpan: taxdoc.MaxColSpan, RowSpan: taxdoc.MaxRowSpan}},
		}, rows)
	})

	t.Run("joins cell paragraphs and skips nested table rows", func(t *testing.T) {
		t.Parallel()

		c := container(t, `<table id="outer"><tr><td><p>첫째</p><p>둘째</p>`+
			`<table><tr><td>안쪽</td></tr></table></td></tr></table>`)

		rows := goquery.ReadCells(c.Find("#outer"))

		assert.Len(t, rows, 1)
		assert.Equal(t, "첫째 둘째 안쪽", rows[0][0].Text)
	})

	t.Run("merged cells build a rectangular grid", func(t *testing.T) {
		t.Parallel()

		c := container(t, `<table>
			<tr><td rowspan="2">연도</td><td colspan="2">세액</td></tr>
			<tr><td>신고</td><td>결정</td></tr>
			<tr><td>2019</td><td>100</td><td>120</td></tr>
		</table>`)

		grid := taxdoc.BuildGrid(goquery.ReadCells(c.Find("table")))

		assert.Equal(t, taxdoc.Grid{
			{"연도", "세액", "세액"},
			{"", "신고", "결정"},
			{"2019", "100", "120"},
		}, grid)
	})
}

package taxdoc_test

import (
	"testing"

	"github.com/fwojciec/taxdoc"
	"github.com/stretchr/testify/assert"
)

func TestParseDocumentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		label string
		want  taxdoc.DocumentType
	}{
		{label: "판례", want: taxdoc.DocumentPrecedent},
		{label: "심판청구", want: taxdoc.DocumentPrecedent},
		{label: "조세심판원 심판", want: taxdoc.DocumentPrecedent},
		{label: "질의회신", want: taxdoc.DocumentInterpretation},
		{label: "사전답변", want: taxdoc.DocumentInterpretation},
		{label: "", want: taxdoc.DocumentInterpretation},
		{label: "precedent", want: taxdoc.DocumentPrecedent},
		{label: " Interpretation ", want: taxdoc.DocumentInterpretation},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, taxdoc.ParseDocumentType(tt.label))
		})
	}
}

func TestDocumentType_MergesTables(t *testing.T) {
	t.Parallel()

	assert.True(t, taxdoc.DocumentPrecedent.MergesTables())
	assert.False(t, taxdoc.DocumentInterpretation.MergesTables())
}

func TestDocumentType_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, taxdoc.DocumentPrecedent.Valid())
	assert.True(t, taxdoc.DocumentInterpretation.Valid())
	assert.False(t, taxdoc.DocumentType("판례").Valid())
	assert.False(t, taxdoc.DocumentType("").Valid())
}

func TestDocumentType_Hierarchy(t *testing.T) {
	t.Parallel()

	assert.Same(t, taxdoc.PrecedentHierarchy(), taxdoc.DocumentPrecedent.Hierarchy())
	assert.Same(t, taxdoc.InterpretationHierarchy(), taxdoc.DocumentInterpretation.Hierarchy())
}

func TestStructureTag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "normal", taxdoc.StructureNormal.String())
	assert.Equal(t, "table-only", taxdoc.StructureTableOnly.String())
	assert.Equal(t, "dominant-table", taxdoc.StructureDominantTable.String())

	assert.False(t, taxdoc.StructureNormal.MergesTables())
	assert.True(t, taxdoc.StructureTableOnly.MergesTables())
	assert.True(t, taxdoc.StructureDominantTable.MergesTables())

	for _, tag := range []taxdoc.StructureTag{taxdoc.StructureNormal, taxdoc.StructureTableOnly, taxdoc.StructureDominantTable} {
		assert.Equal(t, tag, taxdoc.ParseStructureTag(tag.String()))
	}
	assert.Equal(t, taxdoc.StructureNormal, taxdoc.ParseStructureTag("unknown"))
}

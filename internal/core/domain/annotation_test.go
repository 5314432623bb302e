package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan_LenAndOverlaps(t *testing.T) {
	a := Span{Start: 2, End: 5}

	assert.Equal(t, 3, a.Len())
	assert.True(t, a.Overlaps(Span{Start: 4, End: 8}))
	assert.True(t, a.Overlaps(Span{Start: 0, End: 3}))
	assert.False(t, a.Overlaps(Span{Start: 5, End: 8}))
	assert.False(t, a.Overlaps(Span{Start: 0, End: 2}))
}

func TestAnnotation_Validate(t *testing.T) {
	text := "Dragón de PLA"

	tests := []struct {
		name    string
		ann     Annotation
		wantErr error
	}{
		{"valid", Annotation{Start: 0, End: 6, Label: LabelType}, nil},
		{"end at text length", Annotation{Start: 10, End: 13, Label: LabelMaterial}, nil},
		{"unknown label", Annotation{Start: 0, End: 6, Label: "COLOUR"}, ErrInvalidInput},
		{"empty span", Annotation{Start: 3, End: 3, Label: LabelType}, ErrInvalidSpan},
		{"negative start", Annotation{Start: -1, End: 3, Label: LabelType}, ErrInvalidSpan},
		{"past end counts characters", Annotation{Start: 10, End: 14, Label: LabelType}, ErrInvalidSpan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ann.Validate(text)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecord_Words(t *testing.T) {
	rec := Record{
		Text:   "Orc PLA",
		Tokens: []RecordToken{{Text: "Orc"}, {Text: "PLA"}},
	}

	assert.Equal(t, []string{"Orc", "PLA"}, rec.Words())
}

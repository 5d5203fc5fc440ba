package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantNil bool
		wantErr bool
	}{
		{name: "data válida", input: "2024-03-15", want: "2024-03-15"},
		{name: "com espaços", input: " 2024-03-15 ", want: "2024-03-15"},
		{name: "vazia", input: "", wantNil: true},
		{name: "formato brasileiro", input: "15/03/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, FormatDate(got))
		})
	}
}

func TestPreviousMonth(t *testing.T) {
	ref := time.Date(2024, time.March, 1, 5, 0, 0, 0, time.UTC)

	start, end, label := PreviousMonth(ref)

	assert.Equal(t, "2024-02-01", start.Format(DateLayout))
	assert.Equal(t, "2024-02-29", end.Format(DateLayout))
	assert.Equal(t, "02-2024", label)
}

func TestPreviousMonth_Janeiro(t *testing.T) {
	ref := time.Date(2024, time.January, 1, 5, 0, 0, 0, time.UTC)

	start, end, label := PreviousMonth(ref)

	assert.Equal(t, "2023-12-01", start.Format(DateLayout))
	assert.Equal(t, "2023-12-31", end.Format(DateLayout))
	assert.Equal(t, "12-2023", label)
}

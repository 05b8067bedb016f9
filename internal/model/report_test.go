package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileReport_Reject(t *testing.T) {
	t.Parallel()

	var fr FileReport
	assert.True(t, fr.Clean())

	fr.Reject(12, "Teh")
	fr.Reject(4, "jmups")
	fr.Reject(12, "quikc")

	assert.False(t, fr.Clean())
	assert.Equal(t, 3, fr.Rejections)
	assert.Equal(t, []LineReport{
		{SourceLine: 12, Words: []Word{"Teh", "quikc"}},
		{SourceLine: 4, Words: []Word{"jmups"}},
	}, fr.Lines)
}

func TestRunResult_ExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rejections int
		errorExit  bool
		want       int
	}{
		{"clean", 0, false, 0},
		{"clean with error exit", 0, true, 0},
		{"rejections without error exit", 2, false, 0},
		{"rejections with error exit", 2, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var r RunResult
			r.Add(FileReport{Path: "a.hpp", Rejections: tt.rejections})
			assert.Equal(t, tt.want, r.ExitCode(tt.errorExit))
		})
	}
}

func TestRunResult_Add(t *testing.T) {
	t.Parallel()

	var r RunResult
	r.Add(FileReport{Path: "a.hpp", Rejections: 2})
	r.Add(FileReport{Path: "b.hpp"})
	r.Add(FileReport{Path: "c.hpp", Rejections: 1})

	assert.Equal(t, 3, r.Rejections)
	assert.Len(t, r.Files, 3)
	assert.Equal(t, "c.hpp", r.Files[2].Path)
}

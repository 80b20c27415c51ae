package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"# Title", 1},
		{"### 📊 Real-Time System Metrics", 3},
		{"#### 📋 Active Projects", 4},
		{"   ## indented", 2},
		{"    ## too indented", 0},
		{"##", 2},
		{"##\r", 2},
		{"#hashtag", 0},
		{"####### seven", 0},
		{"plain text", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, HeadingLevel(tt.line))
		})
	}
}

func TestCodeRanges_FencedBlock(t *testing.T) {
	src := "# Doc\n\n```sh\n## not a heading\necho hi\n```\n\n## Real\n"
	ranges := CodeRanges(src)
	require.Len(t, ranges, 1)

	fake := strings.Index(src, "## not a heading")
	heading := strings.Index(src, "## Real")
	assert.True(t, InRanges(ranges, fake))
	assert.False(t, InRanges(ranges, heading))
}

func TestCodeRanges_IndentedBlock(t *testing.T) {
	src := "Intro\n\n    ### code heading\n    more\n\nafter\n"
	ranges := CodeRanges(src)
	require.Len(t, ranges, 1)
	assert.True(t, InRanges(ranges, strings.Index(src, "    ### code heading")))
	assert.False(t, InRanges(ranges, strings.Index(src, "after")))
}

func TestCodeRanges_None(t *testing.T) {
	assert.Empty(t, CodeRanges("# Title\n\nparagraph\n"))
	assert.Empty(t, CodeRanges(""))
}

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srlehn/fbsplash/internal/parser"
)

// consumed feeds seq and reports how many runes the parser took.
func consumed(seq string) int {
	p := parser.NewParser()
	for i, r := range []rune(seq) {
		if p.Parse(r) {
			return i + 1
		}
	}
	return -1
}

func TestParser(t *testing.T) {
	tests := map[string]struct {
		seq  string
		want int
	}{
		`arrow left`:          {"\x1b[Dabc", 3},
		`ctrl arrow right`:    {"\x1b[1;5Cabc", 6},
		`delete`:              {"\x1b[3~abc", 4},
		`ss3 arrow up`:        {"\x1bOAabc", 3},
		`ss3 f1`:              {"\x1bOPabc", 3},
		`linux console f1`:    {"\x1b[[Aabc", 4},
		`osc bell terminated`: {"\x1b]0;x\aabc", 6},
		`fs`:                  {"\x1bcabc", 2},
		`incomplete`:          {"\x1b[1;5", -1},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, consumed(tc.seq))
		})
	}
}

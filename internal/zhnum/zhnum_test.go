package zhnum_test

import (
	"testing"

	"github.com/alnah/go-note2site/internal/zhnum"
)

func TestLower(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{0, "零"},
		{1, "一"},
		{3, "三"},
		{10, "十"},
		{11, "十一"},
		{20, "二十"},
		{99, "九十九"},
		{100, "一百"},
		{101, "一百零一"},
		{110, "一百十"},
		{115, "一百十五"},
		{1001, "一千零一"},
		{1010, "一千零十"},
		{10000, "一萬"},
		{10010, "一萬零十"},
		{1100000, "一百十萬"},
		{100000, "十萬"},
		{120034, "十二萬零三十四"},
		{100000000, "一億"},
		{100000001, "一億零一"},
		{-1, "-1"},
	}

	for _, tt := range tests {
		if got := zhnum.Lower(tt.n); got != tt.want {
			t.Errorf("Lower(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestUpper(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{1, "壹"},
		{2, "貳"},
		{3, "參"},
		{4, "肆"},
		{9, "玖"},
		{10, "拾"},
		{11, "拾壹"},
		{25, "貳拾伍"},
		{105, "壹佰零伍"},
		{110, "壹佰拾"},
		{2024, "貳仟零貳拾肆"},
	}

	for _, tt := range tests {
		if got := zhnum.Upper(tt.n); got != tt.want {
			t.Errorf("Upper(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

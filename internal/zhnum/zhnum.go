// Package zhnum formats integers as Traditional Chinese numerals, in both the
// everyday form (一、二、十一) and the financial form (壹、貳、拾壹).
package zhnum

import (
	"strconv"
	"strings"
)

type numerals struct {
	digits [10]string
	units  [4]string // indexed by position inside a four-digit group: 1, 10, 100, 1000
	groups [2]string // 萬 (10^4), 億 (10^8)
}

var lower = numerals{
	digits: [10]string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九"},
	units:  [4]string{"", "十", "百", "千"},
	groups: [2]string{"萬", "億"},
}

var upper = numerals{
	digits: [10]string{"零", "壹", "貳", "參", "肆", "伍", "陸", "柒", "捌", "玖"},
	units:  [4]string{"", "拾", "佰", "仟"},
	groups: [2]string{"萬", "億"},
}

// maxValue is the first value that no longer fits below 億 groups.
const maxValue = 1_000_000_000_000

// Lower formats n in the everyday form: 1 → 一, 10 → 十, 101 → 一百零一.
// Values outside [0, 10^12) are returned as Arabic digits.
func Lower(n int) string {
	return format(n, &lower)
}

// Upper formats n in the financial form: 1 → 壹, 10 → 拾, 11 → 拾壹.
// Values outside [0, 10^12) are returned as Arabic digits.
func Upper(n int) string {
	return format(n, &upper)
}

func format(n int, d *numerals) string {
	if n < 0 || n >= maxValue {
		return strconv.Itoa(n)
	}
	if n == 0 {
		return d.digits[0]
	}

	var groups []int // least significant first
	for v := n; v > 0; v /= 10000 {
		groups = append(groups, v%10000)
	}

	var b strings.Builder
	pendingZero := false
	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		if g == 0 {
			pendingZero = true
			continue
		}
		if b.Len() > 0 && (pendingZero || g < 1000) {
			b.WriteString(d.digits[0])
		}
		writeGroup(&b, g, d)
		if i > 0 {
			b.WriteString(d.groups[i-1])
		}
		pendingZero = false
	}

	// Every 一十 reads as 十: 10 → 十, 110 → 一百十, 1010 → 一千零十.
	out := b.String()
	out = strings.ReplaceAll(out, d.digits[1]+d.units[1], d.units[1])
	return out
}

// writeGroup renders a value in [1, 9999]. Inner zeros collapse to a single 零
// and trailing zeros are dropped.
func writeGroup(b *strings.Builder, g int, d *numerals) {
	started := false
	pendingZero := false
	for pos := 3; pos >= 0; pos-- {
		div := pow10[pos]
		digit := (g / div) % 10
		if digit == 0 {
			if started {
				pendingZero = true
			}
			continue
		}
		if pendingZero {
			b.WriteString(d.digits[0])
			pendingZero = false
		}
		b.WriteString(d.digits[digit])
		b.WriteString(d.units[pos])
		started = true
	}
}

var pow10 = [4]int{1, 10, 100, 1000}

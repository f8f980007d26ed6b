package parser

import "testing"

func TestConstructArticleCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		l1, l2, l3, l4 string
		want           string
		ok             bool
	}{
		{"X", "17", "3", "", "X01703", true},
		{"x ", "017", "03", "", "X01703", true},
		{"X", "17", "3", "5", "X0170305", true},
		{"ab", "7", "12", "", "AB00712", false}, // 7 位，长度非法
		{"abc", "7", "12", "", "ABC00712", true},
		{"X", "12", "3", "", "X01203", true},
		{"", "17", "3", "", "", false},  // 缺段 1
		{"X", "", "3", "", "", false},   // 缺段 2
		{"X", "17", "", "", "", false},  // 缺段 3
		{"X", "n/a", "3", "", "", false}, // 段 2 无数字
		{"X", "1.7", "3", "", "X01703", true},
	}
	for _, c := range cases {
		got, ok := ConstructArticleCode(c.l1, c.l2, c.l3, c.l4)
		if ok != c.ok {
			t.Fatalf("ConstructArticleCode(%q,%q,%q,%q) ok = %v, want %v", c.l1, c.l2, c.l3, c.l4, ok, c.ok)
		}
		if ok && got != c.want {
			t.Fatalf("ConstructArticleCode(%q,%q,%q,%q) = %q, want %q", c.l1, c.l2, c.l3, c.l4, got, c.want)
		}
	}
}

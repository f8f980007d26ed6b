package parser

import "testing"

func TestNormalizeHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"  Unit   Price ", "unit price"},
		{"Q.ty\n(pcs)", "q.ty pcs"},
		{"DESCRIPTION", "description"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeHeader(c.in); got != c.want {
			t.Fatalf("NormalizeHeader(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeCodeHeader(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"L1 [Cat]", "l1cat"},
		{" L 2 ", "l2"},
		{"L3(sub)", "l3sub"},
	}
	for _, c := range cases {
		if got := NormalizeCodeHeader(c.in); got != c.want {
			t.Fatalf("NormalizeCodeHeader(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{" ab-01.2 ", "AB012"},
		{"X 017 03", "X01703"},
		{"***", ""},
	}
	for _, c := range cases {
		if got := NormalizeCode(c.in); got != c.want {
			t.Fatalf("NormalizeCode(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeDescription(t *testing.T) {
	t.Parallel()

	if got := NormalizeDescription("  Valvola   a SFERA  "); got != "valvola a sfera" {
		t.Fatalf("got %q", got)
	}
}

func TestParseNumericValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
	}{
		{"1.234,56", 1234.56},    // 欧式：逗号为小数点
		{"1,234.56", 1234.56},    // 英式：点为小数点
		{"1234,5", 1234.5},
		{"-12.5", -12.5},
		{"EUR 99,90", 99.9},
		{"9999999", 0},           // 哨兵值
		{"9999999999", 0},
		{"included", 0},
		{"Incl.", 0},
		{"incluso nel prezzo", 0},
		{"n/a", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := ParseNumericValue(c.in); got != c.want {
			t.Fatalf("ParseNumericValue(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	t.Parallel()

	if got := ParseQuantity(""); got != nil {
		t.Fatalf("empty quantity should be nil, got %v", *got)
	}
	if got := ParseQuantity("   "); got != nil {
		t.Fatalf("blank quantity should be nil, got %v", *got)
	}

	cases := []struct {
		in   string
		want float64
	}{
		{"12", 12},
		{"3 (pcs)", 3},
		{"2,5", 2.5},
		{"1.234,5", 1234.5},
		{"pcs 4", 4},
		{"5 %", 5}, // 杂字符残留时取首个数字子串
		{"5-6", 5}, // 区间写法取下界
		{" 7 ", 7},
	}
	for _, c := range cases {
		got := ParseQuantity(c.in)
		if got == nil {
			t.Fatalf("ParseQuantity(%q) = nil, want %v", c.in, c.want)
		}
		if *got != c.want {
			t.Fatalf("ParseQuantity(%q) = %v, want %v", c.in, *got, c.want)
		}
	}
}

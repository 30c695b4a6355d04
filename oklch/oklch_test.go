package oklch_test

import (
	"strings"
	"testing"

	"oklchify/oklch"
)

func TestIsHexColor(t *testing.T) {
	accept := []string{
		"#abc",
		"#abcd",
		"#aabbcc",
		"#aabbccdd",
		"#ABC",
		"#FF6347",
		"  #abc  ", // surrounding whitespace only is fine
		"\t#aabbcc\n",
	}
	for _, v := range accept {
		if !oklch.IsHexColor(v) {
			t.Errorf("IsHexColor(%q) = false, want true", v)
		}
	}

	reject := []string{
		"",
		"#",
		"#ab",
		"#abcde",
		"#abcdefa",   // 7 digits
		"#aabbccdde", // 9 digits
		"#abg",
		"url(#icon)",
		`"#tag"`,
		"'#abc'",
		"x#abc",
		"#abc x",
		"abc",
	}
	for _, v := range reject {
		if oklch.IsHexColor(v) {
			t.Errorf("IsHexColor(%q) = true, want false", v)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   oklch.Triple
		want string
	}{
		{oklch.Triple{L: 0, C: 0, H: 0}, "oklch(0 0 0)"},
		{oklch.Triple{L: 0.7, C: 0, H: 0}, "oklch(0.7 0 0)"},
		{oklch.Triple{L: 0.70000, C: 0.1, H: 240}, "oklch(0.7 0.1 240)"},
		{oklch.Triple{L: 0.69741, C: 0.19523, H: 40.2345}, "oklch(0.697 0.195 40.23)"},
		{oklch.Triple{L: 1, C: 0.0004, H: 359.999}, "oklch(1 0 360)"},
		{oklch.Triple{L: 0.123456, C: 0.9999, H: 0.005}, "oklch(0.123 1 0.01)"},
	}
	for _, tc := range tests {
		if got := oklch.Format(tc.in); got != tc.want {
			t.Errorf("Format(%+v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatStable(t *testing.T) {
	tr := oklch.Triple{L: 0.69741, C: 0.19523, H: 40.2345}
	if oklch.Format(tr) != oklch.Format(tr) {
		t.Error("Format() is not stable across calls")
	}
}

func TestConvertBlack(t *testing.T) {
	got, ok := oklch.ConvertValue("#000")
	if !ok {
		t.Fatal("ConvertValue(#000) failed")
	}
	if got != "oklch(0 0 0)" {
		t.Errorf("ConvertValue(#000) = %q, want %q", got, "oklch(0 0 0)")
	}
}

func TestConvertWhite(t *testing.T) {
	got, ok := oklch.ConvertValue("#ffffff")
	if !ok {
		t.Fatal("ConvertValue(#ffffff) failed")
	}
	// white is achromatic: lightness rounds to 1, chroma to 0
	if !strings.HasPrefix(got, "oklch(1 0 ") {
		t.Errorf("ConvertValue(#ffffff) = %q, want oklch(1 0 ...)", got)
	}
}

func TestConvertAlphaIgnored(t *testing.T) {
	full, ok := oklch.ConvertValue("#ff6347")
	if !ok {
		t.Fatal("ConvertValue(#ff6347) failed")
	}
	withAlpha, ok := oklch.ConvertValue("#ff6347ff")
	if !ok {
		t.Fatal("ConvertValue(#ff6347ff) failed")
	}
	if full != withAlpha {
		t.Errorf("alpha channel changed result: %q vs %q", full, withAlpha)
	}

	short, _ := oklch.ConvertValue("#abc")
	shortAlpha, _ := oklch.ConvertValue("#abcd")
	if short != shortAlpha {
		t.Errorf("short alpha channel changed result: %q vs %q", short, shortAlpha)
	}
}

func TestConvertDeterministic(t *testing.T) {
	for _, hex := range []string{"#ff6347", "#abc", "#3b82f6", "#fef2f2"} {
		first, ok1 := oklch.ConvertValue(hex)
		second, ok2 := oklch.ConvertValue(hex)
		if !ok1 || !ok2 || first != second {
			t.Errorf("ConvertValue(%q) not deterministic: %q vs %q", hex, first, second)
		}
	}
}

func TestConvertRanges(t *testing.T) {
	for _, hex := range []string{"#ff6347", "#abc", "#3b82f6", "#123456", "#fafafa"} {
		tr, err := oklch.Convert(hex)
		if err != nil {
			t.Fatalf("Convert(%q) error = %v", hex, err)
		}
		if tr.L < 0 || tr.L > 1 {
			t.Errorf("Convert(%q) lightness out of range: %v", hex, tr.L)
		}
		if tr.C < 0 {
			t.Errorf("Convert(%q) negative chroma: %v", hex, tr.C)
		}
		if tr.H < 0 || tr.H >= 360 {
			t.Errorf("Convert(%q) hue out of range: %v", hex, tr.H)
		}
	}
}

func TestConvertFailure(t *testing.T) {
	for _, v := range []string{"", "nope", "#xyz", "url(#icon)", "#ab"} {
		if _, err := oklch.Convert(v); err == nil {
			t.Errorf("Convert(%q) expected error", v)
		}
		if _, ok := oklch.ConvertValue(v); ok {
			t.Errorf("ConvertValue(%q) expected failure", v)
		}
	}
}

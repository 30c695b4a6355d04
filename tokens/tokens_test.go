package tokens_test

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"oklchify/tokens"
)

// fakeConvert keeps transformer tests independent from real color math.
func fakeConvert(hex string) (string, bool) {
	if hex == "#bad" {
		return "", false
	}
	return "oklch<" + hex + ">", true
}

func TestTransform_SortsAndPlacesBlock(t *testing.T) {
	src := `export const colors = {
	'--color-red-50': '#fef2f2',
	'--color-blue-500': '#3b82f6',
};
`
	want := `export const colors = {
	'--color-red-50': '#fef2f2',
	'--color-blue-500': '#3b82f6',

	// OKLCH equivalents generated from the hex values above, do not edit.
	'@supports (color: oklch(0 0 0))': {
		'--color-blue-500': 'oklch<#3b82f6>',
		'--color-red-50': 'oklch<#fef2f2>',
	},
};
`
	got, err := tokens.Transform([]byte(src), fakeConvert, zap.NewNop())
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if string(got) != want {
		t.Errorf("Transform() =\n%s\nwant\n%s", got, want)
	}
}

func TestTransform_AlreadyProcessed(t *testing.T) {
	src := []byte(`const colors = {
	'--a': '#abc',
};
`)
	first, err := tokens.Transform(src, fakeConvert, nil)
	if err != nil {
		t.Fatalf("first Transform() error = %v", err)
	}

	if _, err := tokens.Transform(first, fakeConvert, nil); !errors.Is(err, tokens.ErrAlreadyProcessed) {
		t.Errorf("second Transform() error = %v, want ErrAlreadyProcessed", err)
	}
}

func TestTransform_NothingToDo(t *testing.T) {
	src := []byte(`const sizes = {
	'--gap': '12px',
	'--radius': 'calc(1rem / 2)',
};
`)
	if _, err := tokens.Transform(src, fakeConvert, nil); !errors.Is(err, tokens.ErrNothingToDo) {
		t.Errorf("Transform() error = %v, want ErrNothingToDo", err)
	}
}

func TestTransform_LastOccurrenceWins(t *testing.T) {
	src := []byte(`const colors = {
	'--dup': '#111111',
	'--dup': '#222222',
};
`)
	got, err := tokens.Transform(src, fakeConvert, nil)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	out := string(got)
	if !strings.Contains(out, "'--dup': 'oklch<#222222>',") {
		t.Errorf("expected last occurrence to win, got:\n%s", out)
	}
	if strings.Contains(out, "oklch<#111111>") {
		t.Errorf("first occurrence leaked into output:\n%s", out)
	}
}

func TestTransform_ClosingBraceOnAnchorLine(t *testing.T) {
	src := []byte(`const c = { '--a': '#abc' };`)
	// the anchor line keeps its trailing space, the block lands just before
	// the closing brace
	want := "const c = { '--a': '#abc' " + `
	// OKLCH equivalents generated from the hex values above, do not edit.
	'@supports (color: oklch(0 0 0))': {
		'--a': 'oklch<#abc>',
	},
};`
	got, err := tokens.Transform(src, fakeConvert, nil)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if string(got) != want {
		t.Errorf("Transform() =\n%q\nwant\n%q", got, want)
	}
}

func TestTransform_DoubleQuotedPairs(t *testing.T) {
	src := []byte(`const colors = {
	"--brand": "#ff6347",
};
`)
	got, err := tokens.Transform(src, fakeConvert, nil)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if !strings.Contains(string(got), "'--brand': 'oklch<#ff6347>',") {
		t.Errorf("double quoted pair not picked up:\n%s", got)
	}
}

func TestTransform_ConversionFailuresDropped(t *testing.T) {
	src := []byte(`const colors = {
	'--broken': '#bad',
	'--fine': '#abc',
};
`)
	got, err := tokens.Transform(src, fakeConvert, nil)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	out := string(got)
	if strings.Contains(out, "--broken': 'oklch<") {
		t.Errorf("failed conversion should be dropped:\n%s", out)
	}
	if !strings.Contains(out, "'--fine': 'oklch<#abc>',") {
		t.Errorf("surviving conversion missing:\n%s", out)
	}
}

func TestTransform_AllConversionsFail(t *testing.T) {
	src := []byte(`const colors = {
	'--broken': '#bad',
};
`)
	if _, err := tokens.Transform(src, fakeConvert, nil); !errors.Is(err, tokens.ErrNothingToDo) {
		t.Errorf("Transform() error = %v, want ErrNothingToDo", err)
	}
}

func TestTransform_SurroundingBytesUntouched(t *testing.T) {
	prefix := "// header comment\nimport { x } from './x';\n\nconst colors = {\n\t'--a': '#abc',\n"
	suffix := "};\n\nexport default colors;\n"
	got, err := tokens.Transform([]byte(prefix+suffix), fakeConvert, nil)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	out := string(got)
	if !strings.HasPrefix(out, prefix) {
		t.Errorf("prefix bytes changed:\n%s", out)
	}
	if !strings.HasSuffix(out, suffix) {
		t.Errorf("suffix bytes changed:\n%s", out)
	}
}

// parser_test.go: tests for the tokenizer and parser.
//
// Copyright (c) 2026 The DrJson Authors
// SPDX-License-Identifier: MPL-2.0

package drjson

import "testing"

func mustParse(t *testing.T, ctx *Context, src string, flags ParseFlags) Value {
	t.Helper()
	v, err := ctx.Parse([]byte(src), flags)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return v
}

func TestParseObjectNumberScenario(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	doc := mustParse(t, ctx, "{foo: 123.4e12}", 0)
	v, err := ctx.ObjectGetStr(doc, "foo")
	if err != nil {
		t.Fatalf("ObjectGetStr: %v", err)
	}
	f, ok := v.AsNumber()
	if !ok {
		t.Fatalf("expected NUMBER, got %v", v.Kind())
	}
	if diff := f - 1.234e14; diff > 1 || diff < -1 {
		t.Errorf("got %v, want approx 1.234e14", f)
	}
}

func TestParseArrayLen(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	doc := mustParse(t, ctx, "[1,2,3]", 0)
	if ctx.Len(doc) != 3 {
		t.Errorf("Len() = %d, want 3", ctx.Len(doc))
	}
}

func TestParseDeleteThenKeysOrder(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	doc := mustParse(t, ctx, "{a:1,b:2,c:3}", 0)
	if _, _, err := ctx.ObjectDelete(doc, atomOf(t, ctx, "b")); err != nil {
		t.Fatal(err)
	}
	keys, _ := ctx.Keys(doc)
	want := []string{"a", "c"}
	if ctx.Len(keys) != len(want) {
		t.Fatalf("Len() = %d, want %d", ctx.Len(keys), len(want))
	}
	for i, w := range want {
		kv, _ := ctx.GetByIndex(keys, i)
		a, _ := kv.Atom()
		got, _ := ctx.Resolve(a)
		if string(got) != w {
			t.Errorf("key %d = %q, want %q", i, got, w)
		}
	}
}

func TestParseDuplicateKeyLastWriteWins(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	doc := mustParse(t, ctx, "{a:1,a:2}", 0)
	if ctx.Len(doc) != 1 {
		t.Fatalf("Len() = %d, want 1", ctx.Len(doc))
	}
	v, err := ctx.ObjectGetStr(doc, "a")
	if err != nil {
		t.Fatal(err)
	}
	i, ok := v.AsUint()
	if !ok || i != 2 {
		t.Errorf("get(a) = %v (ok=%v), want last-write-wins UINTEGER 2", i, ok)
	}
}

func TestParseColorLiteral(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	v := mustParse(t, ctx, "#f00", 0)
	u, ok := v.AsUint()
	if !ok {
		t.Fatalf("expected UINTEGER, got %v", v.Kind())
	}
	if u != 0xFFFF0000 {
		t.Errorf("#f00 = 0x%08X, want 0xFFFF0000", u)
	}
}

func TestParseColorLiteralForms(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	tests := []struct {
		src  string
		want uint64
	}{
		{"#f00", 0xFFFF0000},
		{"#000000", 0xFF000000},
		{"#ffffff", 0xFFFFFFFF},
		{"#ffffff00", 0x00FFFFFF},
	}
	for _, tt := range tests {
		v := mustParse(t, ctx, tt.src, 0)
		u, ok := v.AsUint()
		if !ok || u != tt.want {
			t.Errorf("%s = 0x%08X (ok=%v), want 0x%08X", tt.src, u, ok, tt.want)
		}
	}
}

func TestParseHexInteger(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	v := mustParse(t, ctx, "0x1A", 0)
	u, ok := v.AsUint()
	if !ok || u != 26 {
		t.Errorf("0x1A = %v (ok=%v), want 26", u, ok)
	}
}

func TestParseCommentsAndLineComment(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	doc := mustParse(t, ctx, "{/* c */ a // line\n : 1}", 0)
	v, err := ctx.ObjectGetStr(doc, "a")
	if err != nil {
		t.Fatal(err)
	}
	if u, ok := v.AsUint(); !ok || u != 1 {
		t.Errorf("get(a) = %v (ok=%v), want UINTEGER 1", u, ok)
	}
}

func TestParseNestedQuery(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	doc := mustParse(t, ctx, "{a:{b:{c:1}}}", 0)
	v, err := ctx.Query(doc, ".a.b.c")
	if err != nil {
		t.Fatal(err)
	}
	if u, ok := v.AsUint(); !ok || u != 1 {
		t.Errorf("query(.a.b.c) = %v (ok=%v), want UINTEGER 1", u, ok)
	}
}

func TestParseNegativeIndexQuery(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	doc := mustParse(t, ctx, "[10,20,30]", 0)
	v, err := ctx.Query(doc, "[-1]")
	if err != nil {
		t.Fatal(err)
	}
	if u, ok := v.AsUint(); !ok || u != 30 {
		t.Errorf("query([-1]) = %v (ok=%v), want UINTEGER 30", u, ok)
	}
}

func TestParseInternObjectsDeduplicatesIdenticalArrays(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	doc := mustParse(t, ctx, "{a:[1,2], b:[1,2]}", FlagInternObjects)
	a, err := ctx.ObjectGetStr(doc, "a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ctx.ObjectGetStr(doc, "b")
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Errorf("structurally identical arrays under INTERN_OBJECTS should share a handle: a=%v b=%v", a, b)
	}
}

func TestParseStringEscapes(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	v := mustParse(t, ctx, `"line\nbreak\t\"quoted\""`, 0)
	a, ok := v.Atom()
	if !ok {
		t.Fatalf("expected STRING, got %v", v.Kind())
	}
	got, _ := ctx.Resolve(a)
	want := "line\nbreak\t\"quoted\""
	if string(got) != want {
		t.Errorf("decoded string = %q, want %q", got, want)
	}
}

func TestParseBarewordString(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	v := mustParse(t, ctx, "hello-world", 0)
	a, ok := v.Atom()
	if !ok {
		t.Fatalf("expected STRING, got %v", v.Kind())
	}
	got, _ := ctx.Resolve(a)
	if string(got) != "hello-world" {
		t.Errorf("bareword = %q, want %q", got, "hello-world")
	}
}

func TestParseNumberLikeBarewordFallsBackToString(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	v := mustParse(t, ctx, "123abc", 0)
	if v.Kind() != KindString {
		t.Fatalf("Kind() = %v, want STRING", v.Kind())
	}
	a, _ := v.Atom()
	got, _ := ctx.Resolve(a)
	if string(got) != "123abc" {
		t.Errorf("got %q, want %q", got, "123abc")
	}
}

func TestParseNegativeAndSignedNumbers(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	tests := []struct {
		src  string
		kind Kind
	}{
		{"-3", KindInteger},
		{"+3", KindUInteger},
		{"3", KindUInteger},
		{"-3.5", KindNumber},
		{"3e2", KindNumber},
	}
	for _, tt := range tests {
		v := mustParse(t, ctx, tt.src, 0)
		if v.Kind() != tt.kind {
			t.Errorf("Parse(%q).Kind() = %v, want %v", tt.src, v.Kind(), tt.kind)
		}
	}
}

func TestParseTrueFalseNull(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	if v := mustParse(t, ctx, "true", 0); v.Kind() != KindBool {
		t.Errorf("true -> %v", v.Kind())
	} else if b, _ := v.AsBool(); !b {
		t.Error("true decoded false")
	}
	if v := mustParse(t, ctx, "false", 0); v.Kind() != KindBool {
		t.Errorf("false -> %v", v.Kind())
	}
	if v := mustParse(t, ctx, "null", 0); v.Kind() != KindNull {
		t.Errorf("null -> %v", v.Kind())
	}
}

func TestParseLiteralPrefixFallsBackToBareword(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	v := mustParse(t, ctx, "truthy", 0)
	if v.Kind() != KindString {
		t.Fatalf("Kind() = %v, want STRING", v.Kind())
	}
	a, _ := v.Atom()
	got, _ := ctx.Resolve(a)
	if string(got) != "truthy" {
		t.Errorf("got %q, want %q", got, "truthy")
	}
}

func TestParseBracelessObject(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	doc := mustParse(t, ctx, "a: 1, b: 2", FlagBracelessObject)
	if doc.Kind() != KindObject {
		t.Fatalf("Kind() = %v, want OBJECT", doc.Kind())
	}
	if ctx.Len(doc) != 2 {
		t.Errorf("Len() = %d, want 2", ctx.Len(doc))
	}
}

func TestParseUnexpectedEOFReturnsErrorValue(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	v, err := ctx.Parse([]byte("{a: 1"), 0)
	if err == nil {
		t.Fatal("expected an error for unterminated object")
	}
	if !v.IsError() {
		t.Fatalf("expected an ERROR value, got %v", v.Kind())
	}
	if v.ErrorCode() != CodeUnexpectedEOF {
		t.Errorf("ErrorCode() = %v, want CodeUnexpectedEOF", v.ErrorCode())
	}
}

func TestParseTooDeepRejectsExcessiveNesting(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDepth = 4
	ctx := NewContext(cfg)
	src := "[[[[[1]]]]]"
	_, err := ctx.Parse([]byte(src), 0)
	if !IsStructuralError(err) {
		t.Fatalf("expected a structural (too-deep) error, got %v", err)
	}
}

func TestParseNoCopyStringsAliasesInput(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	buf := []byte(`"alias-me"`)
	v, err := ctx.Parse(buf, FlagNoCopyStrings)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := v.Atom()
	got, _ := ctx.Resolve(a)
	if string(got) != "alias-me" {
		t.Fatalf("got %q", got)
	}
	buf[1] = 'X'
	got2, _ := ctx.Resolve(a)
	if got2[0] != 'X' {
		t.Error("NO_COPY_STRINGS should alias the input buffer, not duplicate it")
	}
}

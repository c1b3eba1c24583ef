package jsonutil

import "testing"

type doc struct {
	Name string `json:"name"`
}

func TestStripFences_Plain(t *testing.T) {
	in := []byte(`{"name":"x"}`)
	if got := string(StripFences(in)); got != `{"name":"x"}` {
		t.Fatalf("unexpected: %s", got)
	}
}

func TestStripFences_LanguageTag(t *testing.T) {
	in := []byte("```json\n{\"name\":\"x\"}\n```")
	if got := string(StripFences(in)); got != `{"name":"x"}` {
		t.Fatalf("unexpected: %s", got)
	}
}

func TestStripFences_NoTag(t *testing.T) {
	in := []byte("```\n{\"name\":\"x\"}\n```")
	if got := string(StripFences(in)); got != `{"name":"x"}` {
		t.Fatalf("unexpected: %s", got)
	}
}

func TestUnmarshalFlex_Fenced(t *testing.T) {
	var d doc
	if err := UnmarshalFlex([]byte("```json\n{\"name\":\"a\"}\n```"), &d); err != nil {
		t.Fatalf("UnmarshalFlex: %v", err)
	}
	if d.Name != "a" {
		t.Fatalf("got %q", d.Name)
	}
}

func TestUnmarshalFlex_DoubleEncoded(t *testing.T) {
	var d doc
	if err := UnmarshalFlex([]byte(`"{\"name\":\"b\"}"`), &d); err != nil {
		t.Fatalf("UnmarshalFlex: %v", err)
	}
	if d.Name != "b" {
		t.Fatalf("got %q", d.Name)
	}
}

func TestUnmarshalFlex_Garbage(t *testing.T) {
	var d doc
	if err := UnmarshalFlex([]byte("not json at all"), &d); err == nil {
		t.Fatal("expected error")
	}
}

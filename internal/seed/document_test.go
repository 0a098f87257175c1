package seed_test

import (
	"strings"
	"testing"

	"uamtta/internal/seed"
	"uamtta/pkg/domain"
)

func TestDecodeShapes(t *testing.T) {
	cases := []struct {
		name     string
		doc      seed.Document
		wantNext int
		wantLen  int
	}{
		{"yaml list", seed.Document{Format: seed.FormatYAML, Data: []byte("- kind: user\n  name: ada\n- id: 7\n  kind: user\n")}, 0, 2},
		{"yaml snapshot", seed.Document{Format: seed.FormatYAML, Data: []byte("next_id: 10\nrecords:\n  - id: 3\n    name: x\n")}, 10, 1},
		{"json list", seed.Document{Format: seed.FormatJSON, Data: []byte(`[{"id":1,"kind":"a"},{"kind":"b"}]`)}, 0, 2},
		{"json snapshot", seed.Document{Format: seed.FormatJSON, Data: []byte(`{"next_id":4,"records":[{"id":2}]}`)}, 4, 1},
		{"sniffed json", seed.Document{Data: []byte(` [{"name":"n"}]`)}, 0, 1},
		{"sniffed yaml", seed.Document{Data: []byte("- name: n\n")}, 0, 1},
		{"empty", seed.Document{Data: []byte("  \n")}, 0, 0},
		{"yaml null", seed.Document{Format: seed.FormatYAML, Data: []byte("~\n")}, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			snap, err := seed.Decode[*domain.Record](tc.doc)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if snap.NextID != tc.wantNext || len(snap.Entities) != tc.wantLen {
				t.Fatalf("unexpected snapshot next=%d len=%d", snap.NextID, len(snap.Entities))
			}
		})
	}
}

func TestDecodeRecordFields(t *testing.T) {
	doc := seed.Document{Format: seed.FormatYAML, Data: []byte(`
- id: 5
  kind: user
  name: ada
  fields:
    email: ada@example.com
  tags: [admin, ops]
`)}
	snap, err := seed.Decode[*domain.Record](doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r := snap.Entities[0]
	if r.ID != 5 || r.Kind != "user" || r.Name != "ada" || r.Fields["email"] != "ada@example.com" || len(r.Tags) != 2 {
		t.Fatalf("unexpected record %+v", r)
	}
}

func TestDecodeRejectsMalformedDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  seed.Document
		want string
	}{
		{"scalar", seed.Document{Name: "s.yaml", Format: seed.FormatYAML, Data: []byte("just text\n")}, "expected a record list"},
		{"null record", seed.Document{Name: "n.yaml", Format: seed.FormatYAML, Data: []byte("- name: a\n- ~\n")}, "record 1 is null"},
		{"bad json", seed.Document{Name: "b.json", Format: seed.FormatJSON, Data: []byte(`[{"id":"x"}]`)}, "decode b.json"},
		{"unknown format", seed.Document{Name: "u", Format: "toml", Data: []byte("a=1")}, "unsupported format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := seed.Decode[*domain.Record](tc.doc)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestFormatFor(t *testing.T) {
	cases := map[string]seed.Format{
		"records.json": seed.FormatJSON,
		"records.YAML": seed.FormatYAML,
		"a/b.yml":      seed.FormatYAML,
		"records":      seed.FormatAuto,
	}
	for name, want := range cases {
		if got := seed.FormatFor(name); got != want {
			t.Fatalf("FormatFor(%q) = %q, want %q", name, got, want)
		}
	}
}

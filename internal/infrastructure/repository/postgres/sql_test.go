package postgres

import "testing"

func TestEncodeJSONMap(t *testing.T) {
	t.Run("empty map encodes as empty object", func(t *testing.T) {
		if got := encodeJSONMap(nil); got != "{}" {
			t.Fatalf("unexpected encoding: %s", got)
		}
	})

	t.Run("round trips values", func(t *testing.T) {
		encoded := encodeJSONMap(map[string]any{"game": "csgo"})
		decoded := decodeJSONMap(encoded)
		if decoded["game"] != "csgo" {
			t.Fatalf("unexpected decoded map: %#v", decoded)
		}
	})
}

func TestDecodeJSONMap(t *testing.T) {
	t.Run("blank input decodes to nil", func(t *testing.T) {
		if got := decodeJSONMap("  "); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
	})

	t.Run("invalid input decodes to nil", func(t *testing.T) {
		if got := decodeJSONMap("{broken"); got != nil {
			t.Fatalf("expected nil, got %#v", got)
		}
	})
}

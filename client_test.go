package bloomd

import "testing"

func TestNormalizeAddr(t *testing.T) {
	golden := []struct {
		Host string
		Port int
		Want string
	}{
		{"", 0, "127.0.0.1:8673"},
		{"bloomd.internal", 0, "bloomd.internal:8673"},
		{"", 9999, "127.0.0.1:9999"},
		{"10.0.0.5", 9999, "10.0.0.5:9999"},
	}
	for _, gold := range golden {
		got := normalizeAddr(gold.Host, gold.Port)
		if got != gold.Want {
			t.Errorf("normalizeAddr(%q, %d) = %q, want %q", gold.Host, gold.Port, got, gold.Want)
		}
	}
}

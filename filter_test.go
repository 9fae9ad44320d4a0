package bloomd

import "testing"

func TestParseFilterSummary(t *testing.T) {
	fi, err := parseFilterSummary("foo 0.01 1048576 100000 2048")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fi.Name != "foo" || fi.Probability != 0.01 || fi.Storage != 1048576 ||
		fi.Capacity != 100000 || fi.Size != 2048 {
		t.Errorf("got %+v", fi)
	}
}

func TestParseFilterSummaryMalformed(t *testing.T) {
	for _, line := range []string{"foo 0.01 100", "foo bad 100 10 0"} {
		if _, err := parseFilterSummary(line); err == nil {
			t.Errorf("line %q: expected an error", line)
		}
	}
}

func TestAssignInfoFieldAllKnownKeys(t *testing.T) {
	fi := &FilterInfo{}
	lines := []string{
		"capacity 100", "checks 1", "check_hits 2", "check_misses 3",
		"page_ins 4", "page_outs 5", "probability 0.1", "sets 6",
		"set_hits 7", "set_misses 8", "size 9", "storage 10",
	}
	for _, line := range lines {
		if err := assignInfoField(fi, line); err != nil {
			t.Fatalf("line %q: unexpected error: %v", line, err)
		}
	}
	switch {
	case fi.Capacity != 100, fi.Checks != 1, fi.CheckHits != 2, fi.CheckMisses != 3,
		fi.PageIns != 4, fi.PageOuts != 5, fi.Probability != 0.1, fi.Sets != 6,
		fi.SetHits != 7, fi.SetMisses != 8, fi.Size != 9, fi.Storage != 10:
		t.Errorf("got %+v", fi)
	}
}

func TestAssignInfoFieldUnknownKeyGoesToExtra(t *testing.T) {
	fi := &FilterInfo{}
	if err := assignInfoField(fi, "sha1_hashes 3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fi.Extra["sha1_hashes"] != "3" {
		t.Errorf("Extra = %+v", fi.Extra)
	}
}

func TestAssignInfoFieldMalformedProducesDecodeError(t *testing.T) {
	fi := &FilterInfo{}
	for _, line := range []string{"capacity notanumber", "capacity", "probability notafloat"} {
		if err := assignInfoField(fi, line); err == nil {
			t.Errorf("line %q: expected an error, field should not silently stay zero", line)
		}
	}
}

func TestDecodeInfoPropagatesFieldError(t *testing.T) {
	cmd := &Command{ExpectedType: RespInfo}
	_, err := decodeFrame(cmd, Frame{Kind: FrameBlock, Lines: []string{"capacity notanumber"}})
	if err == nil {
		t.Fatal("expected decodeInfo to surface the malformed numeric field as an error")
	}
}

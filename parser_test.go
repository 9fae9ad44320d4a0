package bloomd

import (
	"reflect"
	"testing"
)

func TestParserSingleLines(t *testing.T) {
	p := NewParser()
	frames := p.Feed([]byte("Yes\nNo\n"))
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].Kind != FrameSingle || frames[0].Line != "Yes" {
		t.Errorf("frame 0 = %+v", frames[0])
	}
	if frames[1].Kind != FrameSingle || frames[1].Line != "No" {
		t.Errorf("frame 1 = %+v", frames[1])
	}
}

func TestParserSplitAcrossChunks(t *testing.T) {
	p := NewParser()
	if frames := p.Feed([]byte("Ye")); len(frames) != 0 {
		t.Fatalf("got %d frames from a partial line, want 0", len(frames))
	}
	frames := p.Feed([]byte("s\n"))
	if len(frames) != 1 || frames[0].Line != "Yes" {
		t.Fatalf("got %+v, want one frame \"Yes\"", frames)
	}
}

func TestParserBlock(t *testing.T) {
	p := NewParser()
	frames := p.Feed([]byte("START\nfoo 0.01 100 10 0\nbar 0.01 100 10 0\nEND\n"))
	if len(frames) != 1 {
		t.Fatalf("got %d frames, want 1", len(frames))
	}
	want := []string{"foo 0.01 100 10 0", "bar 0.01 100 10 0"}
	if frames[0].Kind != FrameBlock || !reflect.DeepEqual(frames[0].Lines, want) {
		t.Errorf("got %+v, want Lines=%v", frames[0], want)
	}
}

func TestParserBlockSplitAcrossChunks(t *testing.T) {
	p := NewParser()
	if frames := p.Feed([]byte("START\nfoo 0.01 100 10 0\n")); len(frames) != 0 {
		t.Fatalf("got %d frames before END, want 0", len(frames))
	}
	if frames := p.Feed([]byte("bar 0.01 100 10 0\n")); len(frames) != 0 {
		t.Fatalf("got %d frames before END, want 0", len(frames))
	}
	frames := p.Feed([]byte("END\n"))
	if len(frames) != 1 || len(frames[0].Lines) != 2 {
		t.Fatalf("got %+v, want one 2-line block", frames)
	}
}

func TestParserBlockThenSingleLine(t *testing.T) {
	p := NewParser()
	frames := p.Feed([]byte("START\nfoo 0.01 100 10 0\nEND\nYes\n"))
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2", len(frames))
	}
	if frames[0].Kind != FrameBlock {
		t.Errorf("frame 0 kind = %v, want FrameBlock", frames[0].Kind)
	}
	if frames[1].Kind != FrameSingle || frames[1].Line != "Yes" {
		t.Errorf("frame 1 = %+v", frames[1])
	}
}

func TestParserCRLF(t *testing.T) {
	p := NewParser()
	frames := p.Feed([]byte("Yes\r\nNo\r\n"))
	if len(frames) != 2 || frames[0].Line != "Yes" || frames[1].Line != "No" {
		t.Fatalf("got %+v", frames)
	}
}

func TestParserLargeBlockManyChunks(t *testing.T) {
	p := NewParser()
	p.Feed([]byte("START\n"))
	for i := 0; i < 5000; i++ {
		frames := p.Feed([]byte("filter-line 0.01 1 1 0\n"))
		if len(frames) != 0 {
			t.Fatalf("unexpected frame before END at iteration %d: %+v", i, frames)
		}
	}
	frames := p.Feed([]byte("END\n"))
	if len(frames) != 1 || len(frames[0].Lines) != 5000 {
		t.Fatalf("got %d frames, lines=%d, want 1 frame of 5000 lines", len(frames), len(frames[0].Lines))
	}
}

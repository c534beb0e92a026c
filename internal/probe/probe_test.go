package probe

import (
	"context"
	"testing"
)

const sampleJSON = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080, "r_frame_rate": "30000/1001", "duration": "12.345000"},
    {"index": 1, "codec_type": "audio", "codec_name": "aac"}
  ],
  "format": {"filename": "clip.mp4", "format_name": "mov,mp4,m4a,3gp,3g2,mj2", "duration": "12.345678", "size": "1048576", "bit_rate": "680000"}
}`

func TestDecodeDurationAndVideo(t *testing.T) {
	result, err := Decode([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ms, ok := result.DurationMs()
	if !ok || ms != 12346 {
		t.Fatalf("unexpected duration: %d (known=%v)", ms, ok)
	}

	v, ok := result.Video()
	if !ok {
		t.Fatalf("expected a video stream")
	}
	if v.Codec != "h264" || v.Width != 1920 || v.Height != 1080 {
		t.Fatalf("unexpected video info: %+v", v)
	}
	if v.FPS < 29.96 || v.FPS > 29.98 {
		t.Fatalf("unexpected fps: %f", v.FPS)
	}
}

func TestDurationFallsBackToVideoStream(t *testing.T) {
	result, err := Decode([]byte(`{"streams":[{"codec_type":"video","duration":"4.5"}],"format":{"duration":"N/A"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ms, ok := result.DurationMs()
	if !ok || ms != 4500 {
		t.Fatalf("expected stream duration fallback, got %d (known=%v)", ms, ok)
	}
}

func TestDurationUnknown(t *testing.T) {
	result, err := Decode([]byte(`{"streams":[],"format":{}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := result.DurationMs(); ok {
		t.Fatalf("expected unknown duration")
	}
	if _, ok := result.Video(); ok {
		t.Fatalf("expected no video stream")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode([]byte("not json")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "", "  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestParseFrameRate(t *testing.T) {
	if got := parseFrameRate("25/1"); got != 25 {
		t.Fatalf("unexpected 25/1: %f", got)
	}
	if got := parseFrameRate("24"); got != 24 {
		t.Fatalf("unexpected 24: %f", got)
	}
	if got := parseFrameRate("1/0"); got != 0 {
		t.Fatalf("unexpected 1/0: %f", got)
	}
}

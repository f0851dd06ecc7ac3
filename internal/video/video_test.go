package video

import "testing"

func TestEncoderForFourCC(t *testing.T) {
	tests := []struct {
		fourcc string
		want   string
	}{
		{"", "mpeg4"},
		{"mp4v", "mpeg4"},
		{"MP4V", "mpeg4"},
		{"xvid", "libxvid"},
		{"mjpg", "mjpeg"},
	}

	for _, tt := range tests {
		got, err := EncoderForFourCC(tt.fourcc)
		if err != nil {
			t.Errorf("EncoderForFourCC(%q) failed: %v", tt.fourcc, err)
			continue
		}
		if got != tt.want {
			t.Errorf("EncoderForFourCC(%q) = %q, want %q", tt.fourcc, got, tt.want)
		}
	}

	if _, err := EncoderForFourCC("bogus"); err == nil {
		t.Error("Unknown fourcc should fail")
	}
}

func TestMpeg4Quality(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 1},
		{1, 1},
		{23, 13},
		{51, 31},
		{100, 31},
	}

	for _, tt := range tests {
		if got := mpeg4Quality(tt.in); got != tt.want {
			t.Errorf("mpeg4Quality(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

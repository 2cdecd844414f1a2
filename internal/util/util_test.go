package util

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", "", 1, DefaultPageLimit},
		{"explicit", "3", "10", 3, 10},
		{"negative page", "-2", "10", 1, 10},
		{"limit capped", "1", "1000", 1, MaxPageLimit},
		{"garbage", "abc", "xyz", 1, DefaultPageLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}

	assert.Equal(t, 20, NewPagination("3", "10").Offset())
}

func TestErrorKinds(t *testing.T) {
	nf := NotFound("resource")
	assert.EqualError(t, nf, "resource not found")
	assert.True(t, IsNotFound(nf))
	assert.False(t, IsBadRequest(nf))

	br := BadRequestf("category %q already exists", "Go")
	assert.EqualError(t, br, `category "Go" already exists`)
	assert.True(t, IsBadRequest(br))
}

func TestValidateMimeType(t *testing.T) {
	pdf := bytes.NewReader([]byte("%PDF-1.4 some pdf body"))
	mime, err := ValidateMimeType(pdf, []string{MimePDF})
	require.NoError(t, err)
	assert.Equal(t, MimePDF, mime)

	html := strings.NewReader("<html><body>hi</body></html>")
	_, err = ValidateMimeType(html, []string{MimePDF, MimeImage})
	assert.Error(t, err)
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "passwd", SanitizeFileName("../../etc/passwd"))
	assert.Equal(t, "my-report.pdf", SanitizeFileName("my report.pdf"))
	assert.Equal(t, "evil.exe", SanitizeFileName(`C:\tmp\evil.exe`))
	assert.Equal(t, "file", SanitizeFileName(""))
}

func TestBuildObjectKey(t *testing.T) {
	key := BuildObjectKey("documents", "Spec.PDF")
	assert.True(t, strings.HasPrefix(key, "documents/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))
}

func TestIsVideoExt(t *testing.T) {
	assert.True(t, IsVideoExt("clip.MP4"))
	assert.False(t, IsVideoExt("notes.txt"))
}

func TestParseProbeOutput(t *testing.T) {
	out := `{"streams":[{"codec_type":"audio"},{"codec_type":"video","width":1280,"height":720}],
		"format":{"duration":"12.5","size":"2048","format_name":"mov,mp4,m4a"}}`
	info, err := parseProbeOutput(out, 10)
	require.NoError(t, err)
	assert.Equal(t, 12.5, info.Duration)
	assert.Equal(t, 1280, info.Width)
	assert.Equal(t, int64(2048), info.Size)
	assert.Equal(t, "mov", info.Format)

	_, err = parseProbeOutput("not json", 0)
	assert.Error(t, err)
}

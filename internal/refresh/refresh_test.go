package refresh

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRegistry = `# emoji-test.txt
# Date: 2023-06-05, 21:39:54 GMT
# group: Smileys & Emotion

# subgroup: face-smiling
1F600                                                  ; fully-qualified     # 😀 E1.0 grinning face
1F44D 1F3FD                                            ; fully-qualified     # 👍🏽 E1.0 thumbs up: medium skin tone

2648..2653                                             ; fully-qualified     # ♈ E0.6 zodiac
263A FE0F                                              ; fully-qualified     # ☺️ E0.6 smiling face
263A                                                   ; unqualified         # ☺ E0.6 smiling face
`

func TestParseSequence(t *testing.T) {
	seq, err := ParseSequence("1F468 200D 2764 FE0F 200D 1F468")
	require.NoError(t, err)
	assert.Equal(t, "\U0001F468\u200D\u2764\uFE0F\u200D\U0001F468", seq)

	seq, err = ParseSequence("1F468")
	require.NoError(t, err)
	assert.Equal(t, "\U0001F468", seq)

	_, err = ParseSequence("not-hex")
	assert.Error(t, err)
}

func TestParseRange(t *testing.T) {
	expanded, err := ParseRange("2648..2653")
	require.NoError(t, err)
	assert.Equal(t, []string{"♈", "♉", "♊", "♋", "♌", "♍", "♎", "♏", "♐", "♑", "♒", "♓"}, expanded)

	_, err = ParseRange("2653..2648")
	assert.Error(t, err)
	_, err = ParseRange("2648")
	assert.Error(t, err)
}

func TestParseStream(t *testing.T) {
	codes, err := ParseStream(strings.NewReader(sampleRegistry))
	require.NoError(t, err)

	assert.Equal(t, "grinning face", codes["😀"])
	assert.Equal(t, "thumbs up: medium skin tone", codes["👍🏽"])

	// The range line expands to one entry per code point, all sharing the
	// record's description.
	assert.Equal(t, "zodiac", codes["♈"])
	assert.Equal(t, "zodiac", codes["♓"])

	// Qualified and unqualified forms are both kept.
	assert.Equal(t, "smiling face", codes["☺️"])
	assert.Equal(t, "smiling face", codes["☺"])

	// 2 singles + 12 range entries + 2 qualification variants.
	assert.Len(t, codes, 16)
}

func TestParseStreamSkipsNoise(t *testing.T) {
	codes, err := ParseStream(strings.NewReader("# only comments\n\n# and blanks\n"))
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestSplitRecord(t *testing.T) {
	cps, desc, ok := splitRecord("1F600 ; fully-qualified # 😀 E1.0 grinning face")
	require.True(t, ok)
	assert.Equal(t, "1F600", cps)
	assert.Equal(t, "grinning face", desc)

	_, _, ok = splitRecord("no delimiters at all")
	assert.False(t, ok)
}

func TestDownload(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Write([]byte(sampleRegistry))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, ts.Client())
	codes, err := client.Download(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "grinning face", codes["😀"])
	assert.Len(t, codes, 16)
}

func TestDownloadClientErrorFailsFast(t *testing.T) {
	var hits int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.NotFound(w, r)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, ts.Client())
	_, err := client.Download(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, hits, "4xx responses are not retried")
}

func TestWriteCodes(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "data", "codes.json")
	codes := map[string]string{"😀": "grinning face"}

	require.NoError(t, WriteCodes(codes, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.JSONEq(t, `{"😀":"grinning face"}`, string(data))
}

func TestWriteTimestamp(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "timestamp.go")
	now := time.Date(2026, time.August, 24, 10, 41, 17, 482951123, time.UTC)

	require.NoError(t, WriteTimestamp(dest, now))

	src, err := os.ReadFile(dest)
	require.NoError(t, err)
	text := string(src)
	assert.Contains(t, text, "package dictionary")
	assert.Contains(t, text, "Code generated")
	// Truncated to microsecond precision.
	assert.Contains(t, text, "time.Date(2026, time.August, 24, 10, 41, 17, 482951000, time.UTC)")
}

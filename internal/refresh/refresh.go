// Package refresh implements the offline data pipeline that rebuilds the
// bundled emoji dictionary from the Unicode registry.
//
// It is never invoked by the matching core; a refresh replaces the embedded
// resource at build time, the running process does not reload.
package refresh

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultURL is the canonical emoji registry endpoint.
const DefaultURL = "https://unicode.org/Public/emoji/latest/emoji-test.txt"

const (
	maxFetchRetries   = 3
	initialRetryDelay = 2 * time.Second
	maxRetryDelay     = 30 * time.Second
)

// Client downloads and parses the emoji registry file.
type Client struct {
	httpClient *http.Client
	url        string
}

// NewClient creates a refresh client for the given registry URL. An empty
// url selects DefaultURL; a nil httpClient selects http.DefaultClient.
func NewClient(url string, httpClient *http.Client) *Client {
	if url == "" {
		url = DefaultURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, url: url}
}

// Download fetches the registry file and returns the sequence → description
// mapping, with range notation expanded and last-write-wins on duplicate
// sequences. Retries transient failures with exponential backoff.
func (c *Client) Download(ctx context.Context) (map[string]string, error) {
	body, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	codes, err := ParseStream(body)
	if err != nil {
		return nil, fmt.Errorf("parsing registry file %s: %w", c.url, err)
	}
	log.Info().Str("url", c.url).Int("sequences", len(codes)).Msg("Downloaded emoji registry")
	return codes, nil
}

func (c *Client) fetch(ctx context.Context) (io.ReadCloser, error) {
	var lastErr error
	currentDelay := initialRetryDelay

	for attempt := 0; attempt <= maxFetchRetries; attempt++ {
		if attempt > 0 {
			log.Warn().Str("url", c.url).Int("attempt", attempt).Dur("delay", currentDelay).Msg("Retrying registry fetch after error")
			select {
			case <-time.After(currentDelay):
				currentDelay *= 2
				if currentDelay > maxRetryDelay {
					currentDelay = maxRetryDelay
				}
			case <-ctx.Done():
				return nil, fmt.Errorf("fetch cancelled during retry backoff for %s: %w", c.url, ctx.Err())
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request for %s: %w", c.url, err)
		}
		req.Header.Set("User-Agent", "demoji-refresh/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("attempt %d: fetching %s: %w", attempt, c.url, err)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, lastErr
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			resp.Body.Close()
			lastErr = fmt.Errorf("attempt %d: fetching %s: status %d, body: %s", attempt, c.url, resp.StatusCode, string(bodyBytes))
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				return nil, lastErr
			}
			continue
		}
		return resp.Body, nil
	}
	return nil, fmt.Errorf("all %d fetch attempts failed for %s: last error: %w", maxFetchRetries+1, c.url, lastErr)
}

// ParseStream reads line-delimited registry records, skipping blank lines
// and # comments. Each record has the shape
//
//	code_points ; status # emoji Eversion description
//
// Records with range notation (start..end) expand to one entry per code
// point, all sharing the record's description.
func ParseStream(r io.Reader) (map[string]string, error) {
	codes := make(map[string]string)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cps, desc, ok := splitRecord(line)
		if !ok {
			continue
		}
		if strings.Contains(cps, "..") {
			expanded, err := ParseRange(cps)
			if err != nil {
				return nil, err
			}
			for _, seq := range expanded {
				codes[seq] = desc
			}
			continue
		}
		seq, err := ParseSequence(cps)
		if err != nil {
			return nil, err
		}
		codes[seq] = desc
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading registry stream: %w", err)
	}
	return codes, nil
}

// splitRecord carves one registry line into its code-point field and its
// trailing description. The description is whatever follows the rendered
// emoji and version tag after the # marker.
func splitRecord(line string) (cps, desc string, ok bool) {
	semi := strings.SplitN(line, ";", 2)
	if len(semi) != 2 {
		return "", "", false
	}
	pound := strings.SplitN(semi[1], "#", 2)
	if len(pound) != 2 {
		return "", "", false
	}
	fields := strings.SplitN(pound[1], " ", 4)
	return strings.TrimSpace(semi[0]), strings.TrimSpace(fields[len(fields)-1]), true
}

// ParseSequence converts space-separated hex code points ("1F468 200D 2695 FE0F")
// into the emoji string they encode.
func ParseSequence(s string) (string, error) {
	var b strings.Builder
	for _, cp := range strings.Fields(s) {
		n, err := strconv.ParseUint(cp, 16, 32)
		if err != nil {
			return "", fmt.Errorf("invalid code point %q: %w", cp, err)
		}
		b.WriteRune(rune(n))
	}
	return b.String(), nil
}

// ParseRange expands "start..end" hex notation into one single-code-point
// string per value, inclusive on both ends.
func ParseRange(s string) ([]string, error) {
	start, end, found := strings.Cut(s, "..")
	if !found {
		return nil, fmt.Errorf("invalid range %q", s)
	}
	lo, err := strconv.ParseUint(strings.TrimSpace(start), 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid range start %q: %w", start, err)
	}
	hi, err := strconv.ParseUint(strings.TrimSpace(end), 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid range end %q: %w", end, err)
	}
	if hi < lo {
		return nil, fmt.Errorf("invalid range %q: end before start", s)
	}
	out := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, string(rune(i)))
	}
	return out, nil
}

// WriteCodes writes the mapping as compact JSON to dest, creating parent
// directories as needed.
func WriteCodes(codes map[string]string, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dest, err)
	}
	data, err := json.Marshal(codes)
	if err != nil {
		return fmt.Errorf("encoding emoji codes: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	log.Info().Str("path", dest).Int("sequences", len(codes)).Msg("Wrote emoji data")
	return nil
}

const timestampTemplate = `// Code generated by "demoji refresh"; DO NOT EDIT.

package dictionary

import "time"

// lastDownloaded is the UTC instant at which codes.json was last refreshed
// from the Unicode registry. Rewritten by the refresh pipeline.
var lastDownloaded = time.Date(%d, time.%s, %d, %d, %d, %d, %d, time.UTC)

// LastDownloaded reports when the bundled emoji data was generated.
func LastDownloaded() time.Time {
	return lastDownloaded
}
`

// WriteTimestamp regenerates the dictionary timestamp source file with the
// given instant, truncated to microseconds like the registry snapshots.
func WriteTimestamp(dest string, now time.Time) error {
	now = now.UTC().Truncate(time.Microsecond)
	src := fmt.Sprintf(timestampTemplate,
		now.Year(), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond())
	if err := os.WriteFile(dest, []byte(src), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	log.Info().Str("path", dest).Time("timestamp", now).Msg("Stamped refresh timestamp")
	return nil
}

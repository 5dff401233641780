// Package deploycheck guards deployments: it verifies that no feed URL a
// subscriber may depend on would silently disappear from the freshly built
// output. It never mutates output; it only inspects and reports.
package deploycheck

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/prestomation/calendar-ripper-sub001/internal/manifest"
)

// ErrBreakingChange is returned when a previously published feed is missing
// from the new output and not on the allow-list. It is meant to fail a
// deployment pipeline.
var ErrBreakingChange = errors.New("breaking change detected")

// AllowlistFilename is the well-known file of intentionally retired feeds.
const AllowlistFilename = "allowed-removals.txt"

var validFilename = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

type Checker struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func New(timeout time.Duration, logger *slog.Logger) *Checker {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Checker{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Check compares the previously deployed manifest at deployedBaseURL with
// the freshly built outputDir.
//
// A 404 on the deployed manifest means first deployment and passes; any
// other fetch failure is advisory and also passes, because an
// infrastructure error must not block a deploy. A previously published
// feed missing from disk fails with ErrBreakingChange unless listed in the
// allow-list file.
func (c *Checker) Check(ctx context.Context, deployedBaseURL, outputDir, allowlistPath string) error {
	old, ok := c.fetchDeployedManifest(ctx, deployedBaseURL)
	if !ok {
		return nil
	}

	deployedURLs := validFilenames(old.ICSFilenames(), c.logger)

	newURLs, err := scanOutputDir(outputDir)
	if err != nil {
		return fmt.Errorf("scan output directory: %w", err)
	}

	allowed, err := loadAllowlist(allowlistPath)
	if err != nil {
		return fmt.Errorf("load allow-list: %w", err)
	}

	var breaking []string
	for _, name := range sortedKeys(deployedURLs) {
		if _, present := newURLs[name]; present {
			continue
		}
		if _, approved := allowed[name]; approved {
			c.logger.Info("approved removal", "file", name)
			continue
		}
		breaking = append(breaking, name)
	}

	for _, name := range sortedKeys(newURLs) {
		if _, present := deployedURLs[name]; !present {
			c.logger.Info("new calendar added", "file", name)
		}
	}

	if len(breaking) > 0 {
		for _, name := range breaking {
			c.logger.Error("previously published feed missing from new output", "file", name)
		}
		return fmt.Errorf("%w: %s", ErrBreakingChange, strings.Join(breaking, ", "))
	}

	c.logger.Info("deploy check passed",
		"deployed", len(deployedURLs),
		"new", len(newURLs),
	)
	return nil
}

// fetchDeployedManifest returns the old manifest and whether a comparison
// should proceed. All failure modes here are advisory passes.
func (c *Checker) fetchDeployedManifest(ctx context.Context, baseURL string) (manifest.Manifest, bool) {
	url := strings.TrimSuffix(baseURL, "/") + "/" + manifest.Filename

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Warn("skipping deploy check: bad deployed URL", "url", url, "error", err)
		return manifest.Manifest{}, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("skipping deploy check: manifest fetch failed", "url", url, "error", err)
		return manifest.Manifest{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Info("no deployed manifest found; treating as first deployment", "url", url)
		return manifest.Manifest{}, false
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("skipping deploy check: unexpected manifest status", "url", url, "status", resp.StatusCode)
		return manifest.Manifest{}, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("skipping deploy check: manifest read failed", "url", url, "error", err)
		return manifest.Manifest{}, false
	}

	m, err := manifest.Parse(body)
	if err != nil {
		c.logger.Warn("skipping deploy check: manifest parse failed", "url", url, "error", err)
		return manifest.Manifest{}, false
	}

	return m, true
}

// validFilenames keeps only safe feed filenames: *.ics with no traversal
// sequences. Invalid entries are dropped before any filesystem comparison.
func validFilenames(names []string, logger *slog.Logger) map[string]struct{} {
	out := make(map[string]struct{})
	for _, name := range names {
		if !strings.HasSuffix(name, ".ics") ||
			strings.Contains(name, "..") ||
			strings.ContainsAny(name, `/\`) ||
			!validFilename.MatchString(name) {
			logger.Warn("dropping invalid manifest filename", "file", name)
			continue
		}
		out[name] = struct{}{}
	}
	return out
}

// scanOutputDir lists the .ics files actually on disk. The new manifest is
// deliberately not consulted: it may legitimately omit a calendar that
// currently has no events while the file must still exist for subscribers.
func scanOutputDir(dir string) (map[string]struct{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".ics" {
			continue
		}
		out[entry.Name()] = struct{}{}
	}
	return out, nil
}

// loadAllowlist reads one filename per line; '#' comments and blank lines
// are ignored. A missing file means an empty allow-list.
func loadAllowlist(path string) (map[string]struct{}, error) {
	out := make(map[string]struct{})
	if path == "" {
		return out, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return out, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out[line] = struct{}{}
	}
	return out, scanner.Err()
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

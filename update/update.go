package update

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/medalytics/medalytics-cli/internal/constants"
)

const (
	releasesAPIURL = "https://api.github.com/repos/medalytics/medalytics-cli/releases/latest"
	repoURL        = "https://github.com/medalytics/medalytics-cli/releases"
	timeout        = 2 * time.Second
	cacheDuration  = 24 * time.Hour
	cacheFileName  = "update.json"

	ForceCheckEnvVar   = "MEDALYTICS_FORCE_UPDATE_CHECK"
	DisableCheckEnvVar = "MEDALYTICS_NO_UPDATE_CHECK"
)

// githubRelease is the part of the releases API response we read.
type githubRelease struct {
	TagName string `json:"tag_name"`
}

// cacheState stores the result of the last check.
type cacheState struct {
	LatestVersion string    `json:"latest_version"`
	LastCheck     time.Time `json:"last_check"`
}

// Checker compares the running version with the latest published release.
type Checker struct {
	ReleasesURL string
	CachePath   string
	Out         io.Writer
	Client      *http.Client
	Now         func() time.Time
	Force       bool
}

// NewChecker returns a Checker for the public release feed, caching under
// the user cache directory.
func NewChecker() *Checker {
	cachePath := ""
	if dir, err := os.UserCacheDir(); err == nil {
		cachePath = filepath.Join(dir, constants.AppName, cacheFileName)
	}
	return &Checker{
		ReleasesURL: releasesAPIURL,
		CachePath:   cachePath,
		Out:         os.Stderr,
		Client:      &http.Client{Timeout: timeout},
		Now:         time.Now,
		Force:       os.Getenv(ForceCheckEnvVar) == "1",
	}
}

// CheckForUpdates prints a notice to stderr when a newer release exists.
// Every failure is logged at debug level and otherwise ignored.
func CheckForUpdates(currentVersion string, logger *zerolog.Logger) {
	if os.Getenv(DisableCheckEnvVar) == "1" {
		logger.Debug().Msgf("%s is set, skipping update check", DisableCheckEnvVar)
		return
	}
	NewChecker().Check(currentVersion, logger)
}

// Check reports whether it printed an update notice.
func (c *Checker) Check(currentVersion string, logger *zerolog.Logger) bool {
	if currentVersion == "development" && !c.Force {
		logger.Debug().Msgf("Current version is 'development', skipping update check. (Set %s=1 to override)", ForceCheckEnvVar)
		return false
	}

	// Release builds carry "version v0.7.3".
	cleanedVersion := strings.TrimSpace(strings.Replace(currentVersion, "version", "", 1))
	currentSemVer, err := semver.NewVersion(cleanedVersion)
	if err != nil {
		logger.Debug().Msgf("Failed to parse current version (original: '%s', cleaned: '%s'): %v", currentVersion, cleanedVersion, err)
		return false
	}

	cache := c.loadCache(logger)
	now := c.Now()
	latest := cache.LatestVersion

	if c.Force || now.Sub(cache.LastCheck) > cacheDuration {
		fetched, err := c.fetchLatestVersion(logger)
		if err != nil {
			// Fall back to the cached version, if any.
			logger.Debug().Msgf("Failed to fetch latest version: %v", err)
		} else {
			latest = fetched
			c.saveCache(cacheState{LatestVersion: fetched, LastCheck: now}, logger)
		}
	} else {
		logger.Debug().Msgf("Using cached latest version: %s", latest)
	}

	if latest == "" {
		logger.Debug().Msg("No latest version available to compare.")
		return false
	}

	latestSemVer, err := semver.NewVersion(latest)
	if err != nil {
		logger.Debug().Msgf("Failed to parse latest tag '%s': %v", latest, err)
		return false
	}
	if !latestSemVer.GreaterThan(currentSemVer) {
		logger.Debug().Msgf("Running the latest version %s", currentSemVer)
		return false
	}

	_, _ = fmt.Fprintf(c.Out,
		"\nUpdate available! You're running %s, but %s is the latest.\n"+
			"Visit %s to upgrade.\n\n",
		currentSemVer.Original(), latestSemVer.Original(), repoURL)
	return true
}

func (c *Checker) loadCache(logger *zerolog.Logger) cacheState {
	if c.CachePath == "" {
		return cacheState{}
	}
	data, err := os.ReadFile(c.CachePath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Debug().Msgf("Failed to read update cache: %v", err)
		}
		return cacheState{}
	}

	var state cacheState
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Debug().Msgf("Update cache corrupted, ignoring: %v", err)
		return cacheState{}
	}
	return state
}

func (c *Checker) saveCache(state cacheState, logger *zerolog.Logger) {
	if c.CachePath == "" {
		return
	}
	data, err := json.Marshal(state)
	if err == nil {
		err = os.MkdirAll(filepath.Dir(c.CachePath), 0o750)
	}
	if err == nil {
		err = os.WriteFile(c.CachePath, data, 0o600)
	}
	if err != nil {
		logger.Debug().Msgf("Failed to save update cache: %v", err)
	}
}

func (c *Checker) fetchLatestVersion(logger *zerolog.Logger) (string, error) {
	logger.Debug().Msgf("Fetching latest release from %s", c.ReleasesURL)
	req, err := http.NewRequest(http.MethodGet, c.ReleasesURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", constants.AppName+"-update-check")
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("releases API returned non-200 status: %s", resp.Status)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("failed to decode releases API response: %w", err)
	}
	if release.TagName == "" {
		return "", errors.New("releases API response contained no tag_name")
	}
	return release.TagName, nil
}

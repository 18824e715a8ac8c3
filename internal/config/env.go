package config

import (
	"os"
	"strconv"
)

// Environment override keys. Every scalar that CI plausibly needs to vary per
// run has one; overrides apply after file parsing and before defaults.
const (
	EnvBundleID      = "HELPBUNDLER_BUNDLE_IDENTIFIER"
	EnvBundleName    = "HELPBUNDLER_BUNDLE_NAME"
	EnvBundleTitle   = "HELPBUNDLER_BUNDLE_TITLE"
	EnvBaseURL       = "HELPBUNDLER_BASE_URL"
	EnvContentRoot   = "HELPBUNDLER_CONTENT_ROOT"
	EnvAssetsRoot    = "HELPBUNDLER_ASSETS_ROOT"
	EnvGitURL        = "HELPBUNDLER_GIT_URL"
	EnvGitRef        = "HELPBUNDLER_GIT_REF"
	EnvGitToken      = "HELPBUNDLER_GIT_TOKEN"
	EnvOutputDir     = "HELPBUNDLER_OUTPUT_DIR"
	EnvTheme         = "HELPBUNDLER_THEME"
	EnvIncludeDrafts = "HELPBUNDLER_INCLUDE_DRAFTS"
	EnvScanWorkers   = "HELPBUNDLER_SCAN_WORKERS"
	EnvLogLevel      = "HELPBUNDLER_LOG_LEVEL"
	EnvLogFormat     = "HELPBUNDLER_LOG_FORMAT"
)

func (c *Config) applyEnvOverrides() {
	overrideString(EnvBundleID, &c.Bundle.Identifier)
	overrideString(EnvBundleName, &c.Bundle.Name)
	overrideString(EnvBundleTitle, &c.Bundle.Title)
	overrideString(EnvBaseURL, &c.Bundle.BaseURL)
	overrideString(EnvContentRoot, &c.Source.ContentRoot)
	overrideString(EnvAssetsRoot, &c.Source.AssetsRoot)
	overrideString(EnvGitURL, &c.Source.Git.URL)
	overrideString(EnvGitRef, &c.Source.Git.Ref)
	overrideString(EnvGitToken, &c.Source.Git.Token)
	overrideString(EnvOutputDir, &c.Output.Directory)
	overrideString(EnvTheme, &c.Theme.Name)
	overrideString(EnvLogLevel, &c.Logging.Level)
	overrideString(EnvLogFormat, &c.Logging.Format)

	if v, ok := os.LookupEnv(EnvIncludeDrafts); ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Scan.IncludeDrafts = parsed
		}
	}
	if v, ok := os.LookupEnv(EnvScanWorkers); ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Scan.Workers = parsed
		}
	}
}

func overrideString(key string, target *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*target = v
	}
}

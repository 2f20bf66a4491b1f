// Package srpo drives a browser session against the SRPO reporting
// application. The SRPO exposes no API; every interaction goes through the
// rendered DOM, synchronized by polling waits on visible structure.
package srpo

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"
	"golang.org/x/time/rate"

	"github.com/srpo-tools/srpo/config"
	"github.com/srpo-tools/srpo/models"
	"github.com/srpo-tools/srpo/parser"
)

// Client owns one browser session against the SRPO. It is not safe for
// concurrent use: the pipeline is a single linear sequence of navigation
// steps and no two records are ever open at once.
type Client struct {
	browser *rod.Browser
	page    *rod.Page
	nav     config.NavConfig

	// secret generates TOTP codes. The secret is carried rather than a
	// single pre-generated code because the SRPO can demand a fresh code
	// mid-session (e.g. for the region-wide individuals export).
	secret string

	// downloadDir is the private temporary directory export files land in.
	downloadDir string

	// outputDir, when set, receives a copy of each downloaded export
	// before it is deleted from downloadDir.
	outputDir string

	parser  *parser.ActivityParser
	limiter *rate.Limiter
}

// NewClient launches a browser and opens a fresh page against the SRPO.
// The caller must guarantee Close runs on all exit paths, including error
// paths; there is no automatic release on abnormal termination.
func NewClient(browserCfg config.BrowserConfig, navCfg config.NavConfig, secret, outputDir string) (*Client, error) {
	downloadDir, err := os.MkdirTemp("", "srpo-downloads-")
	if err != nil {
		return nil, models.NewPipelineError(
			models.ErrCodeBrowserCrash,
			"failed to create download directory",
			err,
		)
	}

	l := launcher.New().
		Headless(browserCfg.Headless).
		NoSandbox(browserCfg.NoSandbox)

	if browserCfg.BrowserBin != "" {
		l = l.Bin(browserCfg.BrowserBin)
	}

	l.Set(flags.Flag("window-size"), fmt.Sprintf("%d,%d", browserCfg.WindowWidth, browserCfg.WindowHeight))
	l.Set(flags.Flag("ignore-certificate-errors"))
	l.Set(flags.Flag("allow-running-insecure-content"))
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-gpu"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		_ = os.RemoveAll(downloadDir)
		return nil, models.NewPipelineError(
			models.ErrCodeBrowserCrash,
			"failed to launch browser",
			err,
		)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		_ = os.RemoveAll(downloadDir)
		return nil, models.NewPipelineError(
			models.ErrCodeBrowserCrash,
			"failed to connect to browser",
			err,
		)
	}

	// Exported spreadsheets must land in the private download directory.
	if err := (proto.BrowserSetDownloadBehavior{
		Behavior:     proto.BrowserSetDownloadBehaviorBehaviorAllow,
		DownloadPath: downloadDir,
	}).Call(browser); err != nil {
		browser.MustClose()
		_ = os.RemoveAll(downloadDir)
		return nil, models.NewPipelineError(
			models.ErrCodeBrowserCrash,
			"failed to configure download directory",
			err,
		)
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		browser.MustClose()
		_ = os.RemoveAll(downloadDir)
		return nil, models.NewPipelineError(
			models.ErrCodeBrowserCrash,
			"failed to create page",
			err,
		)
	}

	// Stealth must be installed before the first navigation to take effect.
	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", err)
	}

	// Label matching downstream is byte-fragile, so pin the UI language.
	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(map[string]string{"Accept-Language": "en-CA,en"}),
	}.Call(page)

	var limiter *rate.Limiter
	if navCfg.RecordsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(navCfg.RecordsPerSecond), 1)
	}

	return &Client{
		browser:     browser,
		page:        page,
		nav:         navCfg,
		secret:      secret,
		downloadDir: downloadDir,
		outputDir:   outputDir,
		parser:      parser.New(),
		limiter:     limiter,
	}, nil
}

// Close terminates the browser session and deletes the temporary download
// directory.
func (c *Client) Close() {
	if err := os.RemoveAll(c.downloadDir); err != nil {
		slog.Warn("failed to remove download directory", "dir", c.downloadDir, "error", err)
	}
	c.browser.MustClose()
	slog.Info("session closed")
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

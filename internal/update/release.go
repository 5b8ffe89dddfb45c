package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"runtime"
	"strings"
	"time"

	appErrors "studentdesk/internal/errors"
)

// Default configuration values.
const (
	DefaultBaseURL   = "https://api.github.com"
	DefaultTimeout   = 5 * time.Second
	DefaultUserAgent = "studentdesk-update-checker"

	// maxMetadataBytes bounds the metadata body we are willing to decode.
	maxMetadataBytes = 4 << 20
)

// Error variables for fetch failures. Every resolver error wraps ErrFetchFailed.
var (
	ErrFetchFailed = errors.New("fetch latest release failed")
	ErrRateLimited = fmt.Errorf("%w: rate limited", ErrFetchFailed)
)

// Asset is a single downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// ReleaseMetadata describes the latest published release.
// A fresh value is produced by every fetch and never mutated afterwards.
type ReleaseMetadata struct {
	Tag         string    `json:"tag_name"`
	Name        string    `json:"name"`
	Notes       string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
	Assets      []Asset   `json:"assets"`
}

// AssetMatcher reports whether an asset is the distributable for this platform.
type AssetMatcher func(Asset) bool

// HasSuffix matches assets whose name ends with suffix, ignoring case.
func HasSuffix(suffix string) AssetMatcher {
	suffix = strings.ToLower(strings.TrimSpace(suffix))
	return func(a Asset) bool {
		if suffix == "" {
			return false
		}
		return strings.HasSuffix(strings.ToLower(a.Name), suffix)
	}
}

// InstallerSuffix returns the file suffix of the distributable this
// application ships as on the current platform.
func InstallerSuffix() string {
	return installerSuffixFor(runtime.GOOS)
}

func installerSuffixFor(goos string) string {
	switch goos {
	case "windows":
		return ".exe"
	case "darwin":
		return ".dmg"
	default:
		return ".AppImage"
	}
}

// SelectAsset returns the first asset, in server order, accepted by match.
// The boolean is false when nothing qualifies; that is not an error.
func SelectAsset(meta *ReleaseMetadata, match AssetMatcher) (Asset, bool) {
	if meta == nil || match == nil {
		return Asset{}, false
	}
	return selectAsset(meta.Assets, match)
}

func selectAsset(assets []Asset, match AssetMatcher) (Asset, bool) {
	for _, a := range assets {
		if match(a) {
			return a, true
		}
	}
	return Asset{}, false
}

// Resolver fetches release metadata from a GitHub-compatible endpoint.
type Resolver struct {
	baseURL    string
	userAgent  string
	token      string
	httpClient *http.Client
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient sets a custom HTTP client for the resolver.
func WithHTTPClient(client *http.Client) ResolverOption {
	return func(r *Resolver) {
		if client != nil {
			r.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ResolverOption {
	return func(r *Resolver) {
		if timeout > 0 {
			client := *r.httpClient
			client.Timeout = timeout
			r.httpClient = &client
		}
	}
}

// WithBaseURL points the resolver at a different metadata endpoint.
func WithBaseURL(baseURL string) ResolverOption {
	return func(r *Resolver) {
		if s := strings.TrimRight(strings.TrimSpace(baseURL), "/"); s != "" {
			r.baseURL = s
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ResolverOption {
	return func(r *Resolver) {
		if ua != "" {
			r.userAgent = ua
		}
	}
}

// WithToken sets an optional bearer token, used to lift API rate limits.
func WithToken(token string) ResolverOption {
	return func(r *Resolver) {
		r.token = strings.TrimSpace(token)
	}
}

// NewResolver creates a resolver with a 5 second default timeout.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FetchLatest performs a single request for the latest release of owner/repo.
// There are no retries: transport errors, timeouts, non-200 responses and
// undecodable bodies are all returned as fetch_failed errors.
func (r *Resolver) FetchLatest(ctx context.Context, owner, repo string) (*ReleaseMetadata, error) {
	if strings.TrimSpace(owner) == "" || strings.TrimSpace(repo) == "" {
		return nil, fetchError("release owner and repo are required", nil)
	}

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", r.baseURL, neturl.PathEscape(owner), neturl.PathEscape(repo))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fetchError("create request", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", r.userAgent)
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fetchError("request "+url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0" {
		return nil, appErrors.New(appErrors.CodeFetchFailed, "release endpoint rate limit exhausted", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fetchError(fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	meta, err := decodeRelease(io.LimitReader(resp.Body, maxMetadataBytes))
	if err != nil {
		return nil, err
	}
	return meta, nil
}

func decodeRelease(body io.Reader) (*ReleaseMetadata, error) {
	var meta ReleaseMetadata
	if err := json.NewDecoder(body).Decode(&meta); err != nil {
		return nil, fetchError("decode release metadata", err)
	}
	if strings.TrimSpace(meta.Tag) == "" {
		return nil, fetchError("release metadata has no tag_name", nil)
	}
	return &meta, nil
}

func fetchError(msg string, cause error) error {
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return appErrors.New(appErrors.CodeFetchFailed, msg, ErrFetchFailed)
}

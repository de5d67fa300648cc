package preview

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Zuo-Peng/wa-export/internal/parse"
)

const (
	DefaultTimeout          = 15 * time.Second
	DefaultUserAgent        = "Mozilla/5.0 (wex/1.0)"
	DefaultMaxImageBytes    = 2_500_000
	DefaultMaxDocumentBytes = 800_000

	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

type Options struct {
	Client           *http.Client // overrides Timeout when set
	Timeout          time.Duration
	UserAgent        string
	MaxImageBytes    int64
	MaxDocumentBytes int64
	ThumbnailURL     string // fmt pattern taking the video ID
}

// Resolver turns URLs into previews. All results go through its Cache.
type Resolver struct {
	client       *http.Client
	userAgent    string
	maxImage     int64
	maxDocument  int64
	thumbnailURL string
	cache        *Cache
	log          *zap.Logger
}

func NewResolver(cache *Cache, opts Options, log *zap.Logger) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	if log == nil {
		log = zap.NewNop()
	}
	r := &Resolver{
		client:       opts.Client,
		userAgent:    opts.UserAgent,
		maxImage:     opts.MaxImageBytes,
		maxDocument:  opts.MaxDocumentBytes,
		thumbnailURL: opts.ThumbnailURL,
		cache:        cache,
		log:          log,
	}
	if r.client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		r.client = &http.Client{Timeout: timeout}
	}
	if r.userAgent == "" {
		r.userAgent = DefaultUserAgent
	}
	if r.maxImage <= 0 {
		r.maxImage = DefaultMaxImageBytes
	}
	if r.maxDocument <= 0 {
		r.maxDocument = DefaultMaxDocumentBytes
	}
	if r.thumbnailURL == "" {
		r.thumbnailURL = DefaultThumbnailURL
	}
	return r
}

func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Resolve returns the preview for rawURL. The first call per URL performs
// the fetch; every later call, concurrent or not, gets the same result.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*Preview, bool) {
	p := r.cache.do(rawURL, func() *Preview {
		return r.resolve(ctx, rawURL)
	})
	return p, p != nil
}

// ResolveAll warms the cache for urls using at most workers concurrent
// resolutions.
func (r *Resolver) ResolveAll(ctx context.Context, urls []string, workers int) {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				r.Resolve(ctx, u)
			}
		}()
	}
	for _, u := range urls {
		select {
		case jobs <- u:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}
	close(jobs)
	wg.Wait()
}

func (r *Resolver) resolve(ctx context.Context, rawURL string) *Preview {
	if id := VideoID(rawURL); id != "" {
		img, err := r.fetchImage(ctx, fmt.Sprintf(r.thumbnailURL, url.PathEscape(id)))
		if err != nil {
			r.log.Debug("thumbnail fetch failed", zap.String("url", rawURL), zap.Error(err))
		}
		return &Preview{URL: rawURL, Title: videoTitle, Image: img}
	}

	resp, err := r.get(ctx, rawURL)
	if err != nil {
		r.log.Debug("preview fetch failed", zap.String("url", rawURL), zap.Error(err))
		return nil
	}
	meta := parseMeta(resp.Body, resp.Header.Get("Content-Type"), r.maxDocument)
	resp.Body.Close()

	p := &Preview{
		URL:         rawURL,
		Title:       firstOf(meta, "og:title", "title"),
		Description: firstOf(meta, "og:description", "description"),
	}
	if p.Title == "" {
		p.Title = rawURL
	}

	if ref := firstOf(meta, "og:image", "twitter:image"); ref != "" {
		imgURL, err := resolveRef(rawURL, ref)
		if err == nil {
			p.Image, err = r.fetchImage(ctx, imgURL)
		}
		if err != nil {
			r.log.Debug("preview image skipped", zap.String("url", rawURL), zap.String("image", ref), zap.Error(err))
		}
	}
	return p
}

func (r *Resolver) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp, nil
}

// fetchImage downloads an image of at most maxImage bytes. The type comes
// from Content-Type, falling back to the URL's file extension.
func (r *Resolver) fetchImage(ctx context.Context, imgURL string) (*Image, error) {
	resp, err := r.get(ctx, imgURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxImage+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > r.maxImage {
		return nil, fmt.Errorf("image larger than %s", humanize.Bytes(uint64(r.maxImage)))
	}

	mt, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if !strings.HasPrefix(mt, "image/") {
		mt = ""
		if pu, err := url.Parse(imgURL); err == nil {
			mt = parse.GuessMIME(pu.Path)
		}
		if !strings.HasPrefix(mt, "image/") {
			return nil, fmt.Errorf("not an image: %q", resp.Header.Get("Content-Type"))
		}
	}
	r.log.Debug("image fetched", zap.String("url", imgURL), zap.String("size", humanize.Bytes(uint64(len(data)))))
	return &Image{MIME: mt, Data: data}, nil
}

func resolveRef(base, ref string) (string, error) {
	bu, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ru, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return bu.ResolveReference(ru).String(), nil
}

package server

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/RobsonDevCode/osvdesk/internal/clients"
	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	triagesources "github.com/RobsonDevCode/osvdesk/internal/constants/triageSources"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const externalFetchTimeout = 10 * time.Second

var proxyIdPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

// proxySources returns the built-in proxy source names with the configured
// ones layered on top.
func proxySources(configured map[string]configuration.ProxySource) map[string]configuration.ProxySource {
	sources := map[string]configuration.ProxySource{
		triagesources.ProxyCve: {UrlTemplate: triagesources.CveAwgTemplate},
		triagesources.ProxyNvd: {UrlTemplate: triagesources.NvdApiTemplate},
	}

	buckets := map[string]string{"test": triagesources.TestBucket, "prod": triagesources.ProdBucket}
	paths := map[string]string{
		"nvd":          triagesources.NvdOsvPathTemplate,
		"cve5":         triagesources.Cve5OsvPathTemplate,
		"osv":          triagesources.OsvOutputPathTemplate,
		"nvd-metrics":  triagesources.NvdMetricsPathTemplate,
		"cve5-metrics": triagesources.Cve5MetricsPathTemplate,
	}
	for env, bucket := range buckets {
		for name, path := range paths {
			sources[env+"-"+name] = configuration.ProxySource{Bucket: bucket, PathTemplate: path}
		}
	}

	for name, source := range configured {
		sources[name] = source
	}
	return sources
}

// handleProxy serves source data to the triage view. An external url takes
// priority over a bucket object; a named source is mapped onto one of the
// two first.
func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	target := query.Get("url")
	bucket := query.Get("bucket")
	path := query.Get("path")

	if sourceName := query.Get("source"); sourceName != "" && target == "" && bucket == "" {
		id := query.Get("id")
		source, ok := s.sources[sourceName]
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid source")
			return
		}
		if !proxyIdPattern.MatchString(id) {
			writeError(w, http.StatusBadRequest, "Invalid id")
			return
		}

		if source.UrlTemplate != "" {
			target = strings.ReplaceAll(source.UrlTemplate, triagesources.IdPlaceholder, id)
		} else {
			bucket = source.Bucket
			path = strings.ReplaceAll(source.PathTemplate, triagesources.IdPlaceholder, id)
		}
	}

	if target != "" {
		s.proxyExternal(w, r.Context(), target)
		return
	}

	if bucket == "" || path == "" {
		writeError(w, http.StatusBadRequest, "Missing bucket, path, or url parameters")
		return
	}
	s.proxyBlob(w, r.Context(), bucket, path)
}

func (s *Server) proxyExternal(w http.ResponseWriter, ctx context.Context, target string) {
	allowed := lo.SomeBy(s.settings.AllowedUrlPrefixes, func(prefix string) bool {
		return strings.HasPrefix(target, prefix)
	})
	if !allowed {
		writeError(w, http.StatusForbidden, "Invalid external URL")
		return
	}

	content, err := s.cache.GetOrCreate("url:"+target, s.settings.CacheTTL(), func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(ctx, externalFetchTimeout)
		defer cancel()
		return s.services.Upstream.Fetch(fetchCtx, target)
	})
	if err != nil {
		s.logger.Error("Error fetching from external API", zap.String("url", target), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Error fetching from external API")
		return
	}

	writeContent(w, content.([]byte))
}

func (s *Server) proxyBlob(w http.ResponseWriter, ctx context.Context, bucket string, path string) {
	if !lo.Contains(s.settings.AllowedBuckets, bucket) {
		writeError(w, http.StatusForbidden, "Invalid bucket")
		return
	}

	content, err := s.cache.GetOrCreate("gs://"+bucket+"/"+path, s.settings.CacheTTL(), func() (interface{}, error) {
		return s.services.Blobs.ReadBlob(ctx, bucket, path)
	})
	if errors.Is(err, clients.ErrBlobNotFound) {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		s.logger.Error("Error fetching from GCS", zap.String("bucket", bucket), zap.String("path", path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeContent(w, content.([]byte))
}

func writeContent(w http.ResponseWriter, content []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

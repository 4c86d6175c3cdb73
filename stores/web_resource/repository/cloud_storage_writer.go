package repository

import (
	"bytes"
	"io"
	"net/url"
	"path"
	"time"

	"cloud.google.com/go/storage"
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/base/log"
	"github.com/x-xyz/metagen/domain"
)

type CloudStorageWriterRepoCfg struct {
	Timeout    time.Duration
	Client     *storage.Client
	BucketName string
	// Prefix is prepended to every object name, e.g. a collection folder
	Prefix string
	// Url is the public base url of the bucket
	Url string
}

type cloudStorageWriterRepo struct {
	client     *storage.Client
	bucketName string
	prefix     string
	ctxTimeout time.Duration
	baseUrl    *url.URL
}

func NewCloudStorageWriterRepo(cfg *CloudStorageWriterRepoCfg) (domain.WebResourceWriterRepository, error) {
	baseUrl, err := url.Parse(cfg.Url)
	if err != nil {
		return nil, err
	}
	return &cloudStorageWriterRepo{
		client:     cfg.Client,
		bucketName: cfg.BucketName,
		prefix:     cfg.Prefix,
		ctxTimeout: cfg.Timeout,
		baseUrl:    baseUrl,
	}, nil
}

func (r *cloudStorageWriterRepo) objectName(p string) string {
	return path.Join(r.prefix, p)
}

func (r *cloudStorageWriterRepo) Store(c bCtx.Ctx, p string, body []byte, contentType string) (string, error) {
	name := r.objectName(p)
	contentPath, err := url.Parse(name)
	if err != nil {
		c.WithFields(log.Fields{
			"path": name,
			"err":  err,
		}).Error("failed to parse path")
		return "", err
	}

	ctx, cancel := bCtx.WithTimeout(c, r.ctxTimeout)
	defer cancel()
	w := r.client.Bucket(r.bucketName).Object(name).NewWriter(ctx)
	if len(contentType) > 0 {
		w.ObjectAttrs.ContentType = contentType
	}
	// metadata is regenerated in place, so caches must not keep old versions
	w.ObjectAttrs.CacheControl = "no-cache"
	if _, err := io.Copy(w, bytes.NewReader(body)); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to copy")
		return "", err
	}
	if err := w.Close(); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to close writer")
		return "", err
	}
	return r.baseUrl.ResolveReference(contentPath).String(), nil
}

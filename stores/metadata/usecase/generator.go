package usecase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/base/log"
	"github.com/x-xyz/metagen/base/metrics"
	"github.com/x-xyz/metagen/domain"
	"github.com/x-xyz/metagen/domain/collection"
	"github.com/x-xyz/metagen/domain/manifest"
	"github.com/x-xyz/metagen/domain/metadata"
	"github.com/x-xyz/metagen/domain/trait"
	"go.uber.org/multierr"
	"golang.org/x/xerrors"
)

const (
	DefaultAssetsDir   = "assets"
	DefaultDynamicFile = "dynamicAttributes.json"
	DefaultDelay       = 10 * time.Millisecond
)

type GeneratorCfg struct {
	ConfigRepo   collection.Repository
	ManifestRepo manifest.Repository
	Classifier   trait.Classifier
	Writer       domain.WebResourceWriterRepository
	Progress     metadata.ProgressReporter
	Metrics      metrics.Service
	// IndexWriter stores the asset index. Defaults to Writer.
	IndexWriter domain.WebResourceWriterRepository

	AssetsDir   string
	DynamicFile string
	// IndexFile is the path of the asset index. Empty disables it.
	IndexFile string
	// Delay is the pause between two items. Zero disables it.
	Delay time.Duration
	// RejectDuplicates fails the run when two records share a token id.
	// Otherwise the later record overwrites the earlier output.
	RejectDuplicates bool
}

type generator struct {
	configRepo   collection.Repository
	manifestRepo manifest.Repository
	classifier   trait.Classifier
	writer       domain.WebResourceWriterRepository
	progress     metadata.ProgressReporter
	metrics      metrics.Service
	indexWriter  domain.WebResourceWriterRepository

	assetsDir        string
	dynamicFile      string
	indexFile        string
	delay            time.Duration
	rejectDuplicates bool
}

func NewGenerator(cfg *GeneratorCfg) metadata.Generator {
	g := &generator{
		configRepo:       cfg.ConfigRepo,
		manifestRepo:     cfg.ManifestRepo,
		classifier:       cfg.Classifier,
		writer:           cfg.Writer,
		progress:         cfg.Progress,
		metrics:          cfg.Metrics,
		indexWriter:      cfg.IndexWriter,
		assetsDir:        cfg.AssetsDir,
		dynamicFile:      cfg.DynamicFile,
		indexFile:        cfg.IndexFile,
		delay:            cfg.Delay,
		rejectDuplicates: cfg.RejectDuplicates,
	}
	if g.progress == nil {
		g.progress = NewLogProgressReporter()
	}
	if g.metrics == nil {
		g.metrics = metrics.New("metagen", &metrics.LogClient{})
	}
	if g.indexWriter == nil {
		g.indexWriter = g.writer
	}
	if g.assetsDir == "" {
		g.assetsDir = DefaultAssetsDir
	}
	if g.dynamicFile == "" {
		g.dynamicFile = DefaultDynamicFile
	}
	return g
}

func (g *generator) Generate(c bCtx.Ctx) (*metadata.Report, error) {
	defer g.metrics.BumpTime("generate.time").End()

	report := &metadata.Report{RunId: uuid.NewString(), Locations: []string{}}
	c = bCtx.WithValue(c, "runId", report.RunId)

	config, err := g.configRepo.Get(c)
	if err != nil {
		c.WithField("err", err).Error("configRepo.Get failed")
		return nil, err
	}
	items, err := g.manifestRepo.Get(c)
	if err != nil {
		c.WithField("err", err).Error("manifestRepo.Get failed")
		return nil, err
	}
	if err := g.checkDuplicates(c, items); err != nil {
		return nil, err
	}

	builder := NewBuilder(&BuilderCfg{
		Config:     config,
		Classifier: g.classifier,
	})

	g.progress.Report(c, "Generating assets folder...")
	if d, ok := g.writer.(domain.WebResourceDirectoryRepository); ok {
		if _, err := d.EnsureDir(c, g.assetsDir); err != nil {
			c.WithFields(log.Fields{"dir": g.assetsDir, "err": err}).Error("writer.EnsureDir failed")
			return nil, err
		}
	}

	dynamics := make([]*metadata.DynamicData, 0, len(items))
	index := &metadata.AssetIndex{RunId: report.RunId, Assets: []metadata.AssetLocation{}}
	indexed := map[int64]int{}
	for i, record := range items {
		ic := bCtx.WithValues(c, map[string]interface{}{
			"tokenId":    record.TokenId,
			"fileNumber": record.FileNumber(),
		})
		if err := ic.Err(); err != nil {
			ic.WithField("err", err).Warn("generation aborted")
			return report, err
		}

		res, err := builder.Build(ic, record)
		if err != nil {
			ic.WithField("err", err).Error("builder.Build failed")
			return report, err
		}

		p := path.Join(g.assetsDir, fmt.Sprintf("%d.json", res.FileNumber))
		g.progress.Report(ic, fmt.Sprintf("Generating asset metadata '%s'", p))

		body, err := encodeIndent(res.Token)
		if err != nil {
			ic.WithField("err", err).Error("failed to encode token")
			return report, err
		}
		loc, err := g.writer.Store(ic, p, body, domain.ContentTypeJson)
		if err != nil {
			ic.WithFields(log.Fields{"path": p, "err": err}).Error("writer.Store failed")
			return report, xerrors.Errorf("store %s: %w", p, err)
		}
		ic.WithField("location", loc).Debug("asset stored")

		asset := metadata.AssetLocation{FileNumber: res.FileNumber, TokenId: record.TokenId, Path: p, Uri: loc}
		if j, ok := indexed[res.FileNumber]; ok {
			index.Assets[j] = asset
		} else {
			indexed[res.FileNumber] = len(index.Assets)
			index.Assets = append(index.Assets, asset)
		}

		dynamics = append(dynamics, res.DynamicData)
		report.Items++
		report.Stats.Add(res.Stats)
		report.Locations = append(report.Locations, loc)
		g.metrics.BumpSum("item.generated", 1)
		g.metrics.BumpSum("attribute.static", float64(res.Stats.Static))
		g.metrics.BumpSum("attribute.dynamic", float64(res.Stats.Dynamic))

		if i < len(items)-1 {
			if err := bCtx.Sleep(ic, g.delay); err != nil {
				ic.WithField("err", err).Warn("generation aborted")
				return report, err
			}
		}
	}

	body, err := encodeCompact(dynamics)
	if err != nil {
		c.WithField("err", err).Error("failed to encode dynamic attributes")
		return report, err
	}
	loc, err := g.writer.Store(c, g.dynamicFile, body, domain.ContentTypeJson)
	if err != nil {
		c.WithFields(log.Fields{"path": g.dynamicFile, "err": err}).Error("writer.Store failed")
		return report, xerrors.Errorf("store %s: %w", g.dynamicFile, err)
	}
	report.Locations = append(report.Locations, loc)
	index.DynamicAttributes = metadata.DynamicLocation{Path: g.dynamicFile, Uri: loc}

	if g.indexFile != "" {
		loc, err := g.storeIndex(c, index)
		if err != nil {
			return report, err
		}
		report.IndexLocation = loc
	}

	c.WithFields(log.Fields{
		"items":    report.Items,
		"static":   report.Stats.Static,
		"dynamic":  report.Stats.Dynamic,
		"excluded": report.Stats.Excluded,
		"sentinel": report.Stats.Sentinel,
	}).Info("generation done")
	return report, nil
}

func (g *generator) checkDuplicates(c bCtx.Ctx, items manifest.Manifest) error {
	dups := items.DuplicateTokenIds()
	if len(dups) == 0 {
		return nil
	}
	if !g.rejectDuplicates {
		c.WithField("tokenIds", dups).Warn("duplicate token ids, later records overwrite earlier outputs")
		return nil
	}
	var err error
	for _, id := range dups {
		err = multierr.Append(err, xerrors.Errorf("tokenId %d: %w", id, domain.ErrDuplicateTokenId))
	}
	c.WithFields(log.Fields{"tokenIds": dups, "err": err}).Error("duplicate token ids")
	return err
}

func (g *generator) storeIndex(c bCtx.Ctx, index *metadata.AssetIndex) (string, error) {
	body, err := encodeIndent(index)
	if err != nil {
		c.WithField("err", err).Error("failed to encode asset index")
		return "", err
	}
	loc, err := g.indexWriter.Store(c, g.indexFile, body, domain.ContentTypeJson)
	if err != nil {
		c.WithFields(log.Fields{"path": g.indexFile, "err": err}).Error("indexWriter.Store failed")
		return "", xerrors.Errorf("store %s: %w", g.indexFile, err)
	}
	c.WithFields(log.Fields{"path": g.indexFile, "location": loc}).Info("asset index stored")
	return loc, nil
}

// encodeIndent writes v with two space indentation and without escaping html characters.
func encodeIndent(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func encodeCompact(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

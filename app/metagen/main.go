package main

import (
	"io"
	"net/http"
	"os"
	"strings"
	"syscall"

	"cloud.google.com/go/storage"
	"github.com/bwmarrin/discordgo"
	ipfsapi "github.com/ipfs/go-ipfs-api"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	bCtx "github.com/x-xyz/metagen/base/ctx"
	"github.com/x-xyz/metagen/base/log"
	"github.com/x-xyz/metagen/base/metrics"
	bValidator "github.com/x-xyz/metagen/base/validator"
	"github.com/x-xyz/metagen/domain"
	"github.com/x-xyz/metagen/domain/metadata"
	"github.com/x-xyz/metagen/service/pinata"
	collectionRepository "github.com/x-xyz/metagen/stores/collection/repository"
	manifestRepository "github.com/x-xyz/metagen/stores/manifest/repository"
	metadataUsecase "github.com/x-xyz/metagen/stores/metadata/usecase"
	traitRepository "github.com/x-xyz/metagen/stores/trait/repository"
	traitUsecase "github.com/x-xyz/metagen/stores/trait/usecase"
	webresourceRepository "github.com/x-xyz/metagen/stores/web_resource/repository"
	"golang.org/x/xerrors"
	"google.golang.org/api/option"
)

const (
	backendFs     = "fs"
	backendGcs    = "gcs"
	backendIpfs   = "ipfs"
	backendPinata = "pinata"

	progressLog     = "log"
	progressDiscord = "discord"

	defaultIndexFile = "assetIndex.json"
)

func init() {
	pflag.String("config", "config.json", "collection config file (json or yaml)")
	pflag.String("manifest", "manifest.json", "trait manifest file")
	pflag.String("out", ".", "output directory of the fs backend")
	pflag.String("backend", backendFs, "output backend: fs, gcs, ipfs or pinata")
	pflag.Duration("delay", metadataUsecase.DefaultDelay, "pause between two items")
	pflag.Bool("debug", false, "development logging")
	pflag.Parse()

	// METAGEN_PINATA_APIKEY overrides pinata.apiKey
	viper.SetEnvPrefix("metagen")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("manifest.rejectDuplicates", true)
	viper.SetDefault("output.assetsDir", metadataUsecase.DefaultAssetsDir)
	viper.SetDefault("output.dynamicFile", metadataUsecase.DefaultDynamicFile)
	viper.SetDefault("progress.backend", progressLog)
	viper.SetDefault("progress.discord.every", 1)
	viper.SetDefault("gcs.timeout", "30s")
	viper.SetDefault("ipfs.api", "localhost:5001")
	viper.SetDefault("ipfs.timeout", "30s")
	viper.SetDefault("pinata.endpoint", pinata.DefaultEndpoint)
	viper.SetDefault("pinata.timeout", "30s")

	mustBind("manifest.path", "manifest")
	mustBind("output.dir", "out")
	mustBind("output.backend", "backend")
	mustBind("output.delay", "delay")
	mustBind("debug", "debug")

	if err := viper.BindPFlag("config", pflag.Lookup("config")); err != nil {
		panic(err)
	}
	viper.SetConfigFile(viper.GetString("config"))
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	if err := log.Init(viper.GetBool("debug")); err != nil {
		panic(err)
	}
	if viper.GetBool("debug") {
		log.Log().Info("metagen RUN on DEBUG mode")
	}
}

func mustBind(key, flag string) {
	if err := viper.BindPFlag(key, pflag.Lookup(flag)); err != nil {
		panic(err)
	}
}

func main() {
	code := run()
	log.Sync()
	os.Exit(code)
}

func run() int {
	ctx, stop := bCtx.WithSignal(bCtx.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := viper.GetString("output.backend")
	manifestPath := viper.GetString("manifest.path")
	outputDir := viper.GetString("output.dir")
	delay := viper.GetDuration("output.delay")
	ctx.WithFields(log.Fields{
		"config":                    viper.ConfigFileUsed(),
		"manifest.path":             manifestPath,
		"manifest.rejectDuplicates": viper.GetBool("manifest.rejectDuplicates"),
		"output.backend":            backend,
		"output.dir":                outputDir,
		"output.assetsDir":          viper.GetString("output.assetsDir"),
		"output.dynamicFile":        viper.GetString("output.dynamicFile"),
		"output.delay":              delay,
		"output.indexFile":          indexFile(backend),
		"progress.backend":          viper.GetString("progress.backend"),
	}).Info("config")

	statsClient, err := metrics.NewClient(viper.GetString("datadog_host"))
	if err != nil {
		ctx.WithField("err", err).Error("metrics.NewClient failed")
		return 1
	}
	if closer, ok := statsClient.(io.Closer); ok {
		defer closer.Close()
	}
	metricsService := metrics.New("metagen", statsClient, metrics.WithTags("backend", backend))

	validator := bValidator.New()
	rules, err := traitRepository.NewViperRulesRepo(viper.GetViper(), validator).Get(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("rulesRepo.Get failed")
		return 1
	}

	writer, err := newWriter(ctx, backend, outputDir)
	if err != nil {
		ctx.WithFields(log.Fields{"backend": backend, "err": err}).Error("newWriter failed")
		return 1
	}

	progress, err := newProgressReporter()
	if err != nil {
		ctx.WithField("err", err).Error("newProgressReporter failed")
		return 1
	}

	generator := metadataUsecase.NewGenerator(&metadataUsecase.GeneratorCfg{
		ConfigRepo: collectionRepository.NewViperConfigRepo(&collectionRepository.ViperConfigRepoCfg{
			Viper:     viper.GetViper(),
			Validator: validator,
		}),
		ManifestRepo: manifestRepository.NewJsonFileRepo(&manifestRepository.JsonFileRepoCfg{
			Fs:        afero.NewOsFs(),
			Path:      manifestPath,
			Validator: validator,
		}),
		Classifier:       traitUsecase.NewClassifierFromRules(*rules),
		Writer:           writer,
		Progress:         progress,
		Metrics:          metricsService,
		IndexWriter:      newIndexWriter(backend, outputDir, writer),
		AssetsDir:        viper.GetString("output.assetsDir"),
		DynamicFile:      viper.GetString("output.dynamicFile"),
		IndexFile:        indexFile(backend),
		Delay:            delay,
		RejectDuplicates: viper.GetBool("manifest.rejectDuplicates"),
	})

	report, err := generator.Generate(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("generator.Generate failed")
		return 1
	}
	ctx.WithFields(log.Fields{
		"runId":    report.RunId,
		"items":    report.Items,
		"static":   report.Stats.Static,
		"dynamic":  report.Stats.Dynamic,
		"excluded": report.Stats.Excluded,
		"sentinel": report.Stats.Sentinel,
		"index":    report.IndexLocation,
	}).Info("metadata generated")
	return 0
}

func newWriter(ctx bCtx.Ctx, backend, outputDir string) (domain.WebResourceWriterRepository, error) {
	switch backend {
	case backendFs:
		return webresourceRepository.NewFsWriterRepo(&webresourceRepository.FsWriterRepoCfg{
			Fs:      afero.NewOsFs(),
			BaseDir: outputDir,
		}), nil

	case backendGcs:
		opts := []option.ClientOption{}
		if endpoint := viper.GetString("gcs.endpoint"); endpoint != "" {
			opts = append(opts, option.WithEndpoint(endpoint), option.WithoutAuthentication())
		}
		storageClient, err := storage.NewClient(ctx, opts...)
		if err != nil {
			ctx.WithField("err", err).Error("storage.NewClient failed")
			return nil, err
		}
		return webresourceRepository.NewCloudStorageWriterRepo(&webresourceRepository.CloudStorageWriterRepoCfg{
			Timeout:    viper.GetDuration("gcs.timeout"),
			Client:     storageClient,
			BucketName: viper.GetString("gcs.bucket"),
			Prefix:     viper.GetString("gcs.prefix"),
			Url:        viper.GetString("gcs.url"),
		})

	case backendIpfs:
		shell := ipfsapi.NewShell(viper.GetString("ipfs.api"))
		return webresourceRepository.NewIpfsNodeWriterRepo(shell, viper.GetDuration("ipfs.timeout")), nil

	case backendPinata:
		pinataService := pinata.New(&pinata.Cfg{
			ApiKey:     viper.GetString("pinata.apiKey"),
			ApiSecret:  viper.GetString("pinata.apiSecret"),
			Endpoint:   viper.GetString("pinata.endpoint"),
			HttpClient: &http.Client{Timeout: viper.GetDuration("pinata.timeout")},
		})
		return webresourceRepository.NewPinataWriterRepo(pinataService, pinata.CidVersion(viper.GetInt("pinata.cidVersion"))), nil
	}
	return nil, xerrors.Errorf("%s: %w", backend, domain.ErrUnsupportedBackend)
}

// indexFile defaults to an index for the content addressed backends, whose
// locations cannot be derived from the file number.
func indexFile(backend string) string {
	if viper.IsSet("output.indexFile") {
		return viper.GetString("output.indexFile")
	}
	switch backend {
	case backendIpfs, backendPinata:
		return defaultIndexFile
	}
	return ""
}

// newIndexWriter keeps the index of a content addressed run on local disk, next to where
// the fs backend would have put the outputs.
func newIndexWriter(backend, outputDir string, writer domain.WebResourceWriterRepository) domain.WebResourceWriterRepository {
	switch backend {
	case backendIpfs, backendPinata:
		return webresourceRepository.NewFsWriterRepo(&webresourceRepository.FsWriterRepoCfg{
			Fs:      afero.NewOsFs(),
			BaseDir: outputDir,
		})
	}
	return writer
}

func newProgressReporter() (metadata.ProgressReporter, error) {
	switch backend := viper.GetString("progress.backend"); backend {
	case progressLog:
		return metadataUsecase.NewLogProgressReporter(), nil
	case progressDiscord:
		session, err := discordgo.New("Bot " + viper.GetString("progress.discord.token"))
		if err != nil {
			return nil, err
		}
		return metadataUsecase.NewDiscordProgressReporter(&metadataUsecase.DiscordProgressReporterCfg{
			Sender:    session,
			ChannelId: viper.GetString("progress.discord.channelId"),
			Every:     viper.GetInt("progress.discord.every"),
		}), nil
	default:
		return nil, xerrors.Errorf("progress %s: %w", backend, domain.ErrUnsupportedBackend)
	}
}

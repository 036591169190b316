package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/HermawanSutanto/sertifikat-lokal2/api"
	certificate_controller "github.com/HermawanSutanto/sertifikat-lokal2/api/controllers/certificate"
	design_controller "github.com/HermawanSutanto/sertifikat-lokal2/api/controllers/design"
	certificatemodel "github.com/HermawanSutanto/sertifikat-lokal2/api/model/certificateModel"
	designmodel "github.com/HermawanSutanto/sertifikat-lokal2/api/model/designModel"
	"github.com/HermawanSutanto/sertifikat-lokal2/api/routes"
	"github.com/HermawanSutanto/sertifikat-lokal2/common"
	"github.com/HermawanSutanto/sertifikat-lokal2/common/config"
	"github.com/HermawanSutanto/sertifikat-lokal2/common/gorm"
	"github.com/HermawanSutanto/sertifikat-lokal2/common/mongo"
	"github.com/HermawanSutanto/sertifikat-lokal2/common/util"
	"github.com/HermawanSutanto/sertifikat-lokal2/internal/renderer"
)

func main() {
	configPath := flag.String("config", "config.yml", "Path to the config file")
	isPushDB := flag.Bool("PushDB", false, "Run database migration")
	isRunAfter := flag.Bool("Run", false, "Run after db process")
	flag.Parse()
	config.LoadConfig(*configPath)

	gorm.InitGorm()
	if *isPushDB {
		gorm.Push_db()
		if !*isRunAfter {
			return
		}
	}

	ctx := context.Background()

	mongo.InitMongo()
	certRepo := certificatemodel.NewCertificateRepository(common.Mongo)
	if err := certRepo.EnsureIndexes(ctx); err != nil {
		slog.Error("Failed to create certificate indexes", "error", err)
		os.Exit(1)
	}

	blobs, err := util.InitStorage(ctx)
	if err != nil {
		slog.Error("Failed to initialize object storage", "error", err)
		os.Exit(1)
	}

	cfg := common.Config
	buckets := renderer.Buckets{
		Template:    *cfg.BucketTemplate,
		Certificate: *cfg.BucketCertificate,
		Archive:     *cfg.BucketArchive,
	}

	fonts := renderer.NewFontCache(nil, cfg.Fonts)
	slog.Info("Font catalog loaded", "families", fonts.Families())

	format := renderer.FormatJPEG
	if cfg.OutputFormat != nil {
		format = renderer.ParseOutputFormat(*cfg.OutputFormat)
	}

	orchestrator := renderer.NewBatchOrchestrator(fonts, blobs, certRepo, renderer.BatchOptions{
		Buckets:       buckets,
		Format:        format,
		RenderTimeout: cfg.RenderTimeoutOr(renderer.DefaultRenderTimeout),
		VerifyHost:    *cfg.VerifyHost,
	})
	archiver := renderer.NewArchiveBuilder(certRepo, blobs, buckets)

	util.StartArchiveCleanupJob(ctx, blobs, buckets.Archive)

	api.InitFiber(routes.Controllers{
		Certificate: certificate_controller.NewCertificateController(certRepo, orchestrator, archiver, cfg.PageSizeOr(certificate_controller.DefaultPageSize)),
		Design:      design_controller.NewDesignController(designmodel.NewDesignRepository(common.Gorm), buckets.Template),
	})
}

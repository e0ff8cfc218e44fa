package main

import (
	"fmt"
	"os"

	"github.com/RobsonDevCode/osvdesk/cmd"
	cache "github.com/RobsonDevCode/osvdesk/internal/caching"
	"github.com/RobsonDevCode/osvdesk/internal/clients"
	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	"github.com/RobsonDevCode/osvdesk/internal/logging"
	"github.com/RobsonDevCode/osvdesk/internal/server"
	exportservice "github.com/RobsonDevCode/osvdesk/internal/services/exportService"
	previewrendererservice "github.com/RobsonDevCode/osvdesk/internal/services/previewRendererService"
	previewservice "github.com/RobsonDevCode/osvdesk/internal/services/previewService"
	remoteloaderservice "github.com/RobsonDevCode/osvdesk/internal/services/remoteLoaderService"
	setupservice "github.com/RobsonDevCode/osvdesk/internal/services/setupService"
	triageservice "github.com/RobsonDevCode/osvdesk/internal/services/triageService"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const configEnv = "OSVDESK_CONFIG"

func main() {
	configPath := configuration.FilePath
	if path := os.Getenv(configEnv); path != "" {
		configPath = path
	}

	config, err := configuration.Load(configPath)
	if err != nil {
		fmt.Printf("error starting command line: %s", err.Error())
		return
	}

	userSettings, err := setupservice.GetUserSettings(setupservice.FilePath)
	if err != nil {
		fmt.Printf("error starting command line: %s", err.Error())
		return
	}
	if userSettings != nil {
		config.TriageSettings = userSettings.Apply(config.TriageSettings)
	}

	logger, err := logging.New(config.Logging)
	if err != nil {
		fmt.Printf("error starting command line: %s", err.Error())
		return
	}

	osvClient, err := clients.NewOsvClient(config, logger)
	if err != nil {
		logger.Fatal("error creating osv client", zap.Error(err))
	}

	previewClient, err := clients.NewPreviewClient(config, logger)
	if err != nil {
		logger.Fatal("error creating preview client", zap.Error(err))
	}

	triageClient := clients.NewTriageClient(config, logger)
	storageClient := clients.NewStorageClient()
	defer storageClient.Close()

	registry, err := triageservice.NewRegistry(config.TriageSettings)
	if err != nil {
		logger.Fatal("error creating triage registry", zap.Error(err))
	}

	remoteLoader := remoteloaderservice.NewRemoteLoader(osvClient, logger)
	fetcher := triageservice.NewFetcher(registry, triageClient, config.TriageSettings.MaxConcurrentColumns, logger)

	cacheInstance := cache.Cache{}
	httpServer := server.NewServer(config, server.Services{
		Blobs:    storageClient,
		Upstream: triageClient,
		Renderer: previewrendererservice.NewPreviewRenderer(),
		Loader:   remoteLoader,
		Fetcher:  fetcher,
	}, &cacheInstance, logger)

	// cant DI directly into the command so we use a setter
	cmd.SetDependencies(cmd.Dependencies{
		Config:       config,
		Logger:       logger,
		RemoteLoader: remoteLoader,
		Preview:      previewservice.NewPreview(previewClient),
		Exporter:     exportservice.NewExporter(afero.NewOsFs(), config.ExportSettings.Directory),
		TriageClient: triageClient,
		Server:       httpServer,
	})
	cmd.Execute()
}

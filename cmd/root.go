package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/gifclip/internal/config"
	"github.com/mlihgenel/gifclip/internal/logging"
)

var (
	configFile  string
	verbose     bool
	logFileFlag string

	appVersion = "dev"
	appDate    = ""

	appConfig *config.Config
	appLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	logCloser io.Closer
)

// SetVersionInfo build-time version bilgisini ayarlar
func SetVersionInfo(version, date string) {
	if strings.TrimSpace(version) != "" {
		appVersion = version
	}
	appDate = strings.TrimSpace(date)
	if appDate == "" || appDate == "unknown" {
		appDate = time.Now().Format("2006-01-02 15:04:05")
	}
	rootCmd.Version = appVersion
	rootCmd.SetVersionTemplate(versionTemplate())
}

func versionTemplate() string {
	return fmt.Sprintf(
		"gifclip v%s\nTarih:  %s\nGo:     %s\nOS:     %s/%s\n",
		appVersion, appDate, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	)
}

var rootCmd = &cobra.Command{
	Use:   "gifclip [video]",
	Short: "gifclip - videodan kırpılmış GIF oluşturucu",
	Long: `gifclip: Bir videonun istediğiniz aralığını palet optimizasyonlu GIF'e çevirin.

Videoyu mpv ile önizler, başlangıç/bitiş noktalarını slider veya
HH:mm:ss.zzz zaman alanlarıyla seçtirir ve FFmpeg'i iki geçişle
(palettegen + paletteuse) çalıştırır.

Örnekler:
  gifclip
  gifclip klip.mp4
  gifclip export klip.mp4 --start 00:00:02 --end 00:00:07 --output ./gifs
  gifclip info klip.mp4
  gifclip deps --install
  gifclip resolutions`,
	Version:           appVersion,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setupEnvironment,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
			logCloser = nil
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		initialVideo := ""
		if len(args) == 1 {
			initialVideo = args[0]
		}
		return RunInteractive(initialVideo)
	},
}

// setupEnvironment yapılandırmayı okur ve logger'ı kurar. Etkileşimli kabuk
// ekranı kullandığı için günlükler orada stderr'e yazılmaz.
func setupEnvironment(cmd *cobra.Command, _ []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, path, err := config.Load(configFile, cwd)
	if err != nil {
		return err
	}
	appConfig = cfg

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logFile := cfg.LogFile
	if strings.TrimSpace(logFileFlag) != "" {
		logFile = logFileFlag
	}
	interactive := runsShell(cmd)
	logger, closer, err := logging.New(logging.Options{
		Level: level,
		Path:  logging.Sink(interactive, logFile, logging.StderrIsTerminal()),
	})
	if err != nil {
		return err
	}
	appLogger = logger
	logCloser = closer
	if path != "" {
		appLogger.Debug("config loaded", "path", path)
	}
	return nil
}

// runsShell komutun etkileşimli kabuğu açan kök komut olup olmadığını döner.
func runsShell(cmd *cobra.Command) bool {
	return !cmd.HasParent()
}

// Execute CLI'ı çalıştırır
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Yapılandırma dosyası (varsayılan: yukarı doğru aranan "+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug seviyesinde log")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Log dosyası yolu")

	SetVersionInfo(appVersion, appDate)

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(os.Stderr, "Hata: %s\n\n", err.Error())
		cmd.Usage()
		return err
	})
}

// currentConfig alt komutlar için yüklenmiş yapılandırmayı döner.
func currentConfig() *config.Config {
	if appConfig == nil {
		cfg := config.Default()
		return &cfg
	}
	return appConfig
}

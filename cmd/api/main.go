package api

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cybrarymin/cinema/internal/data"
	"github.com/cybrarymin/cinema/internal/mailer"
	"github.com/cybrarymin/cinema/internal/storage"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bunzerolog"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
)

var (
	Version   = "1.0.0"
	BuildTime string
)

var (
	ListenPort           int
	Env                  string
	DBDriver             string
	DBDSN                string
	DBMaxConnCount       int
	DBMaxIdleConnCount   int
	DBMaxIdleConnTimeout time.Duration
	DBAutoMigrate        bool
	LogLevel             int8
	DBLogs               bool
	VersionDisplay       bool
	JWTKEY               string
	TrustedOrigins       []string
	ImageBackend         string
	MediaRoot            string
	MediaURL             string
	S3Bucket             string
	S3Region             string
	S3Endpoint           string
	S3KeyID              string
	S3Secret             string
	S3PublicURL          string
	S3PathStyle          bool
	EnableRateLimit      bool
	GlobalRateLimit      int64
	PerClientRateLimit   int64
	SMTPServer           string
	SMTPPort             int
	SMTPUserName         string
	SMTPPassword         string
	EmailSender          string
	OtelEnabled          bool
)

type config struct {
	port int
	env  string
	db   struct {
		driver               string
		dbDsn                string
		dbMaxConnCount       int
		DBMaxIdleConnCount   int
		DBMaxIdleConnTimeout time.Duration
		DBLogs               bool
		autoMigrate          bool
	}
	rateLimit struct {
		enabled            bool
		globalRateLimit    int64
		perClientRateLimit int64
	}
	cors struct {
		trustedOrigins []string
	}
	jwt struct {
		key string
	}
	smtp struct {
		host     string
		port     int
		username string
		password string
		sender   string
	}
	media struct {
		backend string
		root    string
		url     string
		s3      storage.S3Config
	}
	otel struct {
		enabled bool
	}
}

type mailSender interface {
	Send(recipient, templateFile string, data interface{}) error
}

type application struct {
	config config
	log    *zerolog.Logger
	models *data.Models
	images storage.ImageStore
	mailer mailSender
	wg     sync.WaitGroup
}

// newConfig collects the values bound to the command line flags.
func newConfig() config {
	var cfg config
	cfg.port = ListenPort
	cfg.env = Env
	cfg.db.driver = DBDriver
	cfg.db.dbDsn = DBDSN
	cfg.db.dbMaxConnCount = DBMaxConnCount
	cfg.db.DBMaxIdleConnCount = DBMaxIdleConnCount
	cfg.db.DBMaxIdleConnTimeout = DBMaxIdleConnTimeout
	cfg.db.DBLogs = DBLogs
	cfg.db.autoMigrate = DBAutoMigrate
	cfg.rateLimit.enabled = EnableRateLimit
	cfg.rateLimit.globalRateLimit = GlobalRateLimit
	cfg.rateLimit.perClientRateLimit = PerClientRateLimit
	cfg.cors.trustedOrigins = TrustedOrigins
	cfg.jwt.key = JWTKEY
	cfg.smtp.host = SMTPServer
	cfg.smtp.port = SMTPPort
	cfg.smtp.username = SMTPUserName
	cfg.smtp.password = SMTPPassword
	cfg.smtp.sender = EmailSender
	cfg.media.backend = ImageBackend
	cfg.media.root = MediaRoot
	cfg.media.url = MediaURL
	cfg.media.s3 = storage.S3Config{
		Endpoint:  S3Endpoint,
		Region:    S3Region,
		Bucket:    S3Bucket,
		KeyID:     S3KeyID,
		Secret:    S3Secret,
		PublicURL: S3PublicURL,
		PathStyle: S3PathStyle,
	}
	cfg.otel.enabled = OtelEnabled
	return cfg
}

func NewLogger() zerolog.Logger {
	if zerolog.Level(LogLevel).String() == zerolog.LevelTraceValue {
		return zerolog.New(os.Stdout).With().Stack().Timestamp().Logger().Level(zerolog.Level(LogLevel))
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.Level(LogLevel))
}

func Api() {
	logger := NewLogger()
	cfg := newConfig()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	db, err := OpenDB(ctx, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to the database")
	}
	defer db.Close()

	if cfg.db.autoMigrate {
		results, err := data.Migrate(context.Background(), db)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to migrate the database")
		}
		for _, result := range results {
			logger.Info().Int64("version", result.Source.Version).Str("duration", result.Duration.String()).Msg("applied migration")
		}
	}

	if cfg.otel.enabled {
		otelShutdown, err := setupOTelSDK(context.Background())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to set up opentelemetry")
		}
		defer func() {
			if err := otelShutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("failed to shut down opentelemetry")
			}
		}()
	}
	models := data.NewModels(db)
	if err := initializeOtelMetrics(db, models); err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize opentelemetry metrics")
	}
	promInit(db)

	images, err := newImageStore(&cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up image storage")
	}

	app := &application{
		config: cfg,
		log:    &logger,
		models: models,
		images: images,
		mailer: mailer.New(cfg.smtp.host, cfg.smtp.port, cfg.smtp.username, cfg.smtp.password, cfg.smtp.sender),
	}

	if err := app.serve(); err != nil {
		app.log.Error().Err(err).Msg("http server stopped")
	}
}

// OpenDB connects to the database selected by the --db-driver flag. Query
// logging is attached when --db-enable-log is set.
func OpenDB(ctx context.Context, logger *zerolog.Logger) (*bun.DB, error) {
	cfg := newConfig()
	db, err := openDB(ctx, &cfg)
	if err != nil {
		return nil, err
	}
	if cfg.db.DBLogs {
		db.AddQueryHook(bunzerolog.NewQueryHook(
			bunzerolog.WithLogger(logger),
			bunzerolog.WithQueryLogLevel(zerolog.DebugLevel),      // Show database interaction logs by debug tag
			bunzerolog.WithSlowQueryLogLevel(zerolog.WarnLevel),   // Show database slow queries as warnings tag
			bunzerolog.WithErrorQueryLogLevel(zerolog.ErrorLevel), // Show failed queries as error tag
			bunzerolog.WithSlowQueryThreshold(3*time.Second),
		))
	}
	return db, nil
}

func openDB(ctx context.Context, cfg *config) (*bun.DB, error) {
	var db *bun.DB
	switch cfg.db.driver {
	case "postgres":
		sqldb := otelsql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.db.dbDsn)), otelsql.WithDBSystem("postgresql"))
		db = bun.NewDB(sqldb, pgdialect.New(), bun.WithDiscardUnknownColumns())
	case "sqlite":
		sqldb, err := sql.Open(data.SQLiteDriver, sqliteDSN(cfg.db.dbDsn))
		if err != nil {
			return nil, errors.Wrap(err, "open sqlite")
		}
		db = bun.NewDB(sqldb, sqlitedialect.New(), bun.WithDiscardUnknownColumns())
	default:
		return nil, errors.Errorf("unsupported database driver %q", cfg.db.driver)
	}

	if cfg.db.dbMaxConnCount > 0 {
		db.SetMaxOpenConns(cfg.db.dbMaxConnCount)
	}
	if cfg.db.DBMaxIdleConnCount > 0 {
		db.SetMaxIdleConns(cfg.db.DBMaxIdleConnCount)
	}
	db.SetConnMaxIdleTime(cfg.db.DBMaxIdleConnTimeout)
	err := db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping database")
	}
	return db, nil
}

// sqliteDSN enables foreign keys and a busy timeout unless the DSN already sets options.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
}

func newImageStore(cfg *config) (storage.ImageStore, error) {
	switch cfg.media.backend {
	case "local":
		return storage.NewLocalStore(cfg.media.root, cfg.media.url)
	case "s3":
		return storage.NewS3Store(cfg.media.s3)
	default:
		return nil, fmt.Errorf("unsupported image storage backend %q", cfg.media.backend)
	}
}

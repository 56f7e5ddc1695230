package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/cybrarymin/cinema/cmd/api"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cinema",
	Short: "Cinema catalog api server",
	Long: `cinema serves a JSON api over a catalog of movies, genres and actors.

Anonymous callers can only register and request tokens, authenticated users
can browse the catalog and admins can change it and upload movie images.`,
	Run: func(cmd *cobra.Command, args []string) {
		if api.VersionDisplay {
			fmt.Printf("Version:   %s \nBuild time:   %v\n", api.Version, api.BuildTime)
			return
		}
		api.Api()
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if api.VersionDisplay {
			return nil
		}
		if err := requireDSN(); err != nil {
			return err
		}
		if api.JWTKEY == "" {
			return errors.Errorf("--jwt-key option or CINEMA_JWT_KEY is required")
		}
		switch api.ImageBackend {
		case "local":
		case "s3":
			if api.S3Bucket == "" || api.S3Region == "" {
				return errors.Errorf("--s3-bucket and --s3-region options are required for the s3 image storage")
			}
		default:
			return errors.Errorf("--image-storage must be either local or s3")
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadEnv reads a .env file when present and fills the secrets that were not
// given on the command line from the environment.
func loadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to load .env file: %v\n", err)
	}
	if api.DBDSN == "" {
		api.DBDSN = os.Getenv("CINEMA_DB_DSN")
	}
	if api.JWTKEY == "" {
		api.JWTKEY = os.Getenv("CINEMA_JWT_KEY")
	}
}

func requireDSN() error {
	if api.DBDSN == "" {
		return errors.Errorf("--db-connection-string option or CINEMA_DB_DSN is required.")
	}
	return nil
}

func init() {
	cobra.OnInitialize(loadEnv)

	// database and logging settings are shared with the subcommands
	rootCmd.PersistentFlags().StringVar(&api.DBDriver, "db-driver", "postgres", "database driver (postgres|sqlite)")
	rootCmd.PersistentFlags().StringVar(&api.DBDSN, "db-connection-string", "", "database connection string, a file path for sqlite")
	rootCmd.PersistentFlags().IntVar(&api.DBMaxConnCount, "db-max-conn", 25, "maximum idle and active connection client can have to the database")
	rootCmd.PersistentFlags().IntVar(&api.DBMaxIdleConnCount, "db-idle-max-conn", 25, "maximum idle connection client can have to the database")
	rootCmd.PersistentFlags().DurationVar(&api.DBMaxIdleConnTimeout, "db-idle-conn-timeout", time.Minute*15, "maximum amount of time an idle connection will exist")
	rootCmd.PersistentFlags().BoolVar(&api.DBLogs, "db-enable-log", false, "enable database interaction logs")
	rootCmd.PersistentFlags().Int8Var(&api.LogLevel, "log-level", 1, "loglevel of the application - debug:0 info:1 warn:2 error:3 fatal:4 panic:5 trace:-1")

	rootCmd.Flags().IntVar(&api.ListenPort, "port", 8080, "port to listen on")
	rootCmd.Flags().StringVar(&api.Env, "env", "development", "environment (development|staging|production)")
	rootCmd.Flags().BoolVar(&api.DBAutoMigrate, "db-auto-migrate", false, "apply pending schema migrations before serving")
	rootCmd.Flags().Int64Var(&api.GlobalRateLimit, "global-request-rate-limit", 100, "used to apply rate limiting to total number of requests coming to the api server. 10% of the specified value will be considered as the burst limit for total number of requests")
	rootCmd.Flags().Int64Var(&api.PerClientRateLimit, "per-client-rate-limit", 100, "used to apply rate limiting to per client number of requests coming to the api server. 10% of the specified value will be considered as the burst limit for total number of requests")
	rootCmd.Flags().BoolVar(&api.EnableRateLimit, "enable-rate-limit", false, "enable rate limiting")
	rootCmd.Flags().StringSliceVar(&api.TrustedOrigins, "cors-trusted-origins", nil, "comma separated list of origins allowed to call the api from a browser")
	rootCmd.Flags().StringVar(&api.SMTPServer, "smtp-server-addr", "smptserver.test.com", "smtp server to send the email for user after registration")
	rootCmd.Flags().IntVar(&api.SMTPPort, "smtp-server-port", 2525, "smtp server port that you want your emails to")
	rootCmd.Flags().StringVar(&api.SMTPUserName, "smtp-username", "", "smtp-username")
	rootCmd.Flags().StringVar(&api.SMTPPassword, "smtp-password", "", "smtp-pass")
	rootCmd.Flags().StringVar(&api.EmailSender, "smtp-sender-address", "Cinema <no-reply@cinema.cybrarymin.com>", "sender email information to be represented to the email receiver")
	rootCmd.Flags().BoolVar(&api.VersionDisplay, "version", false, "show the version of the application")
	rootCmd.Flags().StringVar(&api.JWTKEY, "jwt-key", "", "defining jwt key string to be used for issuing jwt token")

	rootCmd.Flags().StringVar(&api.ImageBackend, "image-storage", "local", "where uploaded movie images are stored (local|s3)")
	rootCmd.Flags().StringVar(&api.MediaRoot, "media-root", "./media", "directory for images when --image-storage=local")
	rootCmd.Flags().StringVar(&api.MediaURL, "media-url", "/media", "url prefix images are served under when --image-storage=local")
	rootCmd.Flags().StringVar(&api.S3Bucket, "s3-bucket", "", "bucket for movie images")
	rootCmd.Flags().StringVar(&api.S3Region, "s3-region", "", "region of the s3 bucket")
	rootCmd.Flags().StringVar(&api.S3Endpoint, "s3-endpoint", "", "custom endpoint for s3 compatible storages such as minio")
	rootCmd.Flags().StringVar(&api.S3KeyID, "s3-access-key-id", "", "static access key id, the default aws credential chain is used when empty")
	rootCmd.Flags().StringVar(&api.S3Secret, "s3-secret-access-key", "", "static secret access key")
	rootCmd.Flags().StringVar(&api.S3PublicURL, "s3-public-url", "", "base url the stored images are reachable under")
	rootCmd.Flags().BoolVar(&api.S3PathStyle, "s3-path-style", false, "use path style addressing for the bucket")

	rootCmd.Flags().BoolVar(&api.OtelEnabled, "otel-enabled", false, "export traces and metrics over otlp")
	rootCmd.Flags().StringVar(&api.OtlpTraceHost, "otlp-trace-host", "localhost", "opentelemetry protocol jaeger endpoint")
	rootCmd.Flags().StringVar(&api.OtlpHTTPTracePort, "otlp-trace-http-port", "4318", "opentelemetry protocol jaeger port ")
	rootCmd.Flags().StringVar(&api.OtlpMetricHost, "otlp-metric-host", "localhost", "opentelemetry protocol for prometheus host ")
	rootCmd.Flags().StringVar(&api.OtlpHTTPMetricPort, "otlp-metric-http-port", "4318", "opentelemetry protocol prometheus port ")
	rootCmd.Flags().StringVar(&api.OtlpHTTPMetricAPIPath, "otlp-metric-api-path", "/api/v1/otlp/v1/metrics", "defining the api path for otlp on prometheus")
	rootCmd.Flags().StringVar(&api.OtlpApplicationName, "otlp-appname", "cinema_app", "name for the application to be represented in the opentelemetry backends")

	rootCmd.AddCommand(migrateCmd, createSuperuserCmd)
}

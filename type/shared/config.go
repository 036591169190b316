package shared

import "time"

type Config struct {
	Environment        *bool             `yaml:"environment" validate:"required"`
	Port               *string           `yaml:"port" validate:"required"`
	BackendURL         *string           `yaml:"backend_url" validate:"required"`
	Cors               []*string         `yaml:"cors" validate:"required"`
	JWTSecret          *string           `yaml:"jwt_secret" validate:"required"`
	Postgres           *string           `yaml:"postgres" validate:"required"`
	Mongo              *string           `yaml:"mongo" validate:"required"`
	MongoDatabase      *string           `yaml:"mongo_database" validate:"required"`
	// VerifyHost is the frontend origin whose /verify/<id> page is encoded in QR codes.
	// That page reads /api/public/certificate/<id> from this service.
	VerifyHost         *string           `yaml:"verify_host" validate:"required"`
	StorageDriver      *string           `yaml:"storage_driver" validate:"required,oneof=minio gcs"`
	MinIoEndpoint      *string           `yaml:"minio_endpoint"`
	MinIoAccessKey     *string           `yaml:"minio_access_key"`
	MinIoSecretKey     *string           `yaml:"minio_secret_key"`
	MinIoSecure        *bool             `yaml:"minio_secure"`
	GcsProjectID       *string           `yaml:"gcs_project_id"`
	GcsCredentialsPath *string           `yaml:"gcs_credentials_path"`
	BucketTemplate     *string           `yaml:"bucket_template" validate:"required"`
	BucketCertificate  *string           `yaml:"bucket_certificate" validate:"required"`
	BucketArchive      *string           `yaml:"bucket_archive" validate:"required"`
	OutputFormat       *string           `yaml:"output_format" validate:"omitempty,oneof=jpeg webp"`
	RenderTimeout      *string           `yaml:"render_timeout" validate:"omitempty"`
	PageSize           *int              `yaml:"page_size" validate:"omitempty,min=1,max=20"`
	Fonts              map[string]string `yaml:"fonts" validate:"omitempty,dive,url"`
}

// RenderTimeoutOr parses render_timeout, returning def when it is unset or invalid.
func (c *Config) RenderTimeoutOr(def time.Duration) time.Duration {
	if c.RenderTimeout == nil || *c.RenderTimeout == "" {
		return def
	}
	d, err := time.ParseDuration(*c.RenderTimeout)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func (c *Config) PageSizeOr(def int) int {
	if c.PageSize == nil {
		return def
	}
	return *c.PageSize
}

func (c *Config) IsProduction() bool {
	return c.Environment != nil && *c.Environment
}

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"adviseek/internal/sftpclient"
)

type Config struct {
	// Reference data: a local directory wins over the URL when both are set.
	DataURL string
	DataDir string

	// Response stores
	DBPath      string
	DatabaseURL string

	MajorLimit   int
	HTTPAttempts int
	LogLevel     string

	// SFTP delivery
	SFTPHost                  string
	SFTPPort                  int
	SFTPUser                  string
	SFTPPass                  string
	SFTPDir                   string
	SFTPKnownHosts            string
	SFTPInsecureIgnoreHostKey bool
}

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given) without overriding the environment. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "config.godotenv(%s)", f)
		}
	}
	return nil
}

func Load() Config {
	return Config{
		DataURL: strings.TrimRight(os.Getenv("ADVISEEK_DATA_URL"), "/"),
		DataDir: os.Getenv("ADVISEEK_DATA_DIR"),

		DBPath:      getenv("ADVISEEK_DB", "adviseek.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		MajorLimit:   getenvInt("ADVISEEK_MAJOR_LIMIT", 5),
		HTTPAttempts: getenvInt("ADVISEEK_HTTP_ATTEMPTS", 5),
		LogLevel:     getenv("LOG_LEVEL", "info"),

		SFTPHost:                  os.Getenv("SFTP_HOST"),
		SFTPPort:                  getenvInt("SFTP_PORT", 22),
		SFTPUser:                  os.Getenv("SFTP_USER"),
		SFTPPass:                  os.Getenv("SFTP_PASS"),
		SFTPDir:                   getenv("SFTP_DIR", "/inbound"),
		SFTPKnownHosts:            os.Getenv("SFTP_KNOWN_HOSTS"),
		SFTPInsecureIgnoreHostKey: getenvBool("SFTP_INSECURE_IGNORE_HOSTKEY", true),
	}
}

// SFTP returns the upload settings.
func (c Config) SFTP() sftpclient.Config {
	return sftpclient.Config{
		Host:                  c.SFTPHost,
		Port:                  c.SFTPPort,
		User:                  c.SFTPUser,
		Pass:                  c.SFTPPass,
		RemoteDir:             c.SFTPDir,
		KnownHostsPath:        c.SFTPKnownHosts,
		InsecureIgnoreHostKey: c.SFTPInsecureIgnoreHostKey,
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return v
}

func getenvBool(k string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(k)))
	if err != nil {
		return def
	}
	return v
}

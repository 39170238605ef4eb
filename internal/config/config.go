package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// RegionFile は地域名と地域JSONファイルのパスの組
type RegionFile struct {
	Name string
	Path string
}

// Config はアプリケーション設定。cmd以外のパッケージは環境変数を直接読まない
type Config struct {
	Port   string
	AppEnv string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	SearchAPIKey   string
	SearchEngineID string
	SearchEndpoint string

	GitHubToken      string
	GitHubOwner      string
	GitHubRepo       string
	GitHubBranch     string
	GitHubAPIBaseURL string

	RegionFiles []RegionFile

	FirestoreProjectID    string
	GoogleCredentialsFile string
	SupabaseURL           string
	SupabaseAnonKey       string
	DatabaseURL           string
	AdminUserIDs          map[string]bool

	RequestTimeout time.Duration
	BatchTimeout   time.Duration
	MaxConcurrency int
}

// Load は.envと環境変数から設定を読み込む
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}
	return FromLookup(os.Getenv)
}

// FromLookup は任意の参照関数から設定を構築する
func FromLookup(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	c := &Config{
		Port:   get("PORT", "8080"),
		AppEnv: get("APP_ENV", "production"),

		GeminiAPIKey:  get("GEMINI_API_KEY", ""),
		GeminiModel:   get("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: strings.TrimRight(get("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"), "/"),

		SearchAPIKey:   get("GOOGLE_SEARCH_API_KEY", ""),
		SearchEngineID: get("GOOGLE_SEARCH_ENGINE_ID", ""),
		SearchEndpoint: get("GOOGLE_SEARCH_ENDPOINT", ""),

		GitHubToken:      get("GITHUB_TOKEN", ""),
		GitHubOwner:      get("GITHUB_OWNER", ""),
		GitHubRepo:       get("GITHUB_REPO", ""),
		GitHubBranch:     get("GITHUB_BRANCH", "main"),
		GitHubAPIBaseURL: strings.TrimRight(get("GITHUB_API_BASE_URL", "https://api.github.com"), "/"),

		FirestoreProjectID:    get("FIRESTORE_PROJECT_ID", ""),
		GoogleCredentialsFile: get("GOOGLE_APPLICATION_CREDENTIALS", ""),
		SupabaseURL:           get("SUPABASE_URL", ""),
		SupabaseAnonKey:       get("SUPABASE_ANON_KEY", ""),
		DatabaseURL:           get("DATABASE_URL", ""),
		AdminUserIDs:          parseIDSet(getenv("ADMIN_USER_IDS")),
	}

	var err error
	if c.RegionFiles, err = parseRegionFiles(getenv("REGION_FILES")); err != nil {
		return nil, err
	}
	if c.RequestTimeout, err = parseDuration(get("REQUEST_TIMEOUT", "60s"), "REQUEST_TIMEOUT"); err != nil {
		return nil, err
	}
	if c.BatchTimeout, err = parseDuration(get("BATCH_TIMEOUT", "9m"), "BATCH_TIMEOUT"); err != nil {
		return nil, err
	}

	c.MaxConcurrency, err = strconv.Atoi(get("MAX_CONCURRENCY", "5"))
	if err != nil || c.MaxConcurrency < 1 {
		return nil, fmt.Errorf("MAX_CONCURRENCY は1以上の整数で指定してください: %q", getenv("MAX_CONCURRENCY"))
	}

	return c, nil
}

// Validate は必須項目が揃っているか確認する
func (c *Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"GEMINI_API_KEY", c.GeminiAPIKey},
		{"GITHUB_TOKEN", c.GitHubToken},
		{"GITHUB_OWNER", c.GitHubOwner},
		{"GITHUB_REPO", c.GitHubRepo},
		{"FIRESTORE_PROJECT_ID", c.FirestoreProjectID},
		{"SUPABASE_URL", c.SupabaseURL},
		{"SUPABASE_ANON_KEY", c.SupabaseAnonKey},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.key)
		}
	}
	if len(c.RegionFiles) == 0 {
		missing = append(missing, "REGION_FILES")
	}
	if len(missing) > 0 {
		return fmt.Errorf("環境変数が設定されていません: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsDevelopment は開発モードかどうか
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// parseRegionFiles は "Tokyo=data/tokyo.json,Osaka=data/osaka.json" 形式を順序を保って解析する
func parseRegionFiles(raw string) ([]RegionFile, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	seen := map[string]bool{}
	var files []RegionFile
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, path, ok := strings.Cut(entry, "=")
		name, path = strings.TrimSpace(name), strings.TrimSpace(path)
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("REGION_FILES の形式が不正です: %q", entry)
		}
		if seen[name] {
			return nil, fmt.Errorf("REGION_FILES に地域 %s が重複しています", name)
		}
		seen[name] = true
		files = append(files, RegionFile{Name: name, Path: path})
	}
	return files, nil
}

func parseIDSet(raw string) map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			m[p] = true
		}
	}
	return m
}

func parseDuration(raw, key string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s の値が不正です: %q", key, raw)
	}
	return d, nil
}

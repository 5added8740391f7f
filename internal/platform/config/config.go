package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cfg 是一个全局变量，用于存储所有应用程序的配置
var Cfg *Config

// Config 结构体定义了应用程序的所有配置项
// 它与 config.yaml 文件的结构完全对应
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Firebase  FirebaseConfig  `mapstructure:"firebase"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
}

// ServerConfig 定义了服务器相关的配置
type ServerConfig struct {
	Mode    string     `mapstructure:"mode"`
	Address string     `mapstructure:"address"`
	Cors    CorsConfig `mapstructure:"cors"`
}

// CorsConfig 定义了CORS相关的配置
type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// DatabaseConfig 定义了数据库和缓存相关的配置
type DatabaseConfig struct {
	// PostgresDSN 为空时回退到本地SQLite文件，方便开发环境
	PostgresDSN string      `mapstructure:"postgresDsn"`
	SqlitePath  string      `mapstructure:"sqlitePath"`
	Redis       RedisConfig `mapstructure:"redis"`
}

// RedisConfig 定义了Redis的配置
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// FirebaseConfig 定义了Firebase凭证的配置
// 身份校验和FCM推送共用同一个服务账号
type FirebaseConfig struct {
	CredentialsFile string `mapstructure:"credentialsFile"`
}

// SchedulerConfig 定义了后台定时任务的运行间隔和节流参数
type SchedulerConfig struct {
	StatsRefreshInterval  time.Duration `mapstructure:"statsRefreshInterval"`
	ContestCheckInterval  time.Duration `mapstructure:"contestCheckInterval"`
	DailyReminderInterval time.Duration `mapstructure:"dailyReminderInterval"`
	ContestReminderLead   time.Duration `mapstructure:"contestReminderLead"`
	ContestReminderWindow time.Duration `mapstructure:"contestReminderWindow"`
	LeetcodeThrottle      time.Duration `mapstructure:"leetcodeThrottle"`
	CodeforcesThrottle    time.Duration `mapstructure:"codeforcesThrottle"`
}

// UpstreamConfig 定义了各个外部平台的入口地址
// 测试中可以替换为httptest服务器的地址
type UpstreamConfig struct {
	LeetcodeProfileAPI string `mapstructure:"leetcodeProfileApi"`
	LeetcodeGraphQL    string `mapstructure:"leetcodeGraphql"`
	CodeforcesAPI      string `mapstructure:"codeforcesApi"`
	CodeforcesWeb      string `mapstructure:"codeforcesWeb"`
}

// LoadConfig 函数负责查找、加载和解析配置文件
// 它会在指定的路径中查找名为 config.yaml 的文件
func LoadConfig() (*Config, error) {
	v := viper.New()

	// 1. 设置配置文件名和类型
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// 2. 添加配置文件搜索路径
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 3. 设置环境变量支持
	// 允许通过环境变量覆盖配置，例如 DATABASE_POSTGRESDSN=...
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. 为服务器和定时任务提供安全的默认值
	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.sqlitePath", "cozer.db")
	v.SetDefault("scheduler.statsRefreshInterval", 24*time.Hour)
	v.SetDefault("scheduler.contestCheckInterval", 30*time.Minute)
	v.SetDefault("scheduler.dailyReminderInterval", time.Minute)
	v.SetDefault("scheduler.contestReminderLead", 30*time.Minute)
	v.SetDefault("scheduler.contestReminderWindow", 15*time.Minute)
	v.SetDefault("scheduler.leetcodeThrottle", time.Second)
	v.SetDefault("scheduler.codeforcesThrottle", 500*time.Millisecond)
	v.SetDefault("upstream.leetcodeProfileApi", "https://alfa-leetcode-api.onrender.com")
	v.SetDefault("upstream.leetcodeGraphql", "https://leetcode.com/graphql")
	v.SetDefault("upstream.codeforcesApi", "https://codeforces.com/api")
	v.SetDefault("upstream.codeforcesWeb", "https://codeforces.com")

	// 5. 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失时仅依赖默认值和环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// 6. 将配置反序列化到结构体中
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 7. 将加载的配置赋值给全局变量
	Cfg = &cfg

	return Cfg, nil
}

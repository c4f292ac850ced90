package db

import (
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	DSN      string
	Path     string
}

// Connect opens the database selected by cfg.Driver: "mysql", "postgres" or
// "sqlite". An explicit DSN wins over the composed one.
func Connect(cfg Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
	switch cfg.Driver {
	case "mysql":
		dsn, err := mysqlDSN(cfg)
		if err != nil {
			return nil, err
		}
		return gorm.Open(mysql.Open(dsn), gcfg)
	case "postgres":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)
		}
		return gorm.Open(postgres.Open(dsn), gcfg)
	case "sqlite", "":
		path := cfg.DSN
		if path == "" {
			path = cfg.Path
		}
		if path == "" {
			path = "monitor.db"
		}
		return gorm.Open(sqlite.Open(path), gcfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// mysqlDSN composes or normalises the MySQL DSN. ClientFoundRows is forced on
// so RowsAffected counts matched rows, as on sqlite and postgres; a status
// report that changes nothing must still find its device.
func mysqlDSN(cfg Config) (string, error) {
	var mc *gomysql.Config
	if cfg.DSN != "" {
		parsed, err := gomysql.ParseDSN(cfg.DSN)
		if err != nil {
			return "", fmt.Errorf("parse mysql dsn: %w", err)
		}
		mc = parsed
	} else {
		mc = gomysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
		mc.DBName = cfg.DBName
		mc.Params = map[string]string{"charset": "utf8mb4"}
	}
	mc.ParseTime = true
	mc.ClientFoundRows = true
	return mc.FormatDSN(), nil
}

// OpenMemory returns a private in-memory sqlite database. All statements share
// a single connection so every caller sees the same data.
func OpenMemory() (*gorm.DB, error) {
	gdb, err := Connect(Config{Driver: "sqlite", DSN: ":memory:"})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return gdb, nil
}

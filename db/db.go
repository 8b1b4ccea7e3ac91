package db

import (
	"blog/config"
	"errors"
	"log"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

// Init connects to MySQL, Postgres or SQLite - whichever is configured first
func Init() {
	var dialector gorm.Dialector
	switch {
	case config.MYSQL_DSN != "":
		log.Println("Using MySQL database")
		dialector = mysql.Open(config.MYSQL_DSN)
	case config.POSTGRES_DSN != "":
		log.Println("Using Postgres database")
		dialector = postgres.Open(config.POSTGRES_DSN)
	default:
		log.Printf("Using SQLite database: %s", config.SQLITE_FILE)
		dialector = sqlite.Open(SQLiteDSN(config.SQLITE_FILE))
	}
	db, err := Open(dialector)
	if err != nil || db == nil {
		panic(err)
	}
	Instance = db
}

func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
}

// SQLiteDSN turns foreign keys on, they are off by default in SQLite
func SQLiteDSN(file string) string {
	return "file:" + file + "?_foreign_keys=on&_busy_timeout=5000"
}

// IsDuplicateKey reports whether err is a unique constraint violation
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

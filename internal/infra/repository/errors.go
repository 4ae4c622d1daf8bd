package repository

import (
	"errors"

	repo "orderline/internal/repository"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

const (
	pgForeignKeyViolation = "23503"
	mysqlNoReferencedRow  = 1452
	mysqlRowIsReferenced  = 1451
)

// translate はドライバ固有のエラーをリポジトリのエラーに寄せる。
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.ErrNotFound
	}
	if isForeignKeyViolation(err) {
		return errors.Join(repo.ErrReferenceViolation, err)
	}
	return err
}

// TranslateError が効かないドライバ版もあるので、元のエラーも見る。
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlNoReferencedRow || myErr.Number == mysqlRowIsReferenced
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

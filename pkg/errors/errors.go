package errors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConcurrentUpdate 全量更新未命中任何行：记录在读取后被并发删除或修改
var ErrConcurrentUpdate = errors.New("记录已被其他操作修改或删除")

// PostgreSQL SQLSTATE
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// IsForeignKeyViolation 判断是否为外键约束失败（引用了不存在的父记录，或删除仍被引用的记录）
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, codeForeignKeyViolation)
}

// IsUniqueViolation 判断是否为唯一约束冲突
func IsUniqueViolation(err error) bool {
	return hasCode(err, codeUniqueViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

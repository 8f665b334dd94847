package pgdb

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// likeEscaper экранирует метасимволы LIKE/ILIKE; Postgres по умолчанию
// использует обратный слэш как символ экранирования.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLikePattern превращает пользовательский ввод в литеральный
// фрагмент шаблона LIKE.
func escapeLikePattern(s string) string {
	return likeEscaper.Replace(s)
}

// postgresDuplicate сообщает, нарушает ли ошибка уникальный индекс.
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

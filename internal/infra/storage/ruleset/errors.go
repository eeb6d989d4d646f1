package ruleset

import "errors"

var (
	// ErrRuleSetNotFound возвращается, когда активная конфигурация не найдена
	// Для резолвера цен это валидное состояние, а не ошибка - комната
	// тарифицируется по базовой цене
	ErrRuleSetNotFound = errors.New("ruleset.repository: active rule set not found")

	// ErrActiveConflict возвращается, когда вставка нарушила частичный
	// уникальный индекс "одна активная конфигурация на комнату"
	ErrActiveConflict = errors.New("ruleset.repository: active rule set already exists for room")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("ruleset.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("ruleset.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("ruleset.repository: failed to scan row")
)

package psqlbuilder

import "github.com/Masterminds/squirrel"

// Пакет-обёртка над squirrel с PostgreSQL-плейсхолдерами ($1, $2, ...).
// Все репозитории строят запросы через него, чтобы не повторять
// PlaceholderFormat в каждом месте.

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select возвращает SELECT-билдер с долларовыми плейсхолдерами
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert возвращает INSERT-билдер с долларовыми плейсхолдерами
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Update возвращает UPDATE-билдер с долларовыми плейсхолдерами
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete возвращает DELETE-билдер с долларовыми плейсхолдерами
func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}

// Package format re-renders parsed cinder files in the C-style dialect.
//
// Назначение: `cinder fmt` и проверка идемпотентности (parse -> print -> parse).
// Не делает: сохранение комментариев, IO.
// Зависимости: internal/gen, internal/parser, internal/lexer.
package format

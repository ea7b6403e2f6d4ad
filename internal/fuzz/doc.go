// Package fuzztests houses Go fuzz harnesses for the cinder front end
// (source -> lexer -> parser -> capture analysis -> generator). They guard
// against panics and hangs on arbitrary inputs.
//
// Назначение: прогонять произвольные байты через весь конвейер обоих
// диалектов и через проверку round-trip форматтера.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests

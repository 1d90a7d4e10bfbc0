// Package fuzztests houses Go fuzz harnesses for the front half of busguard
// (source -> lexer -> parser). Their goal is to smoke test robustness and
// guard against panics, hangs and out-of-range spans on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер/парсер.
//
// Не делает: разрешение имён, проверку слушателей, запуск CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/testkit.

package fuzztests

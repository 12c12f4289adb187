// Package fuzztests houses Go fuzz harnesses for the sexpr pipeline
// (source -> lexer -> parser -> postfix). They look for panics, hangs and
// broken tree invariants on arbitrary input.
//
// Назначение: прогонять произвольные байты через лексер, группировщик и
// переупорядочивание.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/postfix, internal/testkit.

package fuzztests

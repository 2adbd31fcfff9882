package iocli

// IO абстрагирует терминальный ввод/вывод команд.
// Тесты подменяют его буферной реализацией.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}

package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх стандартных потоков процесса.
// Потоки инжектируются, чтобы тесты могли подставить буферы.
type Stdio struct {
	in     *bufio.Reader
	out    io.Writer
	rawIn  *os.File
	isTerm bool
}

// NewStdio создает IO поверх os.Stdin/os.Stdout
func NewStdio() *Stdio {
	return &Stdio{
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		rawIn:  os.Stdin,
		isTerm: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewBuffered создает IO поверх произвольных потоков — для тестов
// и неинтерактивных сценариев. Пароль читается как обычная строка.
func NewBuffered(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (s *Stdio) Println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

// ReadInput печатает приглашение и читает строку, обрезая пробелы
func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.in.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// ReadPassword читает пароль без эха, если ввод — терминал.
// Иначе (pipe, тест) читает обычную строку.
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	s.Printf("%s", prompt)

	if s.isTerm && s.rawIn != nil {
		pwBytes, err := term.ReadPassword(int(s.rawIn.Fd()))
		s.Println("")
		if err != nil {
			return "", err
		}
		return string(pwBytes), nil
	}

	input, err := s.in.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

package verify

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultCooldownSeconds — cooldown, назначаемый когда сервер не сообщил
// собственное время ожидания
const DefaultCooldownSeconds = 60

// resendOutcome — дискриминированный итог вызова resend/forgot-password
type resendOutcome int

const (
	outcomeFailed resendOutcome = iota
	outcomeWait
	outcomeDailyLimit
	outcomeAlreadyVerified
)

var waitSecondsPattern = regexp.MustCompile(`(\d+) seconds`)

// classifyResendError разбирает свободный текст серверной ошибки.
// Это compatibility shim: пока сервер не отдает структурированный тег
// результата, клиенту остается сопоставление по подстрокам. Вся хрупкость
// изолирована здесь.
func classifyResendError(message string) (resendOutcome, int) {
	lower := strings.ToLower(message)

	if strings.Contains(lower, "wait") && strings.Contains(lower, "seconds") {
		if m := waitSecondsPattern.FindStringSubmatch(message); m != nil {
			if seconds, err := strconv.Atoi(m[1]); err == nil && seconds > 0 {
				return outcomeWait, seconds
			}
		}
		// "wait" без разбираемого числа — дефолтное ожидание
		return outcomeWait, DefaultCooldownSeconds
	}

	if strings.Contains(lower, "limit") {
		return outcomeDailyLimit, 0
	}

	if strings.Contains(lower, "already verified") {
		return outcomeAlreadyVerified, 0
	}

	return outcomeFailed, 0
}

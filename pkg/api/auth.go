package api

// LoginRequest представляет запрос на аутентификацию.
// Сервер принимает либо email, либо username — клиент заполняет ровно одно
// поле в зависимости от того, содержит ли идентификатор символ '@'.
type LoginRequest struct {
	Email    string `json:"email,omitempty"`    // email пользователя (если идентификатор — email)
	Username string `json:"username,omitempty"` // username пользователя (если идентификатор — не email)
	Password string `json:"password"`           // пароль в открытом виде (хеширование — на сервере)
}

// GoogleLoginRequest представляет запрос на вход через Google OAuth
type GoogleLoginRequest struct {
	Token string `json:"token"` // authorization code или credential от провайдера
}

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Email    string `json:"email"`    // email (на него уйдет письмо с подтверждением)
	Username string `json:"username"` // уникальный username
	Password string `json:"password"` // пароль в открытом виде
	Name     string `json:"name"`     // отображаемое имя
}

// UserResponse представляет пользователя в ответах сервера.
// Token присутствует только в ответах login/google — регистрация токен не выдает.
type UserResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Token    string `json:"token,omitempty"`
	GoogleID string `json:"google_id,omitempty"`
}

// ResendVerificationResponse представляет ответ на повторную отправку письма.
// Email возвращается всегда — именно так клиент узнает адрес пользователя,
// который логинится по username.
type ResendVerificationResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ForgotPasswordRequest представляет запрос на восстановление пароля
type ForgotPasswordRequest struct {
	Identifier string `json:"identifier"` // email или username
}

// ForgotPasswordResponse представляет ответ на запрос восстановления пароля
type ForgotPasswordResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ResetPasswordRequest представляет запрос на установку нового пароля
type ResetPasswordRequest struct {
	Token              string `json:"token"`                // одноразовый токен из письма
	NewPassword        string `json:"new_password"`         // новый пароль
	ConfirmNewPassword string `json:"confirm_new_password"` // подтверждение
}

// ResetPasswordResponse представляет ответ на смену пароля
type ResetPasswordResponse struct {
	Message string `json:"message"`
}

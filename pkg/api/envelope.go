package api

import "encoding/json"

// Envelope представляет общий конверт ответов Sinari Cell API: {data, errors, paging}.
// Data декодируется в два прохода — сначала конверт, потом полезная нагрузка.
type Envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors string          `json:"errors,omitempty"`
	Paging *Paging         `json:"paging,omitempty"`
}

// Paging представляет информацию о страницах в списочных ответах
type Paging struct {
	CurrentPage int `json:"current_page"`
	TotalPage   int `json:"total_page"`
	Size        int `json:"size"`
}

// FieldError представляет одну ошибку валидации с путем до поля.
// Сервер иногда вкладывает список таких ошибок в строковое поле errors.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

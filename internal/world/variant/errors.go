package variant

import "errors"

// ErrItemNotRegistered предмет варианта не найден при первом обращении.
// Означает ошибку порядка регистрации и не может быть исправлен повтором.
var ErrItemNotRegistered = errors.New("предмет варианта не зарегистрирован")

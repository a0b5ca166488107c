package repository

import "errors"

// ErrNotFound возвращается хранилищем, когда запись с заданным ключом отсутствует
var ErrNotFound = errors.New("запись не найдена")

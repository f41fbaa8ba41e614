package model

import "strconv"

// LinkRef - ссылка на Link либо по числовому id, либо по короткому коду.
// Клиент передает одну непрозрачную строку, разбираем ее ровно один раз
// на границе, дальше везде ходит типизированное значение.
type LinkRef struct {
	id   int64
	code string
}

func RefByID(id int64) LinkRef {
	return LinkRef{id: id}
}

func RefByCode(code string) LinkRef {
	return LinkRef{code: code}
}

// ParseLinkRef трактует строку как id, если она целиком парсится в число,
// иначе - как короткий код.
func ParseLinkRef(s string) LinkRef {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil && id > 0 {
		return RefByID(id)
	}
	return RefByCode(s)
}

func (r LinkRef) ByID() (int64, bool) {
	if r.id != 0 {
		return r.id, true
	}
	return 0, false
}

func (r LinkRef) Code() (string, bool) {
	if r.code != "" {
		return r.code, true
	}
	return "", false
}

func (r LinkRef) String() string {
	if r.id != 0 {
		return strconv.FormatInt(r.id, 10)
	}
	return r.code
}

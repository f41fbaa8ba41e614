package postgres

import (
	"context"

	"github.com/alexscarano/QrLinkki/internal/model"
	"github.com/alexscarano/QrLinkki/internal/storage"
)

const linkColumns = `id, user_id, original_url, short_code, short_url, qr_code_path, created_at, expires_at, clicks`

// refPredicate возвращает условие WHERE и аргумент для поиска по id или коду.
func refPredicate(ref model.LinkRef) (string, any) {
	if id, ok := ref.ByID(); ok {
		return "id = $1", id
	}
	code, _ := ref.Code()
	return "short_code = $1", code
}

func (s *Storage) CreateLink(ctx context.Context, link *model.Link) (*model.Link, error) {
	row := s.DB.QueryRow(ctx,
		`INSERT INTO links (user_id, original_url, short_code, short_url, qr_code_path, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, clicks`,
		link.UserID, link.OriginalURL, link.ShortCode, link.ShortURL, link.QrCodePath, link.ExpiresAt)

	if err := row.Scan(&link.ID, &link.CreatedAt, &link.Clicks); err != nil {
		return nil, translateError(err)
	}
	return link, nil
}

// GetLinkByRef ищет ссылку без побочных эффектов - для детальных просмотров,
// редактирования и проверок владения.
func (s *Storage) GetLinkByRef(ctx context.Context, ref model.LinkRef) (*model.Link, error) {
	pred, arg := refPredicate(ref)
	row := s.DB.QueryRow(ctx,
		`SELECT `+linkColumns+` FROM links WHERE `+pred, arg)
	return scanLink(row)
}

// GetLinkAndRegisterClick ищет ссылку и атомарно инкрементирует счетчик
// переходов тем же UPDATE. Инкремент выполняется на стороне базы, поэтому
// параллельные редиректы не теряют кликов.
func (s *Storage) GetLinkAndRegisterClick(ctx context.Context, ref model.LinkRef) (*model.Link, error) {
	pred, arg := refPredicate(ref)
	row := s.DB.QueryRow(ctx,
		`UPDATE links
		 SET clicks = clicks + 1
		 WHERE `+pred+`
		 RETURNING `+linkColumns, arg)
	return scanLink(row)
}

// UpdateLink обновляет только переданные поля; владелец через этот путь
// не меняется.
func (s *Storage) UpdateLink(ctx context.Context, ref model.LinkRef, patch model.LinkPatch) (*model.Link, error) {
	pred, arg := refPredicate(ref)
	row := s.DB.QueryRow(ctx,
		`UPDATE links
		 SET original_url = COALESCE(NULLIF($2, ''), original_url),
		     expires_at = COALESCE($3, expires_at)
		 WHERE `+pred+`
		 RETURNING `+linkColumns,
		arg, patch.OriginalURL, patch.ExpiresAt)
	return scanLink(row)
}

func (s *Storage) DeleteLink(ctx context.Context, ref model.LinkRef) error {
	pred, arg := refPredicate(ref)
	res, err := s.DB.Exec(ctx, `DELETE FROM links WHERE `+pred, arg)
	if err != nil {
		return translateError(err)
	}
	if res.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Storage) GetLinksByUser(ctx context.Context, userID int64) ([]model.Link, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT `+linkColumns+` FROM links
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var links []model.Link
	for rows.Next() {
		var l model.Link
		if err := rows.Scan(&l.ID, &l.UserID, &l.OriginalURL, &l.ShortCode, &l.ShortURL,
			&l.QrCodePath, &l.CreatedAt, &l.ExpiresAt, &l.Clicks); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// CodeExists - предварительная проверка генератора кодов. Не защищает от
// гонок, только уменьшает число повторов создания.
func (s *Storage) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM links WHERE short_code = $1)`, code).Scan(&exists)
	return exists, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLink(row rowScanner) (*model.Link, error) {
	var l model.Link
	if err := row.Scan(&l.ID, &l.UserID, &l.OriginalURL, &l.ShortCode, &l.ShortURL,
		&l.QrCodePath, &l.CreatedAt, &l.ExpiresAt, &l.Clicks); err != nil {
		return nil, translateError(err)
	}
	return &l, nil
}

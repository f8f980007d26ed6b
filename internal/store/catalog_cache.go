package store

import (
	"database/sql"
	"time"
)

// CachedCatalog 缓存的目录文件
type CachedCatalog struct {
	FileName  string
	Data      []byte
	UpdatedAt time.Time
}

// SaveCatalog 保存目录文件，覆盖上一次缓存
func (s *Store) SaveCatalog(fileName string, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO catalog_cache (id, file_name, data, updated_at)
		VALUES ('singleton', ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			file_name = excluded.file_name,
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`, fileName, data)
	return err
}

// GetCatalog 读取缓存的目录文件；无缓存时返回 (nil, nil)
func (s *Store) GetCatalog() (*CachedCatalog, error) {
	var c CachedCatalog
	err := s.db.QueryRow(`
		SELECT file_name, data, updated_at FROM catalog_cache WHERE id = 'singleton'
	`).Scan(&c.FileName, &c.Data, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ClearCatalog 清除缓存
func (s *Store) ClearCatalog() error {
	_, err := s.db.Exec(`DELETE FROM catalog_cache WHERE id = 'singleton'`)
	return err
}

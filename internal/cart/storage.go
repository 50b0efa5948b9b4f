package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Storage интерфейс durable-хранилища корзин.
// Ключ — ID ресторана, значение — строки корзины этого ресторана.
type Storage interface {
	Load() (map[int64][]Line, error)
	Save(carts map[int64][]Line) error
}

// FileStorage хранит все корзины пользователя одним JSON файлом на диске.
// Корзина локальная для клиента, сетевых зависимостей у хранилища нет.
type FileStorage struct {
	path string
}

// NewFileStorage создает файловое хранилище корзин
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load читает все корзины из файла.
// Отсутствующий файл не является ошибкой — возвращается пустое состояние.
func (s *FileStorage) Load() (map[int64][]Line, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[int64][]Line{}, nil
		}
		return nil, fmt.Errorf("%w: Load - read file: %v", ErrStorage, err)
	}

	if len(data) == 0 {
		return map[int64][]Line{}, nil
	}

	carts := map[int64][]Line{}
	if err := json.Unmarshal(data, &carts); err != nil {
		return nil, fmt.Errorf("%w: Load - unmarshal: %v", ErrStorage, err)
	}

	return carts, nil
}

// Save атомарно записывает все корзины в файл (через временный файл и rename)
func (s *FileStorage) Save(carts map[int64][]Line) error {
	data, err := json.Marshal(carts)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal: %v", ErrStorage, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: Save - create dir: %v", ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".carts-*.json")
	if err != nil {
		return fmt.Errorf("%w: Save - create temp file: %v", ErrStorage, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: Save - write temp file: %v", ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: Save - close temp file: %v", ErrStorage, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: Save - rename: %v", ErrStorage, err)
	}

	return nil
}

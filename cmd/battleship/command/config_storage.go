package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-battleship/internal/arena"
	"github.com/pixil98/go-battleship/internal/storage"
	"github.com/pixil98/go-errors"
)

type StorageConfig struct {
	Areas AssetConfig[*arena.AreaSpec] `json:"areas"`
}

func (c *StorageConfig) Validate() error {
	el := errors.NewErrorList()
	el.Add(c.Areas.Validate("areas"))
	return el.Err()
}

func (c *StorageConfig) BuildAreaStore() (*storage.FileStore[*arena.AreaSpec], error) {
	return c.Areas.BuildFileStore()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}

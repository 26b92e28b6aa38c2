package domain

import (
	"errors"

	driver "go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("entity not found")

// IsNotFound 同时识别领域层与驱动层的"未找到"
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, driver.ErrNoDocuments)
}

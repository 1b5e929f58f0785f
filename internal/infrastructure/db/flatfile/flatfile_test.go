package flatfile_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookdesk/library-catalog/internal/infrastructure/db/flatfile"
)

func TestHealthChecker_Ping(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, flatfile.NewHealthChecker(filepath.Join(dir, "books.txt")).Ping(context.Background()))
	assert.Error(t, flatfile.NewHealthChecker(filepath.Join(dir, "missing", "books.txt")).Ping(context.Background()))
}
